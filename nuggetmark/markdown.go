package nuggetmark

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// BuildMarkdownIndex builds a text-surface index for a markdown document by
// walking its goldmark AST. Text leaves, code spans, autolink URLs, and code
// block lines contribute in document order; soft and hard line breaks append
// a newline so words on adjacent source lines stay separated.
//
// Markdown segments carry no DOM node, so spans resolved against a markdown
// index can only be rendered with the overlay renderer.
func BuildMarkdownIndex(source []byte) Index {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var (
		b        strings.Builder
		segments []Segment
	)
	appendSegment := func(value []byte, lineBreak bool) {
		if len(value) == 0 {
			return
		}
		start := b.Len()
		b.Write(value)
		if lineBreak {
			b.WriteByte('\n')
		}
		segments = append(segments, Segment{Start: start, End: b.Len()})
	}

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Text:
			appendSegment(n.Segment.Value(source), n.SoftLineBreak() || n.HardLineBreak())
		case *ast.AutoLink:
			appendSegment(n.URL(source), false)
		case *ast.FencedCodeBlock:
			appendCodeLines(node, source, appendSegment)
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			appendCodeLines(node, source, appendSegment)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return Index{FullText: b.String(), Segments: segments}
}

func appendCodeLines(node ast.Node, source []byte, appendSegment func([]byte, bool)) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		appendSegment(seg.Value(source), false)
	}
}
