package nuggetmark

import (
	"strings"

	"golang.org/x/net/html"
)

// Index is the text-surface view of one document snapshot: the concatenation
// of every visible text leaf plus the segments that produced it, in document
// order. An Index is immutable once built; rebuild it after the document
// mutates.
type Index struct {
	FullText string
	Segments []Segment
}

// nonContentTags are elements whose text content is never user-visible. A
// text leaf inside any of them is excluded from the index.
var nonContentTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
	"iframe":   {},
	"object":   {},
	"head":     {},
}

// BuildIndex walks the document tree once, in document order, collecting the
// text leaves outside non-content containers. No separator is inserted
// between adjacent leaves; fragments crossing leaf boundaries rely on the
// matcher's whitespace-flexible patterns instead of an assumed delimiter. A
// root without text-bearing descendants yields an empty index.
func BuildIndex(root *html.Node) Index {
	var (
		b        strings.Builder
		segments []Segment
	)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if _, skip := nonContentTags[n.Data]; skip {
				return
			}
		case html.CommentNode, html.DoctypeNode:
			return
		case html.TextNode:
			if n.Data == "" {
				return
			}
			start := b.Len()
			b.WriteString(n.Data)
			segments = append(segments, Segment{Node: n, Start: start, End: b.Len()})
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return Index{FullText: b.String(), Segments: segments}
}

// VisibleText returns the concatenated visible text of the tree. Annotation
// must never change it: capturing it before and after a highlight sequence
// yields byte-identical strings.
func VisibleText(root *html.Node) string {
	return BuildIndex(root).FullText
}
