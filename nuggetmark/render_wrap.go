package nuggetmark

import "golang.org/x/net/html"

// Structural-wrap marker element and its key attribute. The attribute makes
// an applied highlight discoverable in the tree by its deterministic key.
const (
	WrapTag     = "mark"
	WrapKeyAttr = "data-nuggetmark-key"
)

// WrapRenderer is the fallback for hosts without overlay support: it splices
// marker elements around the matched content, one per covered segment. This
// mode does mutate the tree, so each boundary text node is rebuilt as new
// nodes that are attached before the original is removed; a failure partway
// can therefore never lose content. Attachment is verified before success is
// reported.
//
// Because wrapped text nodes are replaced, a segment list indexed before the
// wrap goes stale for those nodes: a later span resolving into the same text
// node will fail to render and is skipped. Callers that need dense
// same-node highlights should reindex between calls.
type WrapRenderer struct {
	marks map[string][]*html.Node
}

// NewWrapRenderer creates a structural-wrap renderer.
func NewWrapRenderer() *WrapRenderer {
	return &WrapRenderer{marks: make(map[string][]*html.Node)}
}

// wrapPiece is the per-segment portion of a span, validated before any
// mutation happens.
type wrapPiece struct {
	node     *html.Node
	from, to int
}

func (r *WrapRenderer) Render(span ResolvedSpan, segments []Segment, key string) error {
	pieces, err := splitSpan(span, segments)
	if err != nil {
		return err
	}

	var inserted []*html.Node
	for _, p := range pieces {
		mark, err := wrapPieceInPlace(p, key)
		if err != nil {
			for _, m := range inserted {
				unwrapMark(m)
			}
			return err
		}
		inserted = append(inserted, mark)
	}
	r.marks[key] = inserted
	return nil
}

// Clear unwraps every marker rendered for the key, restoring the original
// text content in place. Adjacent text nodes left behind by boundary splits
// are not merged; the visible text is unchanged either way.
func (r *WrapRenderer) Clear(key string) error {
	marks, exists := r.marks[key]
	if !exists {
		return ErrUnknownKey
	}
	for _, m := range marks {
		unwrapMark(m)
	}
	delete(r.marks, key)
	return nil
}

func (r *WrapRenderer) ClearAll() {
	for key := range r.marks {
		for _, m := range r.marks[key] {
			unwrapMark(m)
		}
	}
	r.marks = make(map[string][]*html.Node)
}

// splitSpan validates the whole span against the live tree before anything
// is touched, so a render either proceeds on all pieces or fails on none.
func splitSpan(span ResolvedSpan, segments []Segment) ([]wrapPiece, error) {
	if span.Start.Segment < 0 || span.End.Segment >= len(segments) ||
		span.Start.Segment > span.End.Segment {
		return nil, ErrForeignSegment
	}

	var pieces []wrapPiece
	for i := span.Start.Segment; i <= span.End.Segment; i++ {
		node := segments[i].Node
		if node == nil {
			return nil, ErrForeignSegment
		}
		if node.Parent == nil {
			return nil, ErrRenderFailed
		}
		from := 0
		to := len(node.Data)
		if i == span.Start.Segment {
			from = span.Start.Offset
		}
		if i == span.End.Segment {
			to = span.End.Offset
		}
		if from < 0 || to > len(node.Data) {
			return nil, ErrForeignSegment
		}
		if from >= to {
			continue
		}
		pieces = append(pieces, wrapPiece{node: node, from: from, to: to})
	}
	if len(pieces) == 0 {
		return nil, ErrRenderFailed
	}
	return pieces, nil
}

// wrapPieceInPlace replaces one text node with up to three nodes: the text
// before the piece, a marker element holding the piece, and the text after.
// The replacements are fully built and attached before the original node is
// removed.
func wrapPieceInPlace(p wrapPiece, key string) (*html.Node, error) {
	parent := p.node.Parent

	mark := &html.Node{
		Type: html.ElementNode,
		Data: WrapTag,
		Attr: []html.Attribute{{Key: WrapKeyAttr, Val: key}},
	}
	mark.AppendChild(&html.Node{Type: html.TextNode, Data: p.node.Data[p.from:p.to]})

	if pre := p.node.Data[:p.from]; pre != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: pre}, p.node)
	}
	parent.InsertBefore(mark, p.node)
	if post := p.node.Data[p.to:]; post != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: post}, p.node)
	}
	if mark.Parent != parent {
		return nil, ErrRenderFailed
	}
	parent.RemoveChild(p.node)
	return mark, nil
}

// unwrapMark splices a marker's children back into its parent and removes
// the marker, leaving the text content exactly as before the wrap.
func unwrapMark(mark *html.Node) {
	parent := mark.Parent
	if parent == nil {
		return
	}
	for mark.FirstChild != nil {
		child := mark.FirstChild
		mark.RemoveChild(child)
		parent.InsertBefore(child, mark)
	}
	parent.RemoveChild(mark)
}
