package nuggetmark

import "errors"

// Sentinel errors for highlight rendering.
var (
	// ErrRenderFailed is returned when a highlight artifact did not attach.
	ErrRenderFailed = errors.New("highlight was not attached")
	// ErrUnknownKey is returned when clearing a key that was never rendered.
	ErrUnknownKey = errors.New("no highlight with that key")
	// ErrForeignSegment is returned when a span's segments carry no DOM node
	// usable by the renderer (markdown index, or a list from another
	// document).
	ErrForeignSegment = errors.New("segment does not belong to a renderable document")
)

// DefaultOverlayName names the shared overlay registry when none is given.
const DefaultOverlayName = "nuggetmark"

// HighlightRenderer renders and clears highlight artifacts for resolved
// spans. A session picks one renderer up front; the two implementations are
// interchangeable behind this interface and both leave the document's
// visible text byte-identical.
type HighlightRenderer interface {
	Render(span ResolvedSpan, segments []Segment, key string) error
	Clear(key string) error
	ClearAll()
}

// OverlayRange is one registered overlay entry.
type OverlayRange struct {
	Key  string
	Span ResolvedSpan
}

// OverlayRenderer registers spans in a named range collection without
// touching the document at all. Because nothing mutates the tree it can
// never corrupt other spans' offsets, and re-rendering a range it already
// holds is harmless. The registry is created lazily on first render and torn
// down by ClearAll.
type OverlayRenderer struct {
	name   string
	ranges map[string]ResolvedSpan
	order  []string
}

// NewOverlayRenderer creates an overlay renderer. An empty name selects
// DefaultOverlayName.
func NewOverlayRenderer(name string) *OverlayRenderer {
	if name == "" {
		name = DefaultOverlayName
	}
	return &OverlayRenderer{name: name}
}

// Name returns the overlay collection's name.
func (o *OverlayRenderer) Name() string { return o.name }

func (o *OverlayRenderer) Render(span ResolvedSpan, _ []Segment, key string) error {
	if o.ranges == nil {
		o.ranges = make(map[string]ResolvedSpan)
	}
	if _, exists := o.ranges[key]; !exists {
		o.order = append(o.order, key)
	}
	o.ranges[key] = span
	return nil
}

func (o *OverlayRenderer) Clear(key string) error {
	if _, exists := o.ranges[key]; !exists {
		return ErrUnknownKey
	}
	delete(o.ranges, key)
	for i, k := range o.order {
		if k == key {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return nil
}

func (o *OverlayRenderer) ClearAll() {
	o.ranges = nil
	o.order = nil
}

// Ranges returns the registered overlay entries in registration order, for
// display layers that draw the highlights.
func (o *OverlayRenderer) Ranges() []OverlayRange {
	ranges := make([]OverlayRange, 0, len(o.order))
	for _, key := range o.order {
		ranges = append(ranges, OverlayRange{Key: key, Span: o.ranges[key]})
	}
	return ranges
}
