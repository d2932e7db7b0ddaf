// Package termview displays an annotated document in a terminal. It draws a
// session's full text in a tview TextView, paints every overlay range as a
// colored region, and cycles between highlights with Tab and Shift-Tab.
package termview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	nm "github.com/alexferrari88/nuggetmark/nuggetmark"
)

const (
	highlightStart = "[black:yellow]"
	highlightEnd   = "[-:-]"
)

// taggedSpan is one highlight in full-text byte coordinates plus its region id.
type taggedSpan struct {
	start, end int
	id         string
}

// Viewer is a TextView-based browser for one annotation session. It reads
// the session's overlay registry; a session using the structural-wrap
// renderer is shown as plain text.
type Viewer struct {
	*tview.TextView

	session *nm.Annotator
	regions []string
	current int

	onMove func(current, total int)
}

// NewViewer creates a viewer over the session and renders its current state.
func NewViewer(session *nm.Annotator) *Viewer {
	tv := tview.NewTextView()
	tv.SetDynamicColors(true)
	tv.SetRegions(true)
	tv.SetWrap(true)
	tv.SetWordWrap(true)

	v := &Viewer{TextView: tv, session: session, current: -1}
	v.SetInputCapture(v.handleKey)
	v.Refresh()
	return v
}

// SetMoveHandler registers a callback fired whenever the cycled-to highlight
// changes; current is -1 when nothing is selected.
func (v *Viewer) SetMoveHandler(handler func(current, total int)) *Viewer {
	v.onMove = handler
	v.fireMove()
	return v
}

// Refresh re-reads the session's overlay ranges and rebuilds the displayed
// text. Call it after highlighting or clearing on the session.
func (v *Viewer) Refresh() {
	spans := overlaySpans(v.session)
	v.regions = make([]string, len(spans))
	for i, s := range spans {
		v.regions[i] = s.id
	}
	v.current = -1
	v.SetText(buildTaggedText(v.session.Index().FullText, spans))
	v.Highlight()
	v.fireMove()
}

// Next cycles the selection to the following highlight in document order.
func (v *Viewer) Next() {
	v.moveTo(v.current + 1)
}

// Prev cycles the selection to the preceding highlight in document order.
func (v *Viewer) Prev() {
	if v.current < 0 {
		v.moveTo(len(v.regions) - 1)
		return
	}
	v.moveTo(v.current - 1)
}

// Current returns the selected highlight index (-1 for none) and the total.
func (v *Viewer) Current() (int, int) {
	return v.current, len(v.regions)
}

func (v *Viewer) moveTo(i int) {
	if len(v.regions) == 0 {
		return
	}
	if i < 0 {
		i = len(v.regions) - 1
	}
	if i >= len(v.regions) {
		i = 0
	}
	v.current = i
	v.Highlight(v.regions[i])
	v.ScrollToHighlight()
	v.fireMove()
}

func (v *Viewer) fireMove() {
	if v.onMove != nil {
		v.onMove(v.current, len(v.regions))
	}
}

func (v *Viewer) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		v.Next()
		return nil
	case tcell.KeyBacktab:
		v.Prev()
		return nil
	}
	if event.Rune() == 'c' {
		v.session.ClearAll()
		v.Refresh()
		return nil
	}
	return event
}

// overlaySpans converts the session's overlay registry to sorted, clamped,
// non-overlapping byte spans with generated region ids.
func overlaySpans(session *nm.Annotator) []taggedSpan {
	overlay, ok := session.Renderer().(*nm.OverlayRenderer)
	if !ok {
		return nil
	}
	index := session.Index()

	var spans []taggedSpan
	for _, r := range overlay.Ranges() {
		start, end, ok := r.Span.Offsets(index.Segments)
		if !ok || start >= end || end > len(index.FullText) {
			continue
		}
		spans = append(spans, taggedSpan{start: start, end: end})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	kept := spans[:0]
	last := 0
	for _, s := range spans {
		if s.start < last {
			continue // overlapping highlight, the earlier one wins
		}
		s.id = fmt.Sprintf("nugget-%d", len(kept))
		kept = append(kept, s)
		last = s.end
	}
	return kept
}

// buildTaggedText interleaves the full text with region and color tags for
// the given spans, which must be sorted and non-overlapping. Plain chunks
// are escaped so document text can never be misread as tview markup.
func buildTaggedText(fullText string, spans []taggedSpan) string {
	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(tview.Escape(fullText[last:s.start]))
		b.WriteString(`["` + s.id + `"]`)
		b.WriteString(highlightStart)
		b.WriteString(tview.Escape(fullText[s.start:s.end]))
		b.WriteString(highlightEnd)
		b.WriteString(`[""]`)
		last = s.end
	}
	b.WriteString(tview.Escape(fullText[last:]))
	return b.String()
}
