package nuggetmark

import (
	"log"
	"os"

	"golang.org/x/net/html"
)

// Logger receives diagnostics for expected failures: a nugget that cannot be
// matched or resolved is logged and skipped, never raised.
var Logger = log.New(os.Stderr, "[nuggetmark] ", log.LstdFlags)

// SetLogger replaces the package logger. Pass a logger writing to io.Discard
// to silence diagnostics.
func SetLogger(l *log.Logger) {
	if l != nil {
		Logger = l
	}
}

// keySeparator joins the normalized fragments into one dedupe key. A unit
// separator cannot appear in normalized text.
const keySeparator = "\x1f"

// HighlightKey derives the deterministic dedupe key for a fragment pair. The
// key comes from the normalized fragments, not the matched text, so the same
// logical nugget collapses to one highlight regardless of casing, typography
// or whitespace in either fragment. ok is false for empty fragments.
func HighlightKey(startFragment, endFragment string) (string, bool) {
	ns := Normalize(startFragment)
	ne := Normalize(endFragment)
	if ns == "" || ne == "" {
		return "", false
	}
	return ns + keySeparator + ne, true
}

// HighlightRecord is one applied annotation, tracked for idempotence and
// bulk clearing. The rendered artifact itself is owned by the session's
// renderer and released on clear.
type HighlightRecord struct {
	Key   string
	Span  ResolvedSpan
	Match MatchResult
}

// Options configures an Annotator.
type Options struct {
	// Renderer is the highlight strategy for the whole session, chosen once
	// up front. Defaults to a fresh OverlayRenderer; pass a WrapRenderer for
	// hosts without overlay support.
	Renderer HighlightRenderer

	// Matcher configures the anchor matcher used by Highlight. Word-overlap
	// results carry no offsets and can never be auto-highlighted; enabling
	// WordOverlap here only changes which failure reason gets reported.
	Matcher MatcherOptions
}

// Annotator is one annotation session over one document snapshot. It owns
// the text-surface index, the highlight records, and the renderer. Indexing
// happens once at construction and is reused across the whole batch; it is
// the caller's job to Reindex after mutating the document between batches.
// An Annotator is not safe for concurrent use.
type Annotator struct {
	root     *html.Node
	index    Index
	matcher  *Matcher
	renderer HighlightRenderer
	records  map[string]*HighlightRecord
	order    []string
}

// New creates an annotation session over an HTML document tree, indexing it
// immediately.
func New(root *html.Node, opts Options) *Annotator {
	a := newAnnotator(opts)
	a.root = root
	a.index = BuildIndex(root)
	return a
}

// NewForIndex creates a session over a prebuilt index, e.g. one from
// BuildMarkdownIndex. Sessions built this way can only use overlay
// rendering, and Reindex is a no-op.
func NewForIndex(index Index, opts Options) *Annotator {
	a := newAnnotator(opts)
	a.index = index
	return a
}

func newAnnotator(opts Options) *Annotator {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = NewOverlayRenderer("")
	}
	return &Annotator{
		matcher:  NewMatcher(opts.Matcher),
		renderer: renderer,
		records:  make(map[string]*HighlightRecord),
	}
}

// Index returns the session's text-surface index, for display layers and for
// read-only sibling operations.
func (a *Annotator) Index() Index { return a.index }

// Renderer returns the session's renderer. Display layers type-assert it to
// *OverlayRenderer to read the registered ranges.
func (a *Annotator) Renderer() HighlightRenderer { return a.renderer }

// Count returns the number of currently tracked highlights.
func (a *Annotator) Count() int { return len(a.records) }

// Records returns the tracked highlights in application order.
func (a *Annotator) Records() []*HighlightRecord {
	records := make([]*HighlightRecord, 0, len(a.order))
	for _, key := range a.order {
		records = append(records, a.records[key])
	}
	return records
}

// Highlight locates the span bounded by the fragment pair and renders a
// highlight over it. A repeat call with the same logical key short-circuits
// to true without re-rendering. Expected failures (no match, unresolvable
// offsets, render failure) return false and log a diagnostic; they never
// panic and never affect other fragments in the batch.
func (a *Annotator) Highlight(startFragment, endFragment string) bool {
	key, ok := HighlightKey(startFragment, endFragment)
	if !ok {
		Logger.Printf("highlight skipped: empty fragment")
		return false
	}
	if _, exists := a.records[key]; exists {
		return true
	}

	result := a.matcher.Match(startFragment, endFragment, a.index.FullText)
	if !result.Success {
		Logger.Printf("no match for (%q, %q): %s", startFragment, endFragment, result.Reason)
		return false
	}

	span := Resolve(result, a.index.Segments)
	if span == nil {
		Logger.Printf("unresolvable offsets [%d,%d) for (%q, %q)",
			result.Start, result.End, startFragment, endFragment)
		return false
	}

	if err := a.renderer.Render(*span, a.index.Segments, key); err != nil {
		Logger.Printf("render failed for (%q, %q): %v", startFragment, endFragment, err)
		return false
	}

	a.records[key] = &HighlightRecord{Key: key, Span: *span, Match: result}
	a.order = append(a.order, key)
	return true
}

// Reconstruct returns the full original wording bounded by the fragment
// pair without touching the document; see the package-level Reconstruct.
func (a *Annotator) Reconstruct(startFragment, endFragment string) string {
	return Reconstruct(startFragment, endFragment, a.index.FullText)
}

// ClearAll removes every tracked highlight's rendered artifact and empties
// the record collection. Safe to call when no highlights exist.
func (a *Annotator) ClearAll() {
	a.renderer.ClearAll()
	a.records = make(map[string]*HighlightRecord)
	a.order = nil
}

// Reindex rebuilds the text-surface index from the session's document after
// an external mutation. Existing records keep their rendered artifacts but
// their spans refer to the superseded index. No-op for sessions built over a
// prebuilt index.
func (a *Annotator) Reindex() {
	if a.root != nil {
		a.index = BuildIndex(a.root)
	}
}
