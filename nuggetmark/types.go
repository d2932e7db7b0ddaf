package nuggetmark

import "golang.org/x/net/html"

// Strategy identifies which matching strategy produced a MatchResult.
type Strategy int

const (
	// StrategyNone means no strategy succeeded.
	StrategyNone Strategy = iota
	// StrategyExact is the exact search over normalized text.
	StrategyExact
	// StrategyFlexible is the variant-tolerant search over the original text.
	StrategyFlexible
	// StrategyWordOverlap is the synthetic word-overlap fallback.
	StrategyWordOverlap
)

func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategyFlexible:
		return "flexible"
	case StrategyWordOverlap:
		return "word-overlap"
	default:
		return "none"
	}
}

// MatchReason explains why a match attempt failed.
type MatchReason int

const (
	// ReasonNone is set on successful results.
	ReasonNone MatchReason = iota
	// ReasonEmptyFragment means one of the fragments was empty or whitespace.
	ReasonEmptyFragment
	// ReasonStartNotFound means the start fragment is absent from the text.
	ReasonStartNotFound
	// ReasonEndNotFound means the end fragment is absent from the text.
	ReasonEndNotFound
	// ReasonOrderViolation means the end fragment occurs only before the start
	// fragment's match.
	ReasonOrderViolation
)

func (r MatchReason) String() string {
	switch r {
	case ReasonNone:
		return "ok"
	case ReasonEmptyFragment:
		return "empty fragment"
	case ReasonStartNotFound:
		return "start fragment not found"
	case ReasonEndNotFound:
		return "end fragment not found"
	case ReasonOrderViolation:
		return "end fragment found before start fragment"
	default:
		return "unknown"
	}
}

// Segment is one text-bearing leaf captured during indexing. Its text occupies
// the half-open byte range [Start, End) of the index's full text; segments are
// produced in document order, contiguous and non-overlapping, so concatenating
// their texts reproduces the full text exactly.
type Segment struct {
	// Node points back to the DOM text node the segment was read from. It is
	// nil for markdown-built indexes, which support overlay rendering only.
	Node *html.Node

	Start int
	End   int
}

// MatchResult is the outcome of one matching attempt.
//
// Start and End are byte offsets into the original full text and are only
// meaningful on success; word-overlap results are synthetic and carry zero
// offsets, so they cannot be resolved to a document span.
type MatchResult struct {
	Success bool
	Reason  MatchReason

	Start int
	End   int

	// MatchedText is the substring actually found. When the flexible search
	// locates the span in the original text it preserves source casing;
	// otherwise it is the normalized form.
	MatchedText string

	Strategy   Strategy
	Confidence float64

	// RecoveredCasing is false when MatchedText had to be taken from the
	// normalized view because the span could not be relocated verbatim.
	RecoveredCasing bool
}

// Position is a structural coordinate: a segment index plus a byte offset
// relative to that segment's own text.
type Position struct {
	Segment int
	Offset  int
}

// ResolvedSpan is a match lifted into structural coordinates. Start is
// inclusive, End exclusive; Start never sorts after End in document order.
type ResolvedSpan struct {
	Start Position
	End   Position
}

// Offsets converts the span back to full-text byte offsets against the
// segment list it was resolved from. ok is false if either position points
// outside the list.
func (s ResolvedSpan) Offsets(segments []Segment) (start, end int, ok bool) {
	if s.Start.Segment < 0 || s.Start.Segment >= len(segments) ||
		s.End.Segment < 0 || s.End.Segment >= len(segments) {
		return 0, 0, false
	}
	return segments[s.Start.Segment].Start + s.Start.Offset,
		segments[s.End.Segment].Start + s.End.Offset, true
}
