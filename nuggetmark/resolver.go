package nuggetmark

import "sort"

// Resolve maps a successful match back to structural coordinates against the
// segment list the match was made over. It returns nil when an offset falls
// outside every segment; that is reachable only defensively (the document
// mutated after indexing, or the result is a synthetic word-overlap match)
// and callers must treat it as "skip this annotation attempt". Resolving a
// match against a segment list from a different document is a programmer
// error and yields an arbitrary, not necessarily nil, span.
func Resolve(result MatchResult, segments []Segment) *ResolvedSpan {
	if !result.Success || result.Start >= result.End {
		return nil
	}
	startSeg, ok := segmentAt(segments, result.Start)
	if !ok {
		return nil
	}
	// End is exclusive, so its owning segment is the one holding End-1.
	endSeg, ok := segmentAt(segments, result.End-1)
	if !ok {
		return nil
	}
	return &ResolvedSpan{
		Start: Position{Segment: startSeg, Offset: result.Start - segments[startSeg].Start},
		End:   Position{Segment: endSeg, Offset: result.End - segments[endSeg].Start},
	}
}

// segmentAt binary-searches for the segment containing the given full-text
// offset, relying on segments being sorted and contiguous.
func segmentAt(segments []Segment, offset int) (int, bool) {
	i := sort.Search(len(segments), func(i int) bool { return segments[i].End > offset })
	if i == len(segments) || offset < segments[i].Start {
		return 0, false
	}
	return i, true
}
