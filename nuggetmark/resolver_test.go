package nuggetmark

import "testing"

// three segments covering "aaaaabbbcccccc": [0,5) [5,8) [8,14)
func testSegments() []Segment {
	return []Segment{
		{Start: 0, End: 5},
		{Start: 5, End: 8},
		{Start: 8, End: 14},
	}
}

func TestResolve_WithinOneSegment(t *testing.T) {
	span := Resolve(MatchResult{Success: true, Start: 1, End: 4}, testSegments())
	if span == nil {
		t.Fatal("expected a span")
	}
	if span.Start != (Position{Segment: 0, Offset: 1}) || span.End != (Position{Segment: 0, Offset: 4}) {
		t.Errorf("span = %+v", span)
	}
}

func TestResolve_AcrossSegments(t *testing.T) {
	span := Resolve(MatchResult{Success: true, Start: 3, End: 10}, testSegments())
	if span == nil {
		t.Fatal("expected a span")
	}
	if span.Start != (Position{Segment: 0, Offset: 3}) {
		t.Errorf("start = %+v", span.Start)
	}
	if span.End != (Position{Segment: 2, Offset: 2}) {
		t.Errorf("end = %+v", span.End)
	}
}

func TestResolve_EndOnSegmentBoundary(t *testing.T) {
	// End offset 8 is exclusive, so the owning segment is the middle one.
	span := Resolve(MatchResult{Success: true, Start: 5, End: 8}, testSegments())
	if span == nil {
		t.Fatal("expected a span")
	}
	if span.End != (Position{Segment: 1, Offset: 3}) {
		t.Errorf("end = %+v", span.End)
	}
}

func TestResolve_DefensiveNils(t *testing.T) {
	segs := testSegments()

	if Resolve(MatchResult{Success: false, Start: 0, End: 3}, segs) != nil {
		t.Error("failed match should not resolve")
	}
	if Resolve(MatchResult{Success: true, Start: 0, End: 0}, segs) != nil {
		t.Error("synthetic zero-offset match should not resolve")
	}
	if Resolve(MatchResult{Success: true, Start: 10, End: 20}, segs) != nil {
		t.Error("out-of-range offsets should not resolve")
	}
	if Resolve(MatchResult{Success: true, Start: 0, End: 3}, nil) != nil {
		t.Error("empty segment list should not resolve")
	}
}

func TestResolvedSpan_Offsets(t *testing.T) {
	segs := testSegments()
	span := ResolvedSpan{
		Start: Position{Segment: 0, Offset: 3},
		End:   Position{Segment: 2, Offset: 2},
	}
	start, end, ok := span.Offsets(segs)
	if !ok || start != 3 || end != 10 {
		t.Errorf("offsets = (%d, %d, %v), want (3, 10, true)", start, end, ok)
	}

	if _, _, ok := (ResolvedSpan{End: Position{Segment: 5}}).Offsets(segs); ok {
		t.Error("out-of-range segment index should not convert")
	}
}
