package nuggetmark

import (
	"strings"
	"testing"
)

func TestBuildMarkdownIndex_CollectsText(t *testing.T) {
	source := []byte("# Title\n\nHello *world* on one line\nand the next.\n")
	idx := BuildMarkdownIndex(source)

	for _, want := range []string{"Title", "Hello ", "world", "and the next."} {
		if !strings.Contains(idx.FullText, want) {
			t.Errorf("full text %q missing %q", idx.FullText, want)
		}
	}
	for i, seg := range idx.Segments {
		if seg.Node != nil {
			t.Errorf("markdown segment %d should carry no DOM node", i)
		}
	}
}

func TestBuildMarkdownIndex_SegmentsAreContiguous(t *testing.T) {
	idx := BuildMarkdownIndex([]byte("para one\n\n- item `code` tail\n\n```\nblock line\n```\n"))

	prevEnd := 0
	for i, seg := range idx.Segments {
		if seg.Start != prevEnd {
			t.Errorf("segment %d starts at %d, want %d", i, seg.Start, prevEnd)
		}
		prevEnd = seg.End
	}
	if prevEnd != len(idx.FullText) {
		t.Errorf("segments cover %d bytes, full text has %d", prevEnd, len(idx.FullText))
	}
	if !strings.Contains(idx.FullText, "block line") {
		t.Errorf("full text %q missing code block content", idx.FullText)
	}
}

func TestBuildMarkdownIndex_MatchAcrossSoftBreak(t *testing.T) {
	idx := BuildMarkdownIndex([]byte("The quick brown\nfox jumps over\nthe lazy dog.\n"))

	res := Match("quick brown fox", "lazy dog", idx.FullText)
	if !res.Success {
		t.Fatalf("match across soft line breaks failed: %s", res.Reason)
	}
	if span := Resolve(res, idx.Segments); span == nil {
		t.Fatal("span should resolve against markdown segments")
	}
}

func TestBuildMarkdownIndex_Empty(t *testing.T) {
	idx := BuildMarkdownIndex(nil)
	if idx.FullText != "" || len(idx.Segments) != 0 {
		t.Errorf("empty source should yield an empty index, got %q", idx.FullText)
	}
}
