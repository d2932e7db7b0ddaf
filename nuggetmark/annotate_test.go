package nuggetmark

import (
	"io"
	"log"
	"testing"
)

func init() {
	// Tests exercise failure paths on purpose; keep their diagnostics quiet.
	SetLogger(log.New(io.Discard, "", 0))
}

func TestHighlight_ScenarioWithOriginalCasing(t *testing.T) {
	doc := parseDoc(t, "<html><body><p>Hello World. The QUICK brown fox jumps over the lazy dog.</p></body></html>")
	a := New(doc, Options{})

	if !a.Highlight("the quick", "lazy dog") {
		t.Fatal("highlight should succeed")
	}
	if !a.Highlight("the quick", "lazy dog") {
		t.Fatal("repeat highlight should report success")
	}
	if a.Count() != 1 {
		t.Fatalf("count = %d, want 1", a.Count())
	}

	records := a.Records()
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Match.MatchedText != "The QUICK brown fox jumps over the lazy dog" {
		t.Errorf("matched text = %q", records[0].Match.MatchedText)
	}
}

func TestHighlight_DedupesAcrossCasingAndTypography(t *testing.T) {
	doc := parseDoc(t, "<html><body><p>It’s the quick brown fox again.</p></body></html>")
	a := New(doc, Options{})

	if !a.Highlight("it’s the", "brown fox") {
		t.Fatal("first highlight should succeed")
	}
	if !a.Highlight("IT'S   THE", "Brown Fox") {
		t.Fatal("logically identical highlight should succeed")
	}
	if a.Count() != 1 {
		t.Errorf("count = %d, want 1 (same logical key)", a.Count())
	}
}

func TestHighlight_UnmatchedFragmentIsIsolated(t *testing.T) {
	doc := parseDoc(t, "<html><body><p>some page content here</p></body></html>")
	a := New(doc, Options{})

	if a.Highlight("xyz-not-present", "also-absent") {
		t.Fatal("highlight of absent fragments should fail")
	}
	if a.Count() != 0 {
		t.Errorf("count = %d, want 0", a.Count())
	}

	// The failure must not poison later calls in the batch.
	if !a.Highlight("some page", "content here") {
		t.Error("subsequent highlight should still succeed")
	}
}

func TestHighlight_EmptyFragments(t *testing.T) {
	doc := parseDoc(t, "<html><body><p>text</p></body></html>")
	a := New(doc, Options{})
	if a.Highlight("", "") {
		t.Error("empty fragments should not highlight")
	}
	if a.Count() != 0 {
		t.Errorf("count = %d, want 0", a.Count())
	}
}

func TestHighlight_OverlayKeepsDocumentUntouched(t *testing.T) {
	doc := parseDoc(t, "<html><body><p>alpha <b>beta</b> gamma</p></body></html>")
	before := VisibleText(doc)

	a := New(doc, Options{})
	a.Highlight("alpha", "gamma")
	a.Highlight("not", "there")
	a.Highlight("beta", "gamma")

	if after := VisibleText(doc); after != before {
		t.Errorf("visible text changed: %q -> %q", before, after)
	}

	overlay, ok := a.Renderer().(*OverlayRenderer)
	if !ok {
		t.Fatal("default renderer should be the overlay renderer")
	}
	ranges := overlay.Ranges()
	if len(ranges) != 2 {
		t.Fatalf("overlay ranges = %d, want 2", len(ranges))
	}
	// Registration order is application order.
	if ranges[0].Key == ranges[1].Key {
		t.Error("distinct nuggets must have distinct keys")
	}
}

func TestClearAll_EmptiesRecordsAndRegistry(t *testing.T) {
	doc := parseDoc(t, "<html><body><p>alpha beta gamma</p></body></html>")
	a := New(doc, Options{})

	a.ClearAll() // safe with nothing applied

	a.Highlight("alpha", "beta")
	if a.Count() != 1 {
		t.Fatalf("count = %d, want 1", a.Count())
	}
	a.ClearAll()
	if a.Count() != 0 {
		t.Errorf("count after clear = %d, want 0", a.Count())
	}
	overlay := a.Renderer().(*OverlayRenderer)
	if len(overlay.Ranges()) != 0 {
		t.Error("overlay registry should be empty after ClearAll")
	}

	// The same nugget can be applied again after clearing.
	if !a.Highlight("alpha", "beta") {
		t.Error("re-highlight after clear should succeed")
	}
}

func TestAnnotator_MarkdownSession(t *testing.T) {
	idx := BuildMarkdownIndex([]byte("# Notes\n\nThe quick brown fox\njumps over the lazy dog.\n"))
	a := NewForIndex(idx, Options{})

	if !a.Highlight("quick brown", "lazy dog") {
		t.Fatal("markdown highlight should succeed")
	}
	if a.Count() != 1 {
		t.Errorf("count = %d, want 1", a.Count())
	}
	a.Reindex() // no-op for prebuilt indexes
	if a.Index().FullText == "" {
		t.Error("index should survive Reindex")
	}
}

func TestHighlightKey_NormalizesFragments(t *testing.T) {
	k1, ok1 := HighlightKey("The  Quick", "Lazy—Dog")
	k2, ok2 := HighlightKey("the quick", "lazy-dog")
	if !ok1 || !ok2 {
		t.Fatal("keys should derive")
	}
	if k1 != k2 {
		t.Errorf("keys differ: %q vs %q", k1, k2)
	}
	if _, ok := HighlightKey(" ", "x"); ok {
		t.Error("blank fragment should not produce a key")
	}
}

func TestAnnotator_Reconstruct(t *testing.T) {
	doc := parseDoc(t, "<html><body><p>The quick brown fox jumps over the lazy dog</p></body></html>")
	a := New(doc, Options{})
	if got := a.Reconstruct("The", "dog"); got != "The quick brown fox jumps over the lazy dog" {
		t.Errorf("reconstructed %q", got)
	}
}
