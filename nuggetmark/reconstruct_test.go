package nuggetmark

import "testing"

func TestReconstruct_ReturnsFullWording(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog"
	got := Reconstruct("The", "dog", text)
	if got != text {
		t.Errorf("reconstructed %q, want the full sentence", got)
	}
}

func TestReconstruct_GuardsDegenerateMatches(t *testing.T) {
	// "Hello World" matches but adds nothing over the fragments themselves.
	got := Reconstruct("Hello", "World", "Hello World")
	if got != "Hello...World" {
		t.Errorf("reconstructed %q, want the literal fallback", got)
	}
}

func TestReconstruct_FallbackWhenUnmatched(t *testing.T) {
	got := Reconstruct("missing start", "missing end", "completely unrelated text")
	if got != "missing start...missing end" {
		t.Errorf("reconstructed %q, want the literal fallback", got)
	}
}

func TestReconstruct_PreservesSourceCasing(t *testing.T) {
	got := Reconstruct("the quick", "lazy dog", foxText)
	if got != "The QUICK brown fox jumps over the lazy dog" {
		t.Errorf("reconstructed %q", got)
	}
}
