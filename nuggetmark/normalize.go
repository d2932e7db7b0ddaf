package nuggetmark

import (
	"regexp"
	"strings"
	"unicode"
)

// Typographic variants collapsed by normalization. Each set's first rune is
// the canonical form.
const (
	apostropheVariants = "'’‘´`ʼ"
	quoteVariants      = "\"“”«»„"
	dashVariants       = "-–—−"
)

// Regex character classes for the same variant sets, used by FlexiblePattern.
const (
	apostropheClass = "['’‘´`ʼ]"
	quoteClass      = "[\"“”«»„]"
	dashClass       = "[-–—−]"
	ellipsisAlt     = "(?:\\.\\.\\.|…)"
)

// Normalize canonicalizes text for comparison: lowercase, typographic
// apostrophes/quotes/dashes collapsed to their ASCII forms, the ellipsis
// glyph expanded to three periods, whitespace runs collapsed to a single
// space, leading and trailing whitespace removed. It is idempotent.
func Normalize(text string) string {
	return newNormalizedText(text).text
}

// normalizedText pairs a normalized string with a map back into the original
// text: for every byte i of the normalized form, starts[i] is the original
// byte offset of the rune that produced it and ends[i] the offset just past
// that rune. A whitespace run maps to the full extent of the run.
type normalizedText struct {
	text   string
	starts []int
	ends   []int
}

func newNormalizedText(text string) normalizedText {
	var b strings.Builder
	starts := make([]int, 0, len(text))
	ends := make([]int, 0, len(text))

	emit := func(s string, from, to int) {
		for i := 0; i < len(s); i++ {
			starts = append(starts, from)
			ends = append(ends, to)
		}
		b.WriteString(s)
	}

	pendingSpace := false
	spaceFrom := 0
	for i, r := range text {
		if unicode.IsSpace(r) {
			if b.Len() > 0 && !pendingSpace {
				pendingSpace = true
				spaceFrom = i
			}
			continue
		}
		if pendingSpace {
			emit(" ", spaceFrom, i)
			pendingSpace = false
		}
		next := i + runeLen(r)
		switch {
		case strings.ContainsRune(apostropheVariants, r):
			emit("'", i, next)
		case strings.ContainsRune(quoteVariants, r):
			emit(`"`, i, next)
		case strings.ContainsRune(dashVariants, r):
			emit("-", i, next)
		case r == '…':
			emit("...", i, next)
		default:
			emit(strings.ToLower(string(r)), i, next)
		}
	}
	return normalizedText{text: b.String(), starts: starts, ends: ends}
}

// mapRange translates a half-open byte range of the normalized text back to
// the corresponding range of the original text.
func (n normalizedText) mapRange(start, end int) (int, int, bool) {
	if start < 0 || end <= start || end > len(n.text) {
		return 0, 0, false
	}
	return n.starts[start], n.ends[end-1], true
}

func runeLen(r rune) int {
	return len(string(r))
}

// FlexiblePattern compiles a fragment into a case-insensitive pattern that
// matches it literally while treating typographic variants and whitespace
// runs as interchangeable. Searching the original, non-normalized text with
// the pattern yields a substring that keeps the source casing.
func FlexiblePattern(fragment string) (*regexp.Regexp, error) {
	runes := []rune(strings.TrimSpace(fragment))

	var b strings.Builder
	b.WriteString("(?i)")
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
			b.WriteString(`\s+`)
		case strings.ContainsRune(apostropheVariants, r):
			b.WriteString(apostropheClass)
		case strings.ContainsRune(quoteVariants, r):
			b.WriteString(quoteClass)
		case strings.ContainsRune(dashVariants, r):
			b.WriteString(dashClass)
		case r == '…':
			b.WriteString(ellipsisAlt)
		case r == '.' && i+2 < len(runes) && runes[i+1] == '.' && runes[i+2] == '.':
			b.WriteString(ellipsisAlt)
			i += 2
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return regexp.Compile(b.String())
}
