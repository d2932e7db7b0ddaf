package nuggetmark

import (
	"strings"
	"unicode/utf8"
)

// defaultMinWordRatio is the per-fragment share of significant words that
// must appear in the text for the word-overlap fallback.
const defaultMinWordRatio = 0.8

// MatcherOptions configures a Matcher.
type MatcherOptions struct {
	// WordOverlap enables the synthetic word-overlap fallback. It is meant
	// for the reconstruction path: its results carry no document offsets and
	// cannot be resolved to a span. The contiguous strategies always run
	// first regardless.
	WordOverlap bool

	// MinWordRatio overrides the word-overlap acceptance threshold.
	// Defaults to 0.8.
	MinWordRatio float64
}

// Matcher locates the contiguous span bounded by a start and end fragment
// inside a full-text view. Strategies are tried in order of precision; the
// first success wins.
type Matcher struct {
	opts       MatcherOptions
	strategies []strategyFunc
}

// searchText bundles the original text with its normalized view, computed
// once per Match call and shared by all strategies.
type searchText struct {
	original string
	norm     normalizedText
}

// strategyFunc is the shared contract of every rung of the strategy ladder:
// a pure function from fragments and text to a result plus a success flag.
// On failure the result still carries the diagnostic Reason.
type strategyFunc func(start, end string, doc *searchText) (MatchResult, bool)

// NewMatcher creates a matcher with the given options.
func NewMatcher(opts MatcherOptions) *Matcher {
	if opts.MinWordRatio <= 0 {
		opts.MinWordRatio = defaultMinWordRatio
	}
	m := &Matcher{opts: opts}
	m.strategies = []strategyFunc{exactNormalized, flexibleOriginal}
	if opts.WordOverlap {
		m.strategies = append(m.strategies, m.wordOverlap)
	}
	return m
}

// Match is a convenience wrapper using default options.
func Match(startFragment, endFragment, fullText string) MatchResult {
	return NewMatcher(MatcherOptions{}).Match(startFragment, endFragment, fullText)
}

// Match runs the strategy ladder. Empty fragments never match: an empty
// needle would bind to everything. The end fragment is searched strictly
// after the start match; an end fragment present only before it is an order
// violation, not a reason to restart from offset zero. Both fragments bind
// to their first occurrence in the searched region, keeping results
// deterministic even when the text repeats.
func (m *Matcher) Match(startFragment, endFragment, fullText string) MatchResult {
	if strings.TrimSpace(startFragment) == "" || strings.TrimSpace(endFragment) == "" {
		return MatchResult{Reason: ReasonEmptyFragment}
	}

	doc := &searchText{original: fullText, norm: newNormalizedText(fullText)}

	var firstFailure *MatchResult
	for _, strategy := range m.strategies {
		result, ok := strategy(startFragment, endFragment, doc)
		if ok {
			if result.Strategy == StrategyExact {
				result = recoverCasing(result, startFragment, endFragment, doc)
			}
			return result
		}
		if firstFailure == nil {
			failure := result
			firstFailure = &failure
		}
	}
	if firstFailure != nil {
		return *firstFailure
	}
	return MatchResult{Reason: ReasonStartNotFound}
}

// exactNormalized searches the normalized needles in the normalized text and
// maps the hit back to original-text offsets through the normalization
// offset map. MatchedText is normalized (casing lost) until recoverCasing
// upgrades it.
func exactNormalized(start, end string, doc *searchText) (MatchResult, bool) {
	ns := Normalize(start)
	ne := Normalize(end)
	full := doc.norm.text

	si := strings.Index(full, ns)
	if si < 0 {
		return MatchResult{Reason: ReasonStartNotFound, Strategy: StrategyExact}, false
	}
	searchFrom := si + len(ns)
	rel := strings.Index(full[searchFrom:], ne)
	if rel < 0 {
		reason := ReasonEndNotFound
		if strings.Contains(full, ne) {
			reason = ReasonOrderViolation
		}
		return MatchResult{Reason: reason, Strategy: StrategyExact}, false
	}
	endOff := searchFrom + rel + len(ne)

	origStart, origEnd, ok := doc.norm.mapRange(si, endOff)
	if !ok {
		return MatchResult{Reason: ReasonStartNotFound, Strategy: StrategyExact}, false
	}
	return MatchResult{
		Success:     true,
		Start:       origStart,
		End:         origEnd,
		MatchedText: full[si:endOff],
		Strategy:    StrategyExact,
		Confidence:  1.0,
	}, true
}

// flexibleOriginal reruns the search directly over the original text with
// variant-tolerant case-insensitive patterns, so the matched substring keeps
// source casing.
func flexibleOriginal(start, end string, doc *searchText) (MatchResult, bool) {
	startRe, err := FlexiblePattern(start)
	if err != nil {
		return MatchResult{Reason: ReasonStartNotFound, Strategy: StrategyFlexible}, false
	}
	endRe, err := FlexiblePattern(end)
	if err != nil {
		return MatchResult{Reason: ReasonEndNotFound, Strategy: StrategyFlexible}, false
	}

	sLoc := startRe.FindStringIndex(doc.original)
	if sLoc == nil {
		return MatchResult{Reason: ReasonStartNotFound, Strategy: StrategyFlexible}, false
	}
	eLoc := endRe.FindStringIndex(doc.original[sLoc[1]:])
	if eLoc == nil {
		reason := ReasonEndNotFound
		if endRe.MatchString(doc.original) {
			reason = ReasonOrderViolation
		}
		return MatchResult{Reason: reason, Strategy: StrategyFlexible}, false
	}
	endOff := sLoc[1] + eLoc[1]

	return MatchResult{
		Success:         true,
		Start:           sLoc[0],
		End:             endOff,
		MatchedText:     doc.original[sLoc[0]:endOff],
		Strategy:        StrategyFlexible,
		Confidence:      1.0,
		RecoveredCasing: true,
	}, true
}

// recoverCasing upgrades an exact-strategy result with the literal,
// case-preserved substring when the flexible search can relocate it in the
// original text. When it cannot, the normalized result stands, flagged with
// RecoveredCasing=false rather than failing outright.
func recoverCasing(exact MatchResult, start, end string, doc *searchText) MatchResult {
	flexible, ok := flexibleOriginal(start, end, doc)
	if !ok {
		return exact
	}
	return flexible
}

// wordOverlap accepts a pair whose contiguous search failed if enough of
// each fragment's significant words appear anywhere in the text. The result
// is synthetic: MatchedText joins the fragments with an ellipsis and the
// offsets are zero.
func (m *Matcher) wordOverlap(start, end string, doc *searchText) (MatchResult, bool) {
	startRatio := wordHitRatio(start, doc.norm.text)
	endRatio := wordHitRatio(end, doc.norm.text)

	if startRatio < m.opts.MinWordRatio {
		return MatchResult{Reason: ReasonStartNotFound, Strategy: StrategyWordOverlap}, false
	}
	if endRatio < m.opts.MinWordRatio {
		return MatchResult{Reason: ReasonEndNotFound, Strategy: StrategyWordOverlap}, false
	}

	return MatchResult{
		Success:     true,
		MatchedText: strings.TrimSpace(start) + "..." + strings.TrimSpace(end),
		Strategy:    StrategyWordOverlap,
		Confidence:  min(startRatio, endRatio),
	}, true
}

// wordHitRatio is the share of the fragment's significant words (longer than
// two runes) found anywhere in the normalized text.
func wordHitRatio(fragment, normalizedFull string) float64 {
	significant := 0
	hits := 0
	for _, word := range strings.Fields(Normalize(fragment)) {
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		significant++
		if strings.Contains(normalizedFull, word) {
			hits++
		}
	}
	if significant == 0 {
		return 0
	}
	return float64(hits) / float64(significant)
}
