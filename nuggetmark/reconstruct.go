package nuggetmark

// reconstructSlack is the minimum number of characters a match must add over
// the two fragments for its text to count as a meaningful reconstruction.
const reconstructSlack = 10

// Reconstruct returns the full original wording bounded by the fragment
// pair, for display layers that want to show more than the two short
// fragments. It never touches a document: matching runs over the given full
// text only, with the word-overlap fallback enabled.
//
// A match barely longer than the fragments themselves is degenerate, so the
// literal "start...end" fallback is returned unless the matched text exceeds
// len(start)+len(end)+10 characters.
func Reconstruct(startFragment, endFragment, fullText string) string {
	fallback := startFragment + "..." + endFragment

	result := NewMatcher(MatcherOptions{WordOverlap: true}).Match(startFragment, endFragment, fullText)
	if !result.Success {
		return fallback
	}
	if len(result.MatchedText) > len(startFragment)+len(endFragment)+reconstructSlack {
		return result.MatchedText
	}
	return fallback
}
