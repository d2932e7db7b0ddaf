package termview

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/alexferrari88/nuggetmark/util"
)

// CardRenderer formats a reconstructed nugget as a small markdown card
// (title plus blockquoted wording), renders it to ANSI through glamour, and
// converts the result to tview color tags for a results panel.
type CardRenderer struct {
	width     int
	converter *util.AnsiConverter
}

// NewCardRenderer creates a card renderer wrapping at the given width
// (0 disables wrapping).
func NewCardRenderer(width int) *CardRenderer {
	return &CardRenderer{width: width, converter: util.NewAnsiConverter(true)}
}

// Render produces tview-tagged text for one nugget. On a glamour failure it
// returns a plain-text card along with the error so callers can still show
// something.
func (r *CardRenderer) Render(title, body string) (string, error) {
	plain := title + "\n" + body + "\n"

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return plain, err
	}
	out, err := renderer.Render(cardMarkdown(title, body))
	if err != nil {
		return plain, err
	}
	return r.converter.Convert(out), nil
}

// cardMarkdown builds the card's markdown source: bold title, blockquoted
// body with every line prefixed so multi-line wording stays one quote.
func cardMarkdown(title, body string) string {
	var b strings.Builder
	b.WriteString("**")
	b.WriteString(title)
	b.WriteString("**\n\n")
	for _, line := range strings.Split(body, "\n") {
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
