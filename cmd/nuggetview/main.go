// nuggetview loads a page, annotates it with model-supplied fragment pairs,
// and opens a terminal browser over the highlights.
//
// usage: nuggetview <file-path-or-url> <nuggets.json>
//
// The JSON file is an array of objects with "start_content" and
// "end_content" fields, the shape the model client emits per nugget; any
// "type" label is shown in the results panel but ignored by the engine.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/net/html"

	"github.com/alexferrari88/nuggetmark/loaders"
	nm "github.com/alexferrari88/nuggetmark/nuggetmark"
	"github.com/alexferrari88/nuggetmark/termview"
)

type nugget struct {
	StartContent string `json:"start_content"`
	EndContent   string `json:"end_content"`
	Type         string `json:"type,omitempty"`
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <file-path-or-url> <nuggets.json>\n", os.Args[0])
		os.Exit(1)
	}

	session, err := loadSession(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading document: %v\n", err)
		os.Exit(1)
	}
	nuggets, err := loadNuggets(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading nuggets: %v\n", err)
		os.Exit(1)
	}

	// One batch, applied sequentially; a nugget that cannot be matched is
	// skipped without affecting the rest.
	matched := 0
	for _, n := range nuggets {
		if session.Highlight(n.StartContent, n.EndContent) {
			matched++
		}
	}

	if err := runUI(session, nuggets, matched); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadSession(ref string) (*nm.Annotator, error) {
	loader := &loaders.FileHTTP{}
	src, err := loader.Load(ref)
	if err != nil {
		return nil, err
	}

	if src.Kind == loaders.KindMarkdown {
		return nm.NewForIndex(nm.BuildMarkdownIndex(src.Data), nm.Options{}), nil
	}
	doc, err := html.Parse(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return nm.New(doc, nm.Options{}), nil
}

func loadNuggets(path string) ([]nugget, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var nuggets []nugget
	if err := json.Unmarshal(raw, &nuggets); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return nuggets, nil
}

func runUI(session *nm.Annotator, nuggets []nugget, matched int) error {
	app := tview.NewApplication()

	viewer := termview.NewViewer(session)
	viewer.SetBorder(true)
	viewer.SetTitle(" document ")

	cards := tview.NewTextView()
	cards.SetDynamicColors(true)
	cards.SetWrap(true)
	cards.SetBorder(true)
	cards.SetTitle(" nuggets ")
	cards.SetText(renderCards(session, nuggets))

	status := tview.NewTextView()
	status.SetDynamicColors(true)
	viewer.SetMoveHandler(func(current, total int) {
		position := "-"
		if current >= 0 {
			position = fmt.Sprintf("%d/%d", current+1, total)
		}
		status.SetText(fmt.Sprintf(" %d of %d nuggets matched | highlight %s | Tab/Shift-Tab cycle, c clear, q quit",
			matched, len(nuggets), position))
	})

	columns := tview.NewFlex().
		AddItem(viewer, 0, 3, true).
		AddItem(cards, 0, 2, false)
	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(columns, 0, 1, true).
		AddItem(status, 1, 0, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(root, true).Run()
}

func renderCards(session *nm.Annotator, nuggets []nugget) string {
	renderer := termview.NewCardRenderer(0)

	var b strings.Builder
	for i, n := range nuggets {
		label := n.Type
		if label == "" {
			label = "nugget"
		}
		title := fmt.Sprintf("%d. %s", i+1, label)
		body := session.Reconstruct(n.StartContent, n.EndContent)

		card, err := renderer.Render(title, body)
		if err != nil {
			card = title + "\n" + body + "\n"
		}
		b.WriteString(card)
		b.WriteString("\n")
	}
	return b.String()
}
