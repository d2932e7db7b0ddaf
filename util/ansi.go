// Package util holds terminal helpers shared by the TUI layers.
package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sgrPattern = regexp.MustCompile(`\x1b\[([0-9;]*)m`)

// AnsiConverter rewrites ANSI SGR escape sequences into tview color tags so
// glamour output can be shown inside a tview TextView with dynamic colors.
type AnsiConverter struct {
	enabled bool
}

// NewAnsiConverter creates a converter. When enabled is false, Convert
// returns its input unchanged.
func NewAnsiConverter(enabled bool) *AnsiConverter {
	return &AnsiConverter{enabled: enabled}
}

// sgrState is the subset of SGR attributes the converter tracks.
type sgrState struct {
	fg, bg string
	bold   bool
}

func (s sgrState) tag() string {
	fg, bg, attr := s.fg, s.bg, "-"
	if fg == "" {
		fg = "-"
	}
	if bg == "" {
		bg = "-"
	}
	if s.bold {
		attr = "b"
	}
	return fmt.Sprintf("[%s:%s:%s]", fg, bg, attr)
}

// Convert translates every SGR sequence in text into an equivalent tview tag,
// tracking foreground, background, and bold across sequences.
func (c *AnsiConverter) Convert(text string) string {
	if !c.enabled {
		return text
	}

	var (
		b     strings.Builder
		state sgrState
		last  int
	)
	for _, m := range sgrPattern.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(text[last:m[0]])
		next := applySGR(text[m[2]:m[3]], state)
		if next != state {
			state = next
			b.WriteString(state.tag())
		}
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// basicColors are SGR 30-37 / 40-47 in order.
var basicColors = []string{
	"#000000", "#800000", "#008000", "#808000",
	"#000080", "#800080", "#008080", "#c0c0c0",
}

func applySGR(params string, state sgrState) sgrState {
	if params == "" {
		params = "0" // ESC[m means reset
	}
	parts := strings.Split(params, ";")
	for i := 0; i < len(parts); i++ {
		code, err := strconv.Atoi(parts[i])
		if err != nil {
			continue
		}
		switch {
		case code == 0:
			state = sgrState{}
		case code == 1:
			state.bold = true
		case code == 22:
			state.bold = false
		case code >= 30 && code <= 37:
			state.fg = basicColors[code-30]
		case code >= 40 && code <= 47:
			state.bg = basicColors[code-40]
		case code >= 90 && code <= 97:
			state.fg = Ansi256ToHex(code - 90 + 8)
		case code == 39:
			state.fg = ""
		case code == 49:
			state.bg = ""
		case code == 38 || code == 48:
			color, consumed := extendedColor(parts[i+1:])
			if color == "" {
				break
			}
			if code == 38 {
				state.fg = color
			} else {
				state.bg = color
			}
			i += consumed
		}
	}
	return state
}

// extendedColor parses the tail of a 38/48 sequence: "5;<idx>" for the 256
// palette or "2;<r>;<g>;<b>" for truecolor. It returns the hex color and how
// many parameters it consumed.
func extendedColor(rest []string) (string, int) {
	if len(rest) >= 2 && rest[0] == "5" {
		if idx, err := strconv.Atoi(rest[1]); err == nil {
			return Ansi256ToHex(idx), 2
		}
	}
	if len(rest) >= 4 && rest[0] == "2" {
		r, errR := strconv.Atoi(rest[1])
		g, errG := strconv.Atoi(rest[2])
		b, errB := strconv.Atoi(rest[3])
		if errR == nil && errG == nil && errB == nil {
			return fmt.Sprintf("#%02x%02x%02x", r, g, b), 4
		}
	}
	return "", 0
}

// Ansi256ToHex converts an ANSI 256-palette index to a hex color.
func Ansi256ToHex(code int) string {
	switch {
	case code >= 0 && code < 8:
		return basicColors[code]
	case code >= 8 && code < 16:
		bright := []string{
			"#808080", "#ff0000", "#00ff00", "#ffff00",
			"#0000ff", "#ff00ff", "#00ffff", "#ffffff",
		}
		return bright[code-8]
	case code >= 16 && code <= 231:
		code -= 16
		r := (code / 36) * 51
		g := ((code / 6) % 6) * 51
		b := (code % 6) * 51
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	case code >= 232 && code <= 255:
		gray := 8 + (code-232)*10
		return fmt.Sprintf("#%02x%02x%02x", gray, gray, gray)
	default:
		return "#000000"
	}
}
