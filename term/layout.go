// Package term provides terminal backends for the navigation engine: a
// tcell-based full-screen backend and a plain ANSI stream backend. Both
// implement the nav display and input ports and render identical frame text.
package term

import (
	"fmt"
	"strings"

	"github.com/johnconnor-sec/menunav-go/menu"
)

// LineKind tells a backend how to style one frame line.
type LineKind int

const (
	LineBreadcrumb LineKind = iota
	LineExplanation
	LineItem
	LineHover
	LineLegend
	LineError
	LinePrompt
	LineBlank
)

// Line is one row of a rendered frame.
type Line struct {
	Kind LineKind
	Text string
}

// menuLines lays out a menu frame: breadcrumb, optional explanation, item
// rows, and the key legend. The hover row carries its own kind so backends
// can highlight it.
func menuLines(path []string, m *menu.Menu, hover int) []Line {
	lines := []Line{{Kind: LineBreadcrumb, Text: breadcrumb(path)}}
	if m.Explanation != "" {
		lines = append(lines, Line{Kind: LineExplanation, Text: m.Explanation})
	}
	lines = append(lines, Line{Kind: LineBlank})
	for i, it := range m.Items {
		kind := LineItem
		marker := "  "
		if i == hover {
			kind = LineHover
			marker = "❯ "
		}
		lines = append(lines, Line{Kind: kind, Text: marker + itemRow(i, it)})
	}
	lines = append(lines, Line{Kind: LineBlank})
	lines = append(lines, Line{Kind: LineLegend, Text: legend(len(path) > 1, m.AllowExit)})
	return lines
}

// promptLines lays out a typed-prompt frame. The last line is the input
// prompt; backends place the line editor or echoed input after its text.
func promptLines(path []string, it menu.Item, attempt int, parseErr error) []Line {
	lines := []Line{{Kind: LineBreadcrumb, Text: breadcrumb(path)}}
	if it.Explanation != "" {
		lines = append(lines, Line{Kind: LineExplanation, Text: it.Explanation})
	}
	lines = append(lines, Line{Kind: LineBlank})
	if parseErr != nil {
		lines = append(lines, Line{Kind: LineError, Text: "✗ " + firstLine(parseErr.Error())})
	}
	prompt := fmt.Sprintf("%s (%s)", it.Name, it.Value.Hint())
	if attempt > 1 {
		prompt = fmt.Sprintf("%s, attempt %d", prompt, attempt)
	}
	lines = append(lines, Line{Kind: LinePrompt, Text: prompt + ": "})
	return lines
}

func breadcrumb(path []string) string {
	return strings.Join(path, "/") + "/"
}

func itemRow(index int, it menu.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.", index)
	if it.Hotkey != 0 {
		fmt.Fprintf(&b, "(%s)", strings.ToUpper(string(it.Hotkey)))
	} else {
		b.WriteString("   ")
	}
	switch it.Kind {
	case menu.ItemSubMenu:
		b.WriteString(" +")
	case menu.ItemPrompt:
		b.WriteString(" ?")
	default:
		b.WriteString("  ")
	}
	b.WriteString(it.Name)
	if it.Kind == menu.ItemPrompt {
		fmt.Fprintf(&b, " <%s>", it.Value)
	}
	if it.Explanation != "" {
		fmt.Fprintf(&b, ": %q", it.Explanation)
	}
	return b.String()
}

func legend(hasParent, allowExit bool) string {
	parts := []string{"(↑/↓) Move", "(Enter) Select", "(0-9/key) Pick"}
	if hasParent {
		parts = append(parts, "(Bksp) Back")
	}
	if allowExit {
		parts = append(parts, "(Esc) Exit")
	}
	return strings.Join(parts, "  ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
