package term

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/johnconnor-sec/menunav-go/menu"
	"github.com/johnconnor-sec/menunav-go/nav"
)

func plainDisplay(buf *bytes.Buffer) *ANSIDisplay {
	d := NewANSIDisplay(buf)
	d.SetColorOutput(false)
	return d
}

func sampleMenu() *menu.Menu {
	return &menu.Menu{
		Name:        "Main",
		Explanation: "Pick one.",
		AllowExit:   true,
		Items: []menu.Item{
			menu.NewAction("Connect", 'c', "Open the connection"),
			menu.NewAction("Plain", 0, ""),
			menu.NewSubMenu("Tools", 't', "", []menu.Item{menu.NewAction("X", 0, "")}),
			menu.NewPrompt(menu.U64, "Port", 'p', ""),
		},
	}
}

func TestRenderMenuFrame(t *testing.T) {
	var buf bytes.Buffer
	d := plainDisplay(&buf)

	rows := d.RenderMenu([]string{"Main"}, sampleMenu(), 0)
	out := buf.String()
	lines := strings.Split(out, "\r\n")

	// Breadcrumb, explanation, blank, four items, blank, legend.
	if rows != 9 {
		t.Errorf("Expected 9 rows, got %d", rows)
	}
	// Split yields one trailing empty element after the final CRLF.
	if len(lines) != rows+1 {
		t.Errorf("Expected %d CRLF-terminated lines, got %d", rows, len(lines)-1)
	}

	if lines[0] != "Main/" {
		t.Errorf("Expected breadcrumb 'Main/', got %q", lines[0])
	}
	if lines[1] != "Pick one." {
		t.Errorf("Expected explanation line, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "❯ 0.(C)") {
		t.Errorf("Expected hover marker and hotkey on row 0, got %q", lines[3])
	}
	if !strings.Contains(lines[3], `Connect: "Open the connection"`) {
		t.Errorf("Expected item name and explanation, got %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "  1.   ") {
		t.Errorf("Expected hotkey gap for unbound item, got %q", lines[4])
	}
	if !strings.Contains(lines[5], "+Tools") {
		t.Errorf("Expected sub-menu marker, got %q", lines[5])
	}
	if !strings.Contains(lines[6], "?Port <u64>") {
		t.Errorf("Expected prompt marker and kind, got %q", lines[6])
	}
	if lines[7] != "" {
		t.Errorf("Expected a blank spacer before the legend, got %q", lines[7])
	}
	if !strings.Contains(lines[8], "(Esc) Exit") {
		t.Errorf("Expected exit hint in the legend, got %q", lines[8])
	}
	if strings.Contains(lines[8], "(Bksp) Back") {
		t.Errorf("Root legend must not offer Back, got %q", lines[8])
	}
}

func TestRenderMenuNestedLegend(t *testing.T) {
	var buf bytes.Buffer
	d := plainDisplay(&buf)

	m := sampleMenu()
	m.AllowExit = false
	d.RenderMenu([]string{"Main", "Tools"}, m, 1)
	out := buf.String()

	if !strings.Contains(out, "Main/Tools/") {
		t.Errorf("Expected nested breadcrumb, got %q", out)
	}
	if !strings.Contains(out, "(Bksp) Back") {
		t.Errorf("Nested legend must offer Back, got %q", out)
	}
	if strings.Contains(out, "(Esc) Exit") {
		t.Errorf("Legend must not offer Exit when the menu denies it, got %q", out)
	}
	if !strings.Contains(out, "❯ 1.") {
		t.Errorf("Expected hover on row 1, got %q", out)
	}
}

func TestRenderPromptFrame(t *testing.T) {
	var buf bytes.Buffer
	d := plainDisplay(&buf)

	it := menu.NewPrompt(menu.I64, "Count", 'c', "How many.")
	rows := d.RenderPrompt([]string{"Main", "Count"}, it, 1, nil)
	out := buf.String()

	// Breadcrumb, explanation, blank, open prompt row.
	if rows != 4 {
		t.Errorf("Expected 4 rows, got %d", rows)
	}
	if !strings.HasPrefix(out, "Main/Count/\r\n") {
		t.Errorf("Expected prompt breadcrumb, got %q", out)
	}
	if !strings.HasSuffix(out, "Count (a signed integer): ") {
		t.Errorf("Prompt row must stay open for input, got %q", out)
	}
	if strings.Contains(out, "attempt") {
		t.Errorf("First attempt must not be numbered, got %q", out)
	}
}

func TestRenderPromptRetryShowsError(t *testing.T) {
	var buf bytes.Buffer
	d := plainDisplay(&buf)

	it := menu.NewPrompt(menu.I64, "Count", 'c', "")
	_, parseErr := menu.ParseValue(menu.I64, "abc")
	rows := d.RenderPrompt([]string{"Main", "Count"}, it, 2, parseErr)
	out := buf.String()

	if rows != 4 {
		t.Errorf("Expected 4 rows with error line, got %d", rows)
	}
	if !strings.Contains(out, "✗ ") {
		t.Errorf("Expected inline error marker, got %q", out)
	}
	if !strings.HasSuffix(out, "Count (a signed integer), attempt 2: ") {
		t.Errorf("Expected numbered retry prompt, got %q", out)
	}
}

func TestErase(t *testing.T) {
	var buf bytes.Buffer
	d := plainDisplay(&buf)

	d.Erase(3)
	want := strings.Repeat("\033[1A\033[2K", 3) + "\r"
	if buf.String() != want {
		t.Errorf("Erase(3) wrote %q, want %q", buf.String(), want)
	}

	buf.Reset()
	d.Erase(0)
	if buf.Len() != 0 {
		t.Errorf("Erase(0) must write nothing, wrote %q", buf.String())
	}
}

func TestNextKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  nav.KeyEvent
	}{
		{"printable", "a", nav.KeyEvent{Key: nav.KeyChar, Char: 'a'}},
		{"digit", "3", nav.KeyEvent{Key: nav.KeyChar, Char: '3'}},
		{"multibyte hotkey", "é", nav.KeyEvent{Key: nav.KeyChar, Char: 'é'}},
		{"wide rune", "次", nav.KeyEvent{Key: nav.KeyChar, Char: '次'}},
		{"carriage return", "\r", nav.KeyEvent{Key: nav.KeyEnter}},
		{"line feed", "\n", nav.KeyEvent{Key: nav.KeyEnter}},
		{"delete", "\x7f", nav.KeyEvent{Key: nav.KeyBack}},
		{"backspace", "\x08", nav.KeyEvent{Key: nav.KeyBack}},
		{"arrow up", "\x1b[A", nav.KeyEvent{Key: nav.KeyUp}},
		{"arrow down", "\x1b[B", nav.KeyEvent{Key: nav.KeyDown}},
		{"lone escape", "\x1b", nav.KeyEvent{Key: nav.KeyExit}},
		{"unknown csi final", "\x1b[C", nav.KeyEvent{Key: nav.KeyExit}},
		{"control byte skipped", "\x01a", nav.KeyEvent{Key: nav.KeyChar, Char: 'a'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewReaderInput(strings.NewReader(tt.input))
			ev, err := in.NextKey()
			if err != nil {
				t.Fatalf("NextKey failed: %v", err)
			}
			if ev != tt.want {
				t.Errorf("NextKey() = %+v, want %+v", ev, tt.want)
			}
		})
	}
}

func TestNextKeySequence(t *testing.T) {
	in := NewReaderInput(strings.NewReader("\x1b[Aq\x1b[B"))
	want := []nav.KeyEvent{
		{Key: nav.KeyUp},
		{Key: nav.KeyChar, Char: 'q'},
		{Key: nav.KeyDown},
	}
	for i, w := range want {
		ev, err := in.NextKey()
		if err != nil {
			t.Fatalf("NextKey %d failed: %v", i, err)
		}
		if ev != w {
			t.Errorf("NextKey %d = %+v, want %+v", i, ev, w)
		}
	}
	if _, err := in.NextKey(); err != io.EOF {
		t.Errorf("Expected EOF after the script, got %v", err)
	}
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"line feed", "hello\n", "hello"},
		{"carriage return", "hello\r", "hello"},
		{"crlf pair", "hello\r\nnext", "hello"},
		{"backspace edits", "heyy\x7f\x7fllo\n", "hello"},
		{"backspace on empty", "\x7fok\n", "ok"},
		{"multibyte runes", "héllo\n", "héllo"},
		{"backspace over multibyte", "é\x7fok\n", "ok"},
		{"single multibyte rune", "é\n", "é"},
		{"eof with content", "partial", "partial"},
		{"empty line", "\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewReaderInput(strings.NewReader(tt.input))
			line, err := in.ReadLine()
			if err != nil {
				t.Fatalf("ReadLine failed: %v", err)
			}
			if line != tt.want {
				t.Errorf("ReadLine() = %q, want %q", line, tt.want)
			}
		})
	}
}

func TestReadLineCRLFConsumesLineFeed(t *testing.T) {
	in := NewReaderInput(strings.NewReader("one\r\ntwo\n"))
	first, err := in.ReadLine()
	if err != nil || first != "one" {
		t.Fatalf("First ReadLine = %q, %v", first, err)
	}
	second, err := in.ReadLine()
	if err != nil || second != "two" {
		t.Errorf("Second ReadLine = %q, %v; CRLF must count as one terminator", second, err)
	}
}

func TestReadLineEOF(t *testing.T) {
	in := NewReaderInput(strings.NewReader(""))
	if _, err := in.ReadLine(); err != io.EOF {
		t.Errorf("Expected EOF on empty input, got %v", err)
	}
}

func TestReadLineEcho(t *testing.T) {
	var echo bytes.Buffer
	in := NewReaderInput(strings.NewReader("hiy\x7f!\n"))
	in.EchoTo(&echo)

	line, err := in.ReadLine()
	if err != nil || line != "hi!" {
		t.Fatalf("ReadLine = %q, %v", line, err)
	}
	if echo.String() != "hiy\b \b!" {
		t.Errorf("Echo wrote %q, want typed runes with a backspace erasure", echo.String())
	}
}

func TestPromptEraseBalance(t *testing.T) {
	// The prompt row stays open, so the frame writes one line terminator
	// fewer than its row count, and the matching erase must clear the
	// current row in place and move up only rows-1 times. Otherwise every
	// prompt eats one line above the frame.
	var buf bytes.Buffer
	d := plainDisplay(&buf)

	it := menu.NewPrompt(menu.U64, "Port", 'p', "")
	rows := d.RenderPrompt([]string{"Main", "Port"}, it, 1, nil)
	if got := strings.Count(buf.String(), "\r\n"); got != rows-1 {
		t.Errorf("Prompt frame wrote %d line terminators for %d rows, want %d", got, rows, rows-1)
	}

	buf.Reset()
	d.Erase(rows)
	out := buf.String()
	if !strings.HasPrefix(out, "\r\033[2K") {
		t.Errorf("Prompt erase must clear the open row in place, got %q", out)
	}
	if got := strings.Count(out, "\033[1A"); got != rows-1 {
		t.Errorf("Prompt erase moved up %d rows, want %d", got, rows-1)
	}
}

func TestMenuEraseAfterPromptErase(t *testing.T) {
	// Once the open prompt row is erased, menu frames go back to the
	// cursor-below-frame convention.
	var buf bytes.Buffer
	d := plainDisplay(&buf)

	it := menu.NewPrompt(menu.U64, "Port", 'p', "")
	rows := d.RenderPrompt([]string{"Main", "Port"}, it, 1, nil)
	d.Erase(rows)

	buf.Reset()
	rows = d.RenderMenu([]string{"Main"}, sampleMenu(), 0)
	buf.Reset()
	d.Erase(rows)
	out := buf.String()
	if strings.HasPrefix(out, "\r\033[2K") {
		t.Errorf("Menu erase must not treat the frame as open, got %q", out)
	}
	if got := strings.Count(out, "\033[1A"); got != rows {
		t.Errorf("Menu erase moved up %d rows, want %d", got, rows)
	}
}
