package term

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/johnconnor-sec/menunav-go/internal/output"
	"github.com/johnconnor-sec/menunav-go/menu"
	"github.com/johnconnor-sec/menunav-go/nav"
)

// ANSIDisplay renders frames as styled text on any io.Writer and erases them
// in place with cursor-up/erase-line sequences, so navigation never scrolls
// the scrollback. It pairs with ReaderInput for stream-based use and tests.
type ANSIDisplay struct {
	w    io.Writer
	f    *output.Formatter
	open bool // last frame ended with an unterminated prompt row
}

// NewANSIDisplay creates a display writing to w.
func NewANSIDisplay(w io.Writer) *ANSIDisplay {
	return &ANSIDisplay{w: w, f: output.NewFormatter(w)}
}

// SetColorOutput enables or disables color output.
func (d *ANSIDisplay) SetColorOutput(enabled bool) {
	d.f.SetColorOutput(enabled)
}

// RenderMenu draws a menu frame and returns the number of rows drawn.
// Lines end in CRLF so the output stays aligned when the terminal is in
// raw mode.
func (d *ANSIDisplay) RenderMenu(path []string, m *menu.Menu, hover int) int {
	lines := menuLines(path, m, hover)
	for _, line := range lines {
		fmt.Fprint(d.w, d.styled(line), "\r\n")
	}
	d.open = false
	return len(lines)
}

// RenderPrompt draws a typed-prompt frame. The prompt row is left open so
// the user's echoed input completes it; it still counts as one row.
func (d *ANSIDisplay) RenderPrompt(path []string, it menu.Item, attempt int, parseErr error) int {
	lines := promptLines(path, it, attempt, parseErr)
	for _, line := range lines[:len(lines)-1] {
		fmt.Fprint(d.w, d.styled(line), "\r\n")
	}
	fmt.Fprint(d.w, d.styled(lines[len(lines)-1]))
	d.open = true
	return len(lines)
}

// Erase removes exactly rows previously rendered rows. After a prompt frame
// the cursor still sits on the open prompt row rather than below the frame,
// so that row is cleared in place and only rows-1 lines lie above it.
func (d *ANSIDisplay) Erase(rows int) {
	if rows <= 0 {
		return
	}
	if d.open {
		fmt.Fprint(d.w, "\r\033[2K", strings.Repeat("\033[1A\033[2K", rows-1))
		d.open = false
		return
	}
	fmt.Fprint(d.w, strings.Repeat("\033[1A\033[2K", rows), "\r")
}

func (d *ANSIDisplay) styled(line Line) string {
	theme := d.f.Theme()
	switch line.Kind {
	case LineBreadcrumb:
		return d.f.Colorize(line.Text, theme.Breadcrumb, output.StyleBold)
	case LineExplanation:
		return d.f.Colorize(line.Text, theme.Explanation, output.StyleDim)
	case LineHover:
		return d.f.Colorize(line.Text, theme.Hover, output.StyleBold)
	case LineLegend:
		return d.f.Colorize(line.Text, theme.Legend, output.StyleDim)
	case LineError:
		return d.f.Colorize(line.Text, theme.Error, output.StyleBold)
	default:
		return line.Text
	}
}

// ReaderInput turns a byte stream into logical key events. Escape sequences
// for the arrow keys are decoded; a lone escape byte is the exit key;
// backspace is the back key; anything printable is a literal character.
type ReaderInput struct {
	br   *bufio.Reader
	echo io.Writer
}

// NewReaderInput creates an input port reading from r. For a real terminal
// the caller is responsible for putting the descriptor into raw mode.
func NewReaderInput(r io.Reader) *ReaderInput {
	return &ReaderInput{br: bufio.NewReader(r)}
}

// EchoTo makes ReadLine echo typed input to w. Raw-mode terminals do not
// echo on their own, so the CLI points this at the same writer the display
// renders to.
func (in *ReaderInput) EchoTo(w io.Writer) {
	in.echo = w
}

// NextKey blocks until one logical key is available.
func (in *ReaderInput) NextKey() (nav.KeyEvent, error) {
	for {
		b, err := in.br.ReadByte()
		if err != nil {
			return nav.KeyEvent{}, err
		}
		switch {
		case b == 27:
			return in.escapeKey(), nil
		case b == '\r' || b == '\n':
			return nav.KeyEvent{Key: nav.KeyEnter}, nil
		case b == 127 || b == 8:
			return nav.KeyEvent{Key: nav.KeyBack}, nil
		case b >= 32 && b < 127:
			return nav.KeyEvent{Key: nav.KeyChar, Char: rune(b)}, nil
		case b >= 0x80:
			// Lead byte of a multi-byte UTF-8 character; decode the whole
			// rune so non-ASCII hotkeys work on this backend.
			if err := in.br.UnreadByte(); err != nil {
				continue
			}
			r, _, err := in.br.ReadRune()
			if err != nil {
				return nav.KeyEvent{}, err
			}
			return nav.KeyEvent{Key: nav.KeyChar, Char: r}, nil
		default:
			// Control bytes that map to nothing are dropped here rather
			// than surfaced as unmatchable character events.
			continue
		}
	}
}

// escapeKey decodes the remainder of an escape sequence. The sequence bytes
// arrive in the same read as the escape byte on a real terminal, so an empty
// buffer means the user pressed the escape key itself.
func (in *ReaderInput) escapeKey() nav.KeyEvent {
	if in.br.Buffered() == 0 {
		return nav.KeyEvent{Key: nav.KeyExit}
	}
	next, err := in.br.Peek(1)
	if err != nil || len(next) == 0 || next[0] != '[' {
		return nav.KeyEvent{Key: nav.KeyExit}
	}
	in.br.ReadByte()
	if in.br.Buffered() == 0 {
		return nav.KeyEvent{Key: nav.KeyExit}
	}
	b, err := in.br.ReadByte()
	if err != nil {
		return nav.KeyEvent{Key: nav.KeyExit}
	}
	switch b {
	case 'A':
		return nav.KeyEvent{Key: nav.KeyUp}
	case 'B':
		return nav.KeyEvent{Key: nav.KeyDown}
	default:
		return nav.KeyEvent{Key: nav.KeyExit}
	}
}

// ReadLine blocks for one raw line of text, without the line terminator.
// Both CR and LF terminate a line, so it works in raw and cooked mode;
// backspace edits the pending line. Input is decoded as UTF-8 so the line
// reaches the caller exactly as typed.
func (in *ReaderInput) ReadLine() (string, error) {
	var buf []rune
	for {
		r, _, err := in.br.ReadRune()
		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		switch {
		case r == '\n':
			return string(buf), nil
		case r == '\r':
			if in.br.Buffered() > 0 {
				if next, _ := in.br.Peek(1); len(next) == 1 && next[0] == '\n' {
					in.br.ReadByte()
				}
			}
			return string(buf), nil
		case r == 127 || r == 8:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				if in.echo != nil {
					fmt.Fprint(in.echo, "\b \b")
				}
			}
		case r >= 32:
			buf = append(buf, r)
			if in.echo != nil {
				fmt.Fprint(in.echo, string(r))
			}
		}
	}
}
