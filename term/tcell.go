package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/johnconnor-sec/menunav-go/internal/errors"
	"github.com/johnconnor-sec/menunav-go/menu"
	"github.com/johnconnor-sec/menunav-go/nav"
)

// Screen is a full-screen tcell backend implementing both navigation ports.
// Frames are drawn from the top-left corner; Erase clears the drawn rows so
// the next frame lands in the same place.
type Screen struct {
	scr       tcell.Screen
	promptRow int
	promptCol int
}

// NewScreen initialises the terminal and returns a ready backend. Close must
// be called to restore the terminal.
func NewScreen() (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.TermSetupError(err)
	}
	if err := scr.Init(); err != nil {
		return nil, errors.TermSetupError(err)
	}
	scr.HideCursor()
	scr.Clear()
	return &Screen{scr: scr}, nil
}

// Close restores the terminal state.
func (s *Screen) Close() {
	s.scr.Fini()
}

// RenderMenu draws a menu frame and returns the number of rows drawn.
func (s *Screen) RenderMenu(path []string, m *menu.Menu, hover int) int {
	lines := menuLines(path, m, hover)
	for y, line := range lines {
		s.drawLine(y, line)
	}
	s.scr.Show()
	return len(lines)
}

// RenderPrompt draws a typed-prompt frame and remembers where the line
// editor belongs.
func (s *Screen) RenderPrompt(path []string, it menu.Item, attempt int, parseErr error) int {
	lines := promptLines(path, it, attempt, parseErr)
	for y, line := range lines {
		s.drawLine(y, line)
	}
	s.promptRow = len(lines) - 1
	s.promptCol = len([]rune(lines[len(lines)-1].Text))
	s.scr.ShowCursor(s.promptCol, s.promptRow)
	s.scr.Show()
	return len(lines)
}

// Erase clears the previously rendered rows.
func (s *Screen) Erase(rows int) {
	width, _ := s.scr.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < width; x++ {
			s.scr.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	s.scr.HideCursor()
	s.scr.Show()
}

// NextKey blocks until one logical key arrives. Resize events redraw and
// are not surfaced; Ctrl+C maps to the exit key.
func (s *Screen) NextKey() (nav.KeyEvent, error) {
	for {
		ev := s.scr.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyUp:
				return nav.KeyEvent{Key: nav.KeyUp}, nil
			case tcell.KeyDown:
				return nav.KeyEvent{Key: nav.KeyDown}, nil
			case tcell.KeyEnter:
				return nav.KeyEvent{Key: nav.KeyEnter}, nil
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				return nav.KeyEvent{Key: nav.KeyBack}, nil
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nav.KeyEvent{Key: nav.KeyExit}, nil
			case tcell.KeyRune:
				return nav.KeyEvent{Key: nav.KeyChar, Char: ev.Rune()}, nil
			}
		case *tcell.EventResize:
			s.scr.Sync()
		case nil:
			return nav.KeyEvent{}, errors.New(errors.InputClosed, "Terminal event stream closed")
		}
	}
}

// ReadLine runs a minimal line editor at the prompt position: printable
// runes append, backspace deletes, Enter finishes. The escape key is
// deliberately ignored; a typed prompt has no cancel path.
func (s *Screen) ReadLine() (string, error) {
	buf := []rune{}
	for {
		s.echoInput(buf)
		ev := s.scr.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				s.scr.HideCursor()
				return string(buf), nil
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(buf) > 0 {
					buf = buf[:len(buf)-1]
				}
			case tcell.KeyRune:
				buf = append(buf, ev.Rune())
			}
		case *tcell.EventResize:
			s.scr.Sync()
		case nil:
			return "", errors.New(errors.InputClosed, "Terminal event stream closed")
		}
	}
}

func (s *Screen) echoInput(buf []rune) {
	width, _ := s.scr.Size()
	x := s.promptCol
	for _, r := range buf {
		if x >= width {
			break
		}
		s.scr.SetContent(x, s.promptRow, r, nil, tcell.StyleDefault)
		x++
	}
	for cx := x; cx < width; cx++ {
		s.scr.SetContent(cx, s.promptRow, ' ', nil, tcell.StyleDefault)
	}
	s.scr.ShowCursor(x, s.promptRow)
	s.scr.Show()
}

func (s *Screen) drawLine(y int, line Line) {
	width, _ := s.scr.Size()
	style := s.lineStyle(line.Kind)
	x := 0
	for _, r := range line.Text {
		if x >= width {
			break
		}
		s.scr.SetContent(x, y, r, nil, style)
		x++
	}
	for cx := x; cx < width; cx++ {
		s.scr.SetContent(cx, y, ' ', nil, tcell.StyleDefault)
	}
}

func (s *Screen) lineStyle(kind LineKind) tcell.Style {
	switch kind {
	case LineBreadcrumb:
		return tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true)
	case LineExplanation, LineLegend:
		return tcell.StyleDefault.Dim(true)
	case LineHover:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case LineError:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	default:
		return tcell.StyleDefault
	}
}
