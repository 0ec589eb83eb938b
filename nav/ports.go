package nav

import (
	"github.com/johnconnor-sec/menunav-go/menu"
)

// Key represents the logical keys the engine understands.
type Key int

const (
	KeyChar Key = iota // a literal character (hotkey or index digit)
	KeyUp
	KeyDown
	KeyEnter
	KeyBack
	KeyExit
)

// String returns the string representation of the key.
func (k Key) String() string {
	switch k {
	case KeyChar:
		return "char"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEnter:
		return "enter"
	case KeyBack:
		return "back"
	case KeyExit:
		return "exit"
	default:
		return "unknown"
	}
}

// KeyEvent is one logical key press. Char is meaningful only for KeyChar.
type KeyEvent struct {
	Key  Key
	Char rune
}

// DisplayPort renders menu and prompt frames and erases them again. Render
// calls return the number of rows drawn; Erase must remove exactly that many
// rows so the next frame overwrites the previous one in place.
type DisplayPort interface {
	RenderMenu(path []string, m *menu.Menu, hover int) int
	RenderPrompt(path []string, it menu.Item, attempt int, parseErr error) int
	Erase(rows int)
}

// InputPort is a blocking source of input. NextKey returns exactly one
// logical key per physical key press; ReadLine returns one raw line of text
// for typed prompts.
type InputPort interface {
	NextKey() (KeyEvent, error)
	ReadLine() (string, error)
}
