// Package nav implements the navigation engine: a synchronous state machine
// that renders one menu frame at a time, blocks for a key event, and resolves
// exactly one selection from a menu tree.
package nav

import (
	stderrors "errors"
	"unicode"

	"github.com/johnconnor-sec/menunav-go/internal/errors"
	"github.com/johnconnor-sec/menunav-go/internal/output"
	"github.com/johnconnor-sec/menunav-go/menu"
)

// ErrExited is returned by Run when the user abandons navigation with the
// exit key. Match it with errors.Is.
var ErrExited = stderrors.New("menu navigation exited by user")

// outcome is how one menu activation ended. Back never escapes Run; it is
// absorbed by the parent activation.
type outcome int

const (
	selected outcome = iota
	wentBack
	exited
)

// Engine drives navigation over a menu tree through a display port and an
// input port. It holds no state between Run calls.
type Engine struct {
	display DisplayPort
	input   InputPort
}

// New creates an engine bound to the given ports.
func New(display DisplayPort, input InputPort) *Engine {
	return &Engine{display: display, input: input}
}

// Run navigates the menu tree until the user resolves a selection or exits.
// It validates the tree first and fails fast on malformed menus. The menu is
// read-only for the duration of the call.
func (e *Engine) Run(m *menu.Menu) (*menu.Selection, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	output.Debug("navigation started", map[string]any{"menu": m.Name})
	sel, out, err := e.runLevel(m, []string{m.Name})
	if err != nil {
		return nil, err
	}
	switch out {
	case selected:
		output.Debug("navigation resolved", map[string]any{"selection": sel.Name})
		return sel, nil
	case exited:
		output.Debug("navigation exited", map[string]any{"menu": m.Name})
		return nil, ErrExited
	default:
		return nil, errors.New(errors.InternalError, "Back unwound past the root menu")
	}
}

// frame is one rendered display frame. It is released exactly once, on every
// path that leaves it behind.
type frame struct {
	display DisplayPort
	rows    int
}

func (e *Engine) drawMenu(path []string, m *menu.Menu, hover int) *frame {
	return &frame{display: e.display, rows: e.display.RenderMenu(path, m, hover)}
}

func (f *frame) release() {
	if f.rows > 0 {
		f.display.Erase(f.rows)
		f.rows = 0
	}
}

// runLevel is one activation of the engine: an explicit loop per menu level.
// Recursion happens only on sub-menu descent, so call depth equals nesting
// depth. The hover cursor stays clamped to [0, len(items)-1]; keys that map
// to no action are consumed without re-rendering.
func (e *Engine) runLevel(m *menu.Menu, path []string) (*menu.Selection, outcome, error) {
	if len(m.Items) == 0 {
		return nil, selected, errors.MenuEmptyError(m.Name)
	}
	hover := 0
level:
	for {
		f := e.drawMenu(path, m, hover)
		for {
			ev, err := e.input.NextKey()
			if err != nil {
				f.release()
				return nil, selected, errors.InputClosedError(err)
			}
			idx := -1
			switch ev.Key {
			case KeyUp:
				if hover == 0 {
					continue
				}
				hover--
				f.release()
				continue level
			case KeyDown:
				if hover == len(m.Items)-1 {
					continue
				}
				hover++
				f.release()
				continue level
			case KeyBack:
				if len(path) == 1 {
					// The root has no parent to return to.
					continue
				}
				f.release()
				output.Debug("back", map[string]any{"menu": m.Name})
				return nil, wentBack, nil
			case KeyExit:
				if !m.AllowExit {
					continue
				}
				f.release()
				return nil, exited, nil
			case KeyEnter:
				idx = hover
			case KeyChar:
				idx = matchItem(m.Items, ev.Char)
				if idx < 0 {
					continue
				}
			default:
				continue
			}

			sel, out, stay, err := e.activate(f, m, path, idx)
			if err != nil {
				return nil, selected, err
			}
			if stay {
				// A child bounced back into this level. Restarting the
				// root resets the cursor; deeper levels keep theirs.
				if len(path) == 1 {
					hover = 0
				}
				continue level
			}
			return sel, out, nil
		}
	}
}

// activate resolves the item at idx. It releases the current frame before
// anything else happens, so descent and prompts start on a clean terminal.
// stay reports that the caller should re-render and keep running its level.
func (e *Engine) activate(f *frame, m *menu.Menu, path []string, idx int) (sel *menu.Selection, out outcome, stay bool, err error) {
	f.release()
	it := m.Items[idx]
	switch it.Kind {
	case menu.ItemAction:
		output.Debug("action selected", map[string]any{"item": it.Name})
		return &menu.Selection{Name: it.Name, Path: appendPath(path, it.Name)}, selected, false, nil

	case menu.ItemSubMenu:
		child := it.Submenu(m)
		output.Debug("descend", map[string]any{"menu": child.Name})
		sel, out, err := e.runLevel(child, appendPath(path, it.Name))
		if err != nil {
			return nil, selected, false, err
		}
		if out == wentBack {
			return nil, selected, true, nil
		}
		return sel, out, false, nil

	case menu.ItemPrompt:
		sel, err := e.collectPrompt(it, path)
		if err != nil {
			return nil, selected, false, err
		}
		return sel, selected, false, nil

	default:
		return nil, selected, false, errors.New(errors.InternalError, "Unknown item kind during activation")
	}
}

// collectPrompt runs the typed-input loop for a prompt item: render the
// prompt frame, read one line, parse it as the prompt's kind, and re-prompt
// with an inline error until a line parses. There is no attempt limit; the
// only way out besides success is the input port failing.
func (e *Engine) collectPrompt(it menu.Item, path []string) (*menu.Selection, error) {
	promptPath := appendPath(path, it.Name)
	attempts := 0
	var parseErr error
	for {
		rows := e.display.RenderPrompt(promptPath, it, attempts+1, parseErr)
		line, err := e.input.ReadLine()
		e.display.Erase(rows)
		if err != nil {
			return nil, errors.InputClosedError(err)
		}
		attempts++
		value, perr := menu.ParseValue(it.Value, line)
		if perr != nil {
			output.Debug("prompt parse failure", map[string]any{
				"prompt": it.Name, "kind": it.Value.String(), "attempt": attempts,
			})
			parseErr = perr
			continue
		}
		return &menu.Selection{
			Name:     it.Name,
			Path:     promptPath,
			Value:    value,
			Attempts: attempts,
		}, nil
	}
}

// matchItem maps a literal character to an item index: per item in order,
// the hotkey matches case-insensitively, or a digit matches the item's
// zero-based position. The first item that matches either way wins, which is
// also the documented tie-break for duplicate hotkeys.
func matchItem(items []menu.Item, ch rune) int {
	lower := unicode.ToLower(ch)
	for i, it := range items {
		if it.Hotkey != 0 && unicode.ToLower(it.Hotkey) == lower {
			return i
		}
		if ch >= '0' && ch <= '9' && i == int(ch-'0') {
			return i
		}
	}
	return -1
}

// appendPath copies the breadcrumb so a child never mutates its parent's
// view of the path.
func appendPath(path []string, name string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, name)
}
