// Package menu defines the data model for hierarchical terminal menus:
// the menu tree, its item variants, and the selection returned once the
// user picks something.
package menu

import (
	"fmt"

	"github.com/johnconnor-sec/menunav-go/internal/errors"
)

// ItemKind discriminates the item variants of a menu tree.
type ItemKind int

const (
	ItemAction  ItemKind = iota // terminal selection, no value
	ItemSubMenu                 // nested menu, owns a subtree
	ItemPrompt                  // leaf requesting typed input
)

// String returns the string representation of the item kind.
func (k ItemKind) String() string {
	switch k {
	case ItemAction:
		return "action"
	case ItemSubMenu:
		return "submenu"
	case ItemPrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// ExitMode controls whether a sub-menu honours the exit key. The zero value
// inherits the parent menu's setting.
type ExitMode int

const (
	ExitInherit ExitMode = iota
	ExitAllowed
	ExitDenied
)

// Item is one entry of a menu. Kind selects the variant; the remaining
// fields are populated per kind (Items for sub-menus, Value for prompts).
// A Hotkey of 0 means the item has no hotkey.
type Item struct {
	Kind        ItemKind
	Name        string
	Hotkey      rune
	Explanation string
	Items       []Item    // sub-menu children
	Value       ValueKind // prompt value kind
	Exit        ExitMode  // sub-menu override of Menu.AllowExit
}

// Menu describes one level of a menu tree. It is built once by the host and
// is read-only while the navigation engine traverses it.
type Menu struct {
	Name        string
	Explanation string
	Items       []Item
	AllowExit   bool
}

// Selection is the value handed back to the host once navigation resolves.
// Path runs from the root menu name down to the selected item's name.
// Value and Attempts are populated only when a typed prompt was involved;
// Attempts counts the input lines consumed before one parsed.
type Selection struct {
	Name     string      `json:"name"`
	Path     []string    `json:"path"`
	Value    *TypedValue `json:"value,omitempty"`
	Attempts int         `json:"attempts,omitempty"`
}

// NewAction builds an action item.
func NewAction(name string, hotkey rune, explanation string) Item {
	return Item{Kind: ItemAction, Name: name, Hotkey: hotkey, Explanation: explanation}
}

// NewSubMenu builds a sub-menu item owning the given children.
func NewSubMenu(name string, hotkey rune, explanation string, items []Item) Item {
	return Item{Kind: ItemSubMenu, Name: name, Hotkey: hotkey, Explanation: explanation, Items: items}
}

// NewPrompt builds a typed prompt item collecting a value of the given kind.
func NewPrompt(kind ValueKind, name string, hotkey rune, explanation string) Item {
	return Item{Kind: ItemPrompt, Name: name, Hotkey: hotkey, Explanation: explanation, Value: kind}
}

// Submenu derives the transient child menu for a sub-menu item. AllowExit is
// inherited from the parent unless the item overrides it.
func (it Item) Submenu(parent *Menu) *Menu {
	allowExit := parent.AllowExit
	switch it.Exit {
	case ExitAllowed:
		allowExit = true
	case ExitDenied:
		allowExit = false
	}
	return &Menu{
		Name:        it.Name,
		Explanation: it.Explanation,
		Items:       it.Items,
		AllowExit:   allowExit,
	}
}

// Validate checks that the menu tree is well-formed enough to traverse:
// named, non-empty at every level, and every prompt carries a known value
// kind. Duplicate hotkeys are deliberately not rejected; the first item in
// iteration order wins.
func (m *Menu) Validate() error {
	if m.Name == "" {
		return errors.New(errors.MenuInvalid, "Menu has no name")
	}
	return validateItems(m.Name, m.Items)
}

func validateItems(owner string, items []Item) error {
	if len(items) == 0 {
		return errors.MenuEmptyError(owner)
	}
	for i, it := range items {
		if it.Name == "" {
			return errors.New(errors.MenuInvalid, fmt.Sprintf("Item %d of %q has no name", i, owner))
		}
		switch it.Kind {
		case ItemAction:
		case ItemSubMenu:
			if err := validateItems(it.Name, it.Items); err != nil {
				return err
			}
		case ItemPrompt:
			if !it.Value.valid() {
				return errors.New(errors.MenuInvalid,
					fmt.Sprintf("Prompt %q has unknown value kind", it.Name)).
					WithSuggestion("Use one of: bool, char, string, f64, i64, u64")
			}
		default:
			return errors.New(errors.MenuInvalid,
				fmt.Sprintf("Item %q of %q has unknown kind", it.Name, owner))
		}
	}
	return nil
}
