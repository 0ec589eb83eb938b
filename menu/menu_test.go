package menu

import (
	"testing"

	"github.com/johnconnor-sec/menunav-go/internal/errors"
)

func TestConstructors(t *testing.T) {
	a := NewAction("Quit", 'q', "Leave the program")
	if a.Kind != ItemAction || a.Name != "Quit" || a.Hotkey != 'q' {
		t.Errorf("NewAction built %+v", a)
	}

	s := NewSubMenu("Settings", 's', "", []Item{a})
	if s.Kind != ItemSubMenu || len(s.Items) != 1 {
		t.Errorf("NewSubMenu built %+v", s)
	}
	if s.Exit != ExitInherit {
		t.Errorf("New sub-menus should inherit exit behaviour, got %v", s.Exit)
	}

	p := NewPrompt(U64, "Port", 'p', "")
	if p.Kind != ItemPrompt || p.Value != U64 {
		t.Errorf("NewPrompt built %+v", p)
	}
}

func TestSubmenuInheritsAllowExit(t *testing.T) {
	tests := []struct {
		name   string
		parent bool
		mode   ExitMode
		want   bool
	}{
		{"inherit true", true, ExitInherit, true},
		{"inherit false", false, ExitInherit, false},
		{"override allow", false, ExitAllowed, true},
		{"override deny", true, ExitDenied, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewSubMenu("Child", 0, "child explanation", []Item{NewAction("A", 0, "")})
			it.Exit = tt.mode
			parent := &Menu{Name: "Parent", AllowExit: tt.parent, Items: []Item{it}}

			child := it.Submenu(parent)
			if child.AllowExit != tt.want {
				t.Errorf("AllowExit = %v, want %v", child.AllowExit, tt.want)
			}
			if child.Name != "Child" || child.Explanation != "child explanation" {
				t.Errorf("Child menu lost item metadata: %+v", child)
			}
			if len(child.Items) != 1 {
				t.Errorf("Child menu lost its items: %+v", child.Items)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := &Menu{
		Name: "Root",
		Items: []Item{
			NewAction("A", 'a', ""),
			NewSubMenu("S", 's', "", []Item{NewAction("B", 0, "")}),
			NewPrompt(I64, "N", 0, ""),
		},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Valid menu rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name     string
		menu     *Menu
		wantType errors.ErrorType
	}{
		{
			"unnamed menu",
			&Menu{Items: []Item{NewAction("A", 0, "")}},
			errors.MenuInvalid,
		},
		{
			"empty root",
			&Menu{Name: "Root"},
			errors.MenuEmpty,
		},
		{
			"empty sub-menu",
			&Menu{Name: "Root", Items: []Item{NewSubMenu("S", 0, "", nil)}},
			errors.MenuEmpty,
		},
		{
			"unnamed item",
			&Menu{Name: "Root", Items: []Item{NewAction("", 0, "")}},
			errors.MenuInvalid,
		},
		{
			"prompt with bad kind",
			&Menu{Name: "Root", Items: []Item{NewPrompt(ValueKind(42), "P", 0, "")}},
			errors.MenuInvalid,
		},
		{
			"item with bad kind",
			&Menu{Name: "Root", Items: []Item{{Kind: ItemKind(9), Name: "X"}}},
			errors.MenuInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.menu.Validate()
			if err == nil {
				t.Fatal("Expected validation to fail")
			}
			if !errors.IsType(err, tt.wantType) {
				t.Errorf("Expected error type %v, got %v", tt.wantType, err)
			}
		})
	}
}

func TestValidateAllowsDuplicateHotkeys(t *testing.T) {
	m := &Menu{
		Name: "Root",
		Items: []Item{
			NewAction("First", 'x', ""),
			NewAction("Second", 'x', ""),
		},
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Duplicate hotkeys must validate (first wins at runtime): %v", err)
	}
}

func TestItemKindString(t *testing.T) {
	kinds := map[ItemKind]string{
		ItemAction:  "action",
		ItemSubMenu: "submenu",
		ItemPrompt:  "prompt",
		ItemKind(7): "unknown",
	}
	for kind, want := range kinds {
		if got := kind.String(); got != want {
			t.Errorf("ItemKind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}
