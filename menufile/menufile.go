// Package menufile loads and saves declarative YAML menu definitions.
package menufile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/johnconnor-sec/menunav-go/internal/errors"
	"github.com/johnconnor-sec/menunav-go/menu"
)

// menuDef is the YAML shape of a menu tree.
type menuDef struct {
	Name        string    `yaml:"name"`
	Explanation string    `yaml:"explanation,omitempty"`
	AllowExit   bool      `yaml:"allow_exit,omitempty"`
	Items       []itemDef `yaml:"items"`
}

// itemDef is the YAML shape of one item. The variant is chosen by which of
// action/submenu/prompt names the item; exactly one must be set.
type itemDef struct {
	Action      string    `yaml:"action,omitempty"`
	SubMenu     string    `yaml:"submenu,omitempty"`
	Prompt      string    `yaml:"prompt,omitempty"`
	Hotkey      string    `yaml:"hotkey,omitempty"`
	Explanation string    `yaml:"explanation,omitempty"`
	Kind        string    `yaml:"kind,omitempty"`
	Exit        string    `yaml:"exit,omitempty"`
	Items       []itemDef `yaml:"items,omitempty"`
}

// Load reads and parses a menu definition from the specified path.
func Load(path string) (*menu.Menu, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.DefNotFoundError(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.DefNotFound, "Failed to read menu definition").
			WithDetails(fmt.Sprintf("Path: %s", path)).
			WithSuggestion("Check file permissions and path")
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Parse decodes a menu definition from YAML bytes. Unknown fields are
// rejected so typos in definitions surface instead of silently vanishing.
func Parse(data []byte) (*menu.Menu, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def menuDef
	if err := dec.Decode(&def); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.DefInvalid, "Invalid YAML menu definition").
			WithDetails(fmt.Sprintf("Parse error: %v", err)).
			WithSuggestions([]string{
				"Check YAML syntax and indentation",
				"Each item needs exactly one of: action, submenu, prompt",
			})
	}

	m, err := def.toMenu()
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Save writes a menu tree back to a YAML definition file.
func Save(m *menu.Menu, path string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.DefInvalid, "Cannot create menu definition directory").
			WithDetails(fmt.Sprintf("Path: %s", filepath.Dir(path)))
	}

	data, err := yaml.Marshal(fromMenu(m))
	if err != nil {
		return errors.Wrap(err, errors.InternalError, "Failed to serialize menu definition")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.DefInvalid, "Cannot write menu definition file").
			WithDetails(fmt.Sprintf("Path: %s", path))
	}
	return nil
}

func (d *menuDef) toMenu() (*menu.Menu, error) {
	items, err := toItems(d.Name, d.Items)
	if err != nil {
		return nil, err
	}
	return &menu.Menu{
		Name:        d.Name,
		Explanation: d.Explanation,
		AllowExit:   d.AllowExit,
		Items:       items,
	}, nil
}

func toItems(owner string, defs []itemDef) ([]menu.Item, error) {
	items := make([]menu.Item, 0, len(defs))
	for i, def := range defs {
		it, err := def.toItem(owner, i)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (d *itemDef) toItem(owner string, index int) (menu.Item, error) {
	names := 0
	for _, n := range []string{d.Action, d.SubMenu, d.Prompt} {
		if n != "" {
			names++
		}
	}
	if names != 1 {
		return menu.Item{}, errors.New(errors.DefInvalid,
			fmt.Sprintf("Item %d of %q must set exactly one of action, submenu, prompt", index, owner))
	}

	hotkey, err := parseHotkey(d.Hotkey, owner, index)
	if err != nil {
		return menu.Item{}, err
	}

	switch {
	case d.Action != "":
		if d.Kind != "" || d.Exit != "" || len(d.Items) > 0 {
			return menu.Item{}, errors.New(errors.DefInvalid,
				fmt.Sprintf("Action %q takes no kind, exit, or items", d.Action))
		}
		return menu.NewAction(d.Action, hotkey, d.Explanation), nil

	case d.SubMenu != "":
		if d.Kind != "" {
			return menu.Item{}, errors.New(errors.DefInvalid,
				fmt.Sprintf("Submenu %q takes no kind", d.SubMenu))
		}
		exit, err := parseExit(d.Exit, d.SubMenu)
		if err != nil {
			return menu.Item{}, err
		}
		children, err := toItems(d.SubMenu, d.Items)
		if err != nil {
			return menu.Item{}, err
		}
		it := menu.NewSubMenu(d.SubMenu, hotkey, d.Explanation, children)
		it.Exit = exit
		return it, nil

	default:
		if d.Exit != "" || len(d.Items) > 0 {
			return menu.Item{}, errors.New(errors.DefInvalid,
				fmt.Sprintf("Prompt %q takes no exit or items", d.Prompt))
		}
		kind, err := parseKind(d.Kind, d.Prompt)
		if err != nil {
			return menu.Item{}, err
		}
		return menu.NewPrompt(kind, d.Prompt, hotkey, d.Explanation), nil
	}
}

func parseHotkey(s, owner string, index int) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.New(errors.DefInvalid,
			fmt.Sprintf("Hotkey %q on item %d of %q must be a single character", s, index, owner))
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func parseExit(s, name string) (menu.ExitMode, error) {
	switch s {
	case "":
		return menu.ExitInherit, nil
	case "allow":
		return menu.ExitAllowed, nil
	case "deny":
		return menu.ExitDenied, nil
	default:
		return 0, errors.New(errors.DefInvalid,
			fmt.Sprintf("Submenu %q has unknown exit mode %q", name, s)).
			WithSuggestion("Use 'allow' or 'deny', or omit to inherit")
	}
}

func parseKind(s, name string) (menu.ValueKind, error) {
	switch strings.ToLower(s) {
	case "bool":
		return menu.Bool, nil
	case "char":
		return menu.Char, nil
	case "string":
		return menu.String, nil
	case "f64":
		return menu.F64, nil
	case "i64":
		return menu.I64, nil
	case "u64":
		return menu.U64, nil
	default:
		return 0, errors.New(errors.DefInvalid,
			fmt.Sprintf("Prompt %q has unknown value kind %q", name, s)).
			WithSuggestion("Use one of: bool, char, string, f64, i64, u64")
	}
}

func fromMenu(m *menu.Menu) *menuDef {
	return &menuDef{
		Name:        m.Name,
		Explanation: m.Explanation,
		AllowExit:   m.AllowExit,
		Items:       fromItems(m.Items),
	}
}

func fromItems(items []menu.Item) []itemDef {
	defs := make([]itemDef, 0, len(items))
	for _, it := range items {
		def := itemDef{Explanation: it.Explanation}
		if it.Hotkey != 0 {
			def.Hotkey = string(it.Hotkey)
		}
		switch it.Kind {
		case menu.ItemAction:
			def.Action = it.Name
		case menu.ItemSubMenu:
			def.SubMenu = it.Name
			def.Items = fromItems(it.Items)
			switch it.Exit {
			case menu.ExitAllowed:
				def.Exit = "allow"
			case menu.ExitDenied:
				def.Exit = "deny"
			}
		case menu.ItemPrompt:
			def.Prompt = it.Name
			def.Kind = it.Value.String()
		}
		defs = append(defs, def)
	}
	return defs
}
