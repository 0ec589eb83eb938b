// Demo program showcasing the navigation engine
//
// Builds a nested menu in code, covering every item kind:
// - actions with and without hotkeys
// - sub-menus two levels deep
// - a typed prompt with retry-on-parse-failure
//
// Run it in a terminal and pick something; the selection is printed when
// navigation resolves.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	xterm "golang.org/x/term"

	"github.com/johnconnor-sec/menunav-go/menu"
	"github.com/johnconnor-sec/menunav-go/nav"
	"github.com/johnconnor-sec/menunav-go/term"
)

func main() {
	m := &menu.Menu{
		Name:        "My Main Menu",
		Explanation: "My Main Menu Explanation.",
		AllowExit:   true,
		Items: []menu.Item{
			menu.NewAction("Action0", 'a', "Action0 Explanation. This Has Been Assigned To A Hotkey."),
			menu.NewAction("Action1", 0, "Action1 Explanation. This Has No Hotkey."),
			menu.NewSubMenu("Submenu0", 's', "Submenu0 explanation.", []menu.Item{
				menu.NewAction("Sub0 Action0", 'a', "Sub Action0 Explanation. This Has Been Assigned To A Hotkey."),
				menu.NewSubMenu("Deepermenu0", 'd', "Deepermenu0 Explanation.", []menu.Item{
					menu.NewAction("Deeper Action0", 'f', ""),
					menu.NewAction("Deeper Action1", 'g', "Deeper Action1 Explanation."),
				}),
			}),
			menu.NewPrompt(menu.U64, "Listen port", 'p', "A port number between 0 and 65535."),
		},
	}

	sel, err := navigate(m)
	if err != nil {
		if errors.Is(err, nav.ErrExited) {
			fmt.Println("No selection made.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Selected: %s\n", sel.Name)
	fmt.Printf("Path:     %s\n", strings.Join(sel.Path, "/"))
	if sel.Value != nil {
		fmt.Printf("Value:    %s (%s, %d attempt(s))\n", sel.Value, sel.Value.Kind, sel.Attempts)
	}
}

func navigate(m *menu.Menu) (*menu.Selection, error) {
	if xterm.IsTerminal(int(os.Stdin.Fd())) {
		if scr, err := term.NewScreen(); err == nil {
			defer scr.Close()
			return nav.New(scr, scr).Run(m)
		}
	}
	display := term.NewANSIDisplay(os.Stdout)
	input := term.NewReaderInput(os.Stdin)
	input.EchoTo(os.Stdout)
	return nav.New(display, input).Run(m)
}
