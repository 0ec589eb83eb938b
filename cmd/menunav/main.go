// Menunav - run keyboard-navigable terminal menus from YAML definitions
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	xterm "golang.org/x/term"

	"github.com/johnconnor-sec/menunav-go/internal/output"
	"github.com/johnconnor-sec/menunav-go/menu"
	"github.com/johnconnor-sec/menunav-go/menufile"
	"github.com/johnconnor-sec/menunav-go/nav"
	"github.com/johnconnor-sec/menunav-go/term"
)

// Build information - set by linker flags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, nav.ErrExited) {
			os.Exit(1)
		}
		handleError(err)
		os.Exit(2)
	}
}

func run() error {
	args := setupLogging(os.Args[1:])

	if len(args) == 0 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "--version", "-v", "version":
		printVersion()
		return nil
	case "--help", "-h", "help":
		printUsage()
		return nil
	case "validate":
		if len(args) < 2 {
			return fmt.Errorf("validate needs a menu definition file")
		}
		return runValidate(args[1])
	case "run":
		args = args[1:]
		fallthrough
	default:
		jsonOut := false
		var file string
		for _, a := range args {
			if a == "--json" {
				jsonOut = true
				continue
			}
			file = a
		}
		if file == "" {
			printUsage()
			return fmt.Errorf("no menu definition file given")
		}
		return runMenu(file, jsonOut)
	}
}

// setupLogging consumes a --log FILE pair and configures debug file logging.
// The terminal belongs to the menu, so logs never go to stdout or stderr
// unless something already failed.
func setupLogging(args []string) []string {
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if args[i] == "--log" && i+1 < len(args) {
			logger, err := output.CreateFileLogger(args[i+1], output.LogLevelDebug, output.LogFormatText)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			} else {
				output.SetGlobalLogger(logger)
			}
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return rest
}

func runValidate(path string) error {
	m, err := menufile.Load(path)
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(os.Stdout)
	formatter.Success("✓ Menu definition is valid: %s", path)
	formatter.Info("  Root menu: %s", m.Name)
	formatter.Info("  Items at root: %d", len(m.Items))
	formatter.Info("  Exit allowed: %v", m.AllowExit)
	return nil
}

func runMenu(path string, jsonOut bool) error {
	m, err := menufile.Load(path)
	if err != nil {
		return err
	}

	sel, err := navigate(m)
	if err != nil {
		return err
	}

	return printSelection(sel, jsonOut)
}

// navigate picks a backend and runs the engine: tcell on a real terminal,
// the plain ANSI stream backend otherwise (or when tcell cannot initialise).
func navigate(m *menu.Menu) (*menu.Selection, error) {
	if xterm.IsTerminal(int(os.Stdin.Fd())) && xterm.IsTerminal(int(os.Stdout.Fd())) {
		if scr, err := term.NewScreen(); err == nil {
			defer scr.Close()
			return nav.New(scr, scr).Run(m)
		}

		fd := int(os.Stdin.Fd())
		if state, err := xterm.MakeRaw(fd); err == nil {
			defer xterm.Restore(fd, state)
		}
	}

	display := term.NewANSIDisplay(os.Stdout)
	input := term.NewReaderInput(os.Stdin)
	// Raw mode means the terminal no longer echoes typed prompt input.
	input.EchoTo(os.Stdout)
	return nav.New(display, input).Run(m)
}

func printSelection(sel *menu.Selection, jsonOut bool) error {
	if jsonOut {
		data, err := json.MarshalIndent(sel, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	formatter := output.NewFormatter(os.Stdout)
	formatter.Success("Selected: %s", sel.Name)
	formatter.Info("  Path: %s", strings.Join(sel.Path, "/"))
	if sel.Value != nil {
		formatter.Info("  Value: %s (%s)", sel.Value, sel.Value.Kind)
		formatter.Info("  Attempts: %d", sel.Attempts)
	}
	return nil
}

func printVersion() {
	formatter := output.NewFormatter(os.Stdout)

	formatter.Header(fmt.Sprintf("Menunav %s", version))
	formatter.Info("Git commit:  %s", commit)
	formatter.Info("Build date:  %s", date)
	formatter.Info("Go version:  %s", runtime.Version())
	formatter.Info("Platform:    %s/%s", runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	formatter := output.NewFormatter(os.Stdout)

	formatter.Header("Menunav - Keyboard-Navigable Terminal Menus")

	fmt.Println("Usage:")
	fmt.Println("  menunav run FILE [--json]    Run a YAML menu and print the selection")
	fmt.Println("  menunav validate FILE        Check a menu definition")
	fmt.Println("  menunav version              Show version information")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --json        Emit the selection as JSON")
	fmt.Println("  --log FILE    Write debug navigation logs to FILE")
	fmt.Println()
	fmt.Println("Menu Controls:")
	fmt.Println("  ↑/↓           Move the hover cursor")
	fmt.Println("  Enter         Select the hovered item")
	fmt.Println("  0-9           Select an item by index")
	fmt.Println("  a-z           Select an item by hotkey")
	fmt.Println("  Backspace     Back to the parent menu")
	fmt.Println("  Esc           Exit (when the menu allows it)")
}

func handleError(err error) {
	formatter := output.NewFormatter(os.Stderr)
	formatter.Error("%v", err)
}
