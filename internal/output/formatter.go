// Package output provides styled terminal formatting and structured logging
// for the menu renderer and the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Color represents ANSI color codes
type Color int

const (
	ColorReset Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

// Style represents text formatting
type Style int

const (
	StyleNormal Style = iota
	StyleBold
	StyleDim
	StyleItalic
	StyleUnderline
)

// Theme defines the color scheme for the different frame elements.
type Theme struct {
	Breadcrumb  Color
	Explanation Color
	Index       Color
	Hotkey      Color
	Hover       Color
	Legend      Color
	Error       Color
	Success     Color
	Muted       Color
}

// DefaultTheme provides a sensible default color scheme
var DefaultTheme = Theme{
	Breadcrumb:  ColorCyan,
	Explanation: ColorWhite,
	Index:       ColorBlue,
	Hotkey:      ColorYellow,
	Hover:       ColorBrightGreen,
	Legend:      ColorMagenta,
	Error:       ColorRed,
	Success:     ColorGreen,
	Muted:       ColorWhite,
}

// Formatter handles styled output formatting
type Formatter struct {
	writer      io.Writer
	theme       Theme
	colorOutput bool
}

// NewFormatter creates a new formatter writing to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{
		writer:      w,
		theme:       DefaultTheme,
		colorOutput: isColorSupported(),
	}
}

// SetTheme changes the color theme
func (f *Formatter) SetTheme(theme Theme) {
	f.theme = theme
}

// SetColorOutput enables or disables color output
func (f *Formatter) SetColorOutput(enabled bool) {
	f.colorOutput = enabled
}

// Theme returns the active color theme.
func (f *Formatter) Theme() Theme {
	return f.theme
}

// Colorize applies color and style to text if color output is enabled.
func (f *Formatter) Colorize(text string, color Color, style Style) string {
	if !f.colorOutput {
		return text
	}

	var codes []string

	switch style {
	case StyleBold:
		codes = append(codes, "1")
	case StyleDim:
		codes = append(codes, "2")
	case StyleItalic:
		codes = append(codes, "3")
	case StyleUnderline:
		codes = append(codes, "4")
	}

	switch color {
	case ColorRed:
		codes = append(codes, "31")
	case ColorGreen:
		codes = append(codes, "32")
	case ColorYellow:
		codes = append(codes, "33")
	case ColorBlue:
		codes = append(codes, "34")
	case ColorMagenta:
		codes = append(codes, "35")
	case ColorCyan:
		codes = append(codes, "36")
	case ColorWhite:
		codes = append(codes, "37")
	case ColorBrightRed:
		codes = append(codes, "91")
	case ColorBrightGreen:
		codes = append(codes, "92")
	case ColorBrightYellow:
		codes = append(codes, "93")
	case ColorBrightBlue:
		codes = append(codes, "94")
	case ColorBrightMagenta:
		codes = append(codes, "95")
	case ColorBrightCyan:
		codes = append(codes, "96")
	case ColorBrightWhite:
		codes = append(codes, "97")
	}

	if len(codes) == 0 {
		return text
	}

	return fmt.Sprintf("\033[%sm%s\033[0m", strings.Join(codes, ";"), text)
}

// Header prints a bold title line with an underline.
func (f *Formatter) Header(text string) {
	fmt.Fprintln(f.writer, f.Colorize(text, f.theme.Breadcrumb, StyleBold))
	fmt.Fprintln(f.writer, f.Colorize(strings.Repeat("─", len([]rune(text))), f.theme.Breadcrumb, StyleNormal))
}

// Info prints a plain informational line.
func (f *Formatter) Info(format string, args ...any) {
	fmt.Fprintln(f.writer, fmt.Sprintf(format, args...))
}

// Success prints a highlighted confirmation line.
func (f *Formatter) Success(format string, args ...any) {
	fmt.Fprintln(f.writer, f.Colorize(fmt.Sprintf(format, args...), f.theme.Success, StyleBold))
}

// Error prints an error line.
func (f *Formatter) Error(format string, args ...any) {
	fmt.Fprintln(f.writer, f.Colorize(fmt.Sprintf(format, args...), f.theme.Error, StyleBold))
}

// Muted prints a dimmed line.
func (f *Formatter) Muted(format string, args ...any) {
	fmt.Fprintln(f.writer, f.Colorize(fmt.Sprintf(format, args...), f.theme.Muted, StyleDim))
}

// isColorSupported decides whether ANSI colors are safe to emit.
func isColorSupported() bool {
	// Respect NO_COLOR standard
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return false
	}
	return true
}
