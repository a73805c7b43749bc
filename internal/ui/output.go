package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/byterings/gitu/internal/identity"
	"github.com/fatih/color"
)

var (
	// Stdout receives command output; Stderr receives status messages
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr

	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	activeColor  = color.New(color.FgGreen, color.Bold)
)

// SetColor forces colored output on or off
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// FormatProfiles renders the profile list, one line per entry:
//
//	* alice ------ alice@example.com
//	  work ------- me@work.com
//
// The dashes line the registry column up behind the longest name.
func FormatProfiles(entries []identity.Entry) []string {
	width := 0
	for _, e := range entries {
		if n := utf8.RuneCountInString(e.Name); n > width {
			width = n
		}
	}
	width += 3

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		prefix := "  "
		if e.Active {
			prefix = "* "
		}
		lines = append(lines, prefix+e.Name+padding(e.Name, width)+e.Registry)
	}
	return lines
}

// padding returns the dash filler between a name and its registry
func padding(name string, width int) string {
	n := width - utf8.RuneCountInString(name)
	if n < 1 {
		n = 1
	}
	return " " + strings.Repeat("-", n-1) + " "
}

// PrintProfiles prints the profile list surrounded by blank lines
func PrintProfiles(entries []identity.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(Stdout, "No users configured yet.")
		fmt.Fprintln(Stdout, "\nAdd your first user with: gitu add <name> <email>")
		return
	}

	fmt.Fprintln(Stdout)
	for i, line := range FormatProfiles(entries) {
		if entries[i].Active {
			activeColor.Fprintln(Stdout, line)
			continue
		}
		fmt.Fprintln(Stdout, line)
	}
	fmt.Fprintln(Stdout)
}

// Success prints a success message with checkmark
func Success(message string) {
	successColor.Fprintf(Stdout, "✓ %s\n", message)
}

// Error prints an error message
func Error(message string) {
	errorColor.Fprintf(Stderr, "✗ %s\n", message)
}

// Info prints an info message
func Info(message string) {
	infoColor.Fprintf(Stdout, "ℹ %s\n", message)
}

// Warning prints a warning message
func Warning(message string) {
	warnColor.Fprintf(Stderr, "⚠ %s\n", message)
}
