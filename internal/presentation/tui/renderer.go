// Package tui holds terminal presentation helpers: Markdown rendering for
// the usage summary and coloured status lines.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewRenderer returns a Markdown renderer for w. When w is not a terminal,
// or glamour cannot be initialised, it returns nil so callers print the
// Markdown source unchanged.
func NewRenderer(w io.Writer) func(string) (string, error) {
	if !IsTerminal(w) {
		return nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // light/dark detection
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Error formats a fatal message prefix in red when the terminal supports it.
func Error(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("error: ").Foreground(p.Color("#f87171")).Bold().String() + msg
}
