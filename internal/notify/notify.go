// Package notify prints short status toasts to a terminal.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Level is the kind of notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Options configures the process-wide colour setup.
type Options struct {
	NoColor bool
}

var setupOnce sync.Once

// Setup applies colour settings once per process. It returns false when a
// previous call already did the setup.
func Setup(opts Options) bool {
	applied := false
	setupOnce.Do(func() {
		if opts.NoColor {
			color.NoColor = true
		}
		applied = true
	})
	return applied
}

// Notifier writes toasts to an output stream.
type Notifier struct {
	out     io.Writer
	errorC  *color.Color
	normalC *color.Color
}

// New creates a notifier writing to out, or stderr when out is nil.
func New(out io.Writer) *Notifier {
	if out == nil {
		out = os.Stderr
	}
	return &Notifier{
		out:     out,
		errorC:  color.New(color.FgRed, color.Bold),
		normalC: color.New(color.FgGreen),
	}
}

// Notify prints message tagged with its level. Errors are red and every
// other level is green.
func (n *Notifier) Notify(message string, level Level) {
	if level == "" {
		level = LevelInfo
	}
	c := n.normalC
	if level == LevelError {
		c = n.errorC
	}
	c.Fprintf(n.out, "[%s] ", level)
	fmt.Fprintln(n.out, message)
}

// Info prints an info toast.
func (n *Notifier) Info(format string, args ...any) {
	n.Notify(fmt.Sprintf(format, args...), LevelInfo)
}

// Success prints a success toast.
func (n *Notifier) Success(format string, args ...any) {
	n.Notify(fmt.Sprintf(format, args...), LevelSuccess)
}

// Error prints an error toast.
func (n *Notifier) Error(format string, args ...any) {
	n.Notify(fmt.Sprintf(format, args...), LevelError)
}
