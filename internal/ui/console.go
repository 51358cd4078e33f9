// Package ui is for operator-facing terminal output
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Console prints tagged status lines. Errors go to the error writer so the
// engine's own output on stdout stays readable.
type Console struct {
	out     io.Writer
	err     io.Writer
	verbose bool

	Green  func(format string, a ...interface{}) string
	Yellow func(format string, a ...interface{}) string
	Red    func(format string, a ...interface{}) string
	Blue   func(format string, a ...interface{}) string
	Cyan   func(format string, a ...interface{}) string
	Bold   func(format string, a ...interface{}) string
}

// NewConsole writes to stdout and stderr
func NewConsole() *Console {
	return NewConsoleWithWriters(os.Stdout, os.Stderr)
}

// NewConsoleWithWriters is used by tests and by callers that redirect output
func NewConsoleWithWriters(out, errOut io.Writer) *Console {
	return &Console{
		out:    out,
		err:    errOut,
		Green:  color.New(color.FgGreen).SprintfFunc(),
		Yellow: color.New(color.FgYellow, color.Bold).SprintfFunc(),
		Red:    color.New(color.FgRed).SprintfFunc(),
		Blue:   color.New(color.FgBlue).SprintfFunc(),
		Cyan:   color.New(color.FgCyan).SprintfFunc(),
		Bold:   color.New(color.Bold).SprintfFunc(),
	}
}

// DisableColor turns off ANSI colors process-wide
func DisableColor() {
	color.NoColor = true
}

// SetVerbose enables Debugf output
func (c *Console) SetVerbose(verbose bool) { c.verbose = verbose }

// Out returns the standard writer (menus render here)
func (c *Console) Out() io.Writer { return c.out }

func (c *Console) Infof(format string, a ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", c.Blue("[INFO]"), fmt.Sprintf(format, a...))
}

func (c *Console) Successf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", c.Green("[SUCCESS]"), fmt.Sprintf(format, a...))
}

func (c *Console) Warnf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", c.Yellow("[WARNING]"), fmt.Sprintf(format, a...))
}

func (c *Console) Errorf(format string, a ...interface{}) {
	fmt.Fprintf(c.err, "%s %s\n", c.Red("[ERROR]"), fmt.Sprintf(format, a...))
}

func (c *Console) Debugf(format string, a ...interface{}) {
	if !c.verbose {
		return
	}
	fmt.Fprintf(c.err, "%s %s\n", c.Cyan("[DEBUG]"), fmt.Sprintf(format, a...))
}

// Println writes a plain line
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes plain formatted output
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// NewLoader returns a spinner bound to the console's output
func (c *Console) NewLoader(message string) *Loader {
	return NewLoader(c.out, message)
}
