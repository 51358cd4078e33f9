// Package menu implements the interactive role picker.
//
// Two controllers share one exit contract: Run returns OutcomeConfirmed only
// with a non-empty selection, or OutcomeQuit when the operator leaves. Both
// only mutate the selection.State they are given; they never invoke anything.
package menu

import (
	"fmt"
	"io"

	"github.com/hemantobora/auto-provision/internal/selection"
	"github.com/hemantobora/auto-provision/internal/ui"
)

// Outcome is how a menu loop ended
type Outcome int

const (
	OutcomeConfirmed Outcome = iota + 1
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeQuit:
		return "quit"
	}
	return "unknown"
}

// Style selects the interaction style
type Style string

const (
	StyleAuto     Style = "auto"
	StyleNumbered Style = "numbered"
	StyleCursor   Style = "cursor"
)

// ParseStyle validates a --style value
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleAuto, StyleNumbered, StyleCursor:
		return Style(s), nil
	case "":
		return StyleAuto, nil
	}
	return "", fmt.Errorf("unknown menu style '%s' (expected auto, numbered or cursor)", s)
}

// Resolve turns auto into a concrete style
func (s Style) Resolve(interactiveTTY bool) Style {
	if s != StyleAuto {
		return s
	}
	if interactiveTTY {
		return StyleCursor
	}
	return StyleNumbered
}

// Controller drives a selection until confirmation or quit
type Controller interface {
	Run() (Outcome, error)
}

// Options shared by both controllers
type Options struct {
	Title       string
	ClearScreen bool
}

// New returns the controller for a concrete style
func New(style Style, state *selection.State, in Input, console *ui.Console, opts Options) Controller {
	if opts.Title == "" {
		opts.Title = "Select roles/features to install:"
	}
	if style == StyleCursor {
		return &CursorMenu{state: state, input: in, console: console, opts: opts}
	}
	return &NumberedMenu{state: state, input: in, console: console, opts: opts}
}

func (o Options) frame(out io.Writer, usage string) *frame {
	return &frame{out: out, title: o.Title, usage: usage, clear: o.ClearScreen}
}

const emptySelectionNotice = "Please select at least one role or 'all'/'full'."
