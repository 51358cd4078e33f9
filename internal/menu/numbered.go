package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hemantobora/auto-provision/internal/selection"
	"github.com/hemantobora/auto-provision/internal/ui"
)

// NumberedMenu prints the catalog with indices and reads comma-separated
// choices one line at a time, then asks for an explicit confirmation.
type NumberedMenu struct {
	state   *selection.State
	input   Input
	console *ui.Console
	opts    Options
}

func (m *NumberedMenu) Run() (Outcome, error) {
	n := m.state.Catalog().Len()
	defer release(m.input)
	f := m.opts.frame(m.console.Out(), "Enter numbers to toggle (comma-separated), 'a' for all, 'f' for full, 'q' to quit.")
	for {
		renderNumbered(f, m.state, m.console.Warnf)
		fmt.Fprint(f.out, "Your choice (e.g., '1,3,5', 'a', 'f', 'q'): ")

		ev, err := m.input.Read()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(f.out)
			return OutcomeQuit, nil
		}
		if err != nil {
			return 0, fmt.Errorf("read menu input: %w", err)
		}

		quit, err := m.apply(ParseLine(ev.Text, n))
		if err != nil {
			return 0, err
		}
		if quit {
			return OutcomeQuit, nil
		}
		if m.state.IsEmpty() {
			f.notice = emptySelectionNotice
			continue
		}

		fmt.Fprintf(f.out, "Selected: %s. Confirm? (y/N): ", strings.Join(m.state.Snapshot(), ", "))
		ev, err = m.input.Read()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(f.out)
			return OutcomeQuit, nil
		}
		if err != nil {
			return 0, fmt.Errorf("read confirmation: %w", err)
		}
		if IsYes(ev.Text) {
			return OutcomeConfirmed, nil
		}
	}
}

// apply runs the actions in order and stops at the first quit.
func (m *NumberedMenu) apply(actions []Action) (bool, error) {
	for _, a := range actions {
		switch a.Kind {
		case ActionQuit:
			return true, nil
		case ActionToggle:
			if err := m.state.ToggleIndex(a.Index); err != nil {
				return false, err
			}
		case ActionAggregate:
			if err := m.state.ApplyAggregate(a.Aggregate); err != nil {
				return false, err
			}
		}
	}
	return false, nil
}
