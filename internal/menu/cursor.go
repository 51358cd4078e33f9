package menu

import (
	"errors"
	"fmt"
	"io"

	"github.com/hemantobora/auto-provision/internal/catalog"
	"github.com/hemantobora/auto-provision/internal/selection"
	"github.com/hemantobora/auto-provision/internal/ui"
)

// CursorMenu is the live-cursor picker: arrows move, space toggles, enter accepts.
type CursorMenu struct {
	state   *selection.State
	input   Input
	console *ui.Console
	opts    Options
	cursor  int
}

// Cursor returns the highlighted row (0-based, aggregates after the roles)
func (m *CursorMenu) Cursor() int { return m.cursor }

func (m *CursorMenu) Run() (Outcome, error) {
	c := m.state.Catalog()
	total := c.Len() + 2
	defer release(m.input)
	f := m.opts.frame(m.console.Out(), fmt.Sprintf("Use %s arrows to navigate, %s to select/deselect, %s to confirm, %s to quit.",
		hint("UP/DOWN"), hint("SPACE"), hint("Enter"), hint("Q")))
	for {
		renderCursor(f, m.state, m.cursor, m.console.Warnf)

		ev, err := m.input.Read()
		if errors.Is(err, io.EOF) {
			return OutcomeQuit, nil
		}
		if err != nil {
			return 0, fmt.Errorf("read key: %w", err)
		}

		switch ev.Key {
		case KeyUp:
			m.cursor = (m.cursor - 1 + total) % total
		case KeyDown:
			m.cursor = (m.cursor + 1) % total
		case KeyToggle:
			if err := m.toggle(); err != nil {
				return 0, err
			}
		case KeyAccept:
			if m.state.IsEmpty() {
				f.notice = emptySelectionNotice
				continue
			}
			return OutcomeConfirmed, nil
		case KeyQuit:
			return OutcomeQuit, nil
		}
	}
}

func (m *CursorMenu) toggle() error {
	n := m.state.Catalog().Len()
	switch {
	case m.cursor < n:
		return m.state.ToggleIndex(m.cursor)
	case m.cursor == n:
		return m.state.ApplyAggregate(catalog.Standard)
	default:
		return m.state.ApplyAggregate(catalog.Complete)
	}
}
