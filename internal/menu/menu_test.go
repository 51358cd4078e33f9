package menu

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemantobora/auto-provision/internal/catalog"
	"github.com/hemantobora/auto-provision/internal/selection"
	"github.com/hemantobora/auto-provision/internal/ui"
)

func init() {
	color.NoColor = true
}

type scripted struct {
	events []Event
	reads  int
	closed int
}

func (s *scripted) Close() error {
	s.closed++
	return nil
}

func (s *scripted) Read() (Event, error) {
	if len(s.events) == 0 {
		return Event{}, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	s.reads++
	return ev, nil
}

func lines(ls ...string) *scripted {
	s := &scripted{}
	for _, l := range ls {
		s.events = append(s.events, Event{Key: KeyLine, Text: l})
	}
	return s
}

func keys(ks ...Key) *scripted {
	s := &scripted{}
	for _, k := range ks {
		s.events = append(s.events, Event{Key: k})
	}
	return s
}

func newState() *selection.State {
	return selection.New(catalog.MustNew([]string{"A", "B", "C", "D"}, "D"))
}

func newConsole() (*ui.Console, *bytes.Buffer) {
	var out bytes.Buffer
	return ui.NewConsoleWithWriters(&out, io.Discard), &out
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want []Action
	}{
		{line: "", want: []Action{}},
		{line: "1,3", want: []Action{{Kind: ActionToggle, Index: 0}, {Kind: ActionToggle, Index: 2}}},
		{line: " 2 , 4 ", want: []Action{{Kind: ActionToggle, Index: 1}, {Kind: ActionToggle, Index: 3}}},
		{line: "a", want: []Action{{Kind: ActionAggregate, Aggregate: catalog.Standard}}},
		{line: "FULL", want: []Action{{Kind: ActionAggregate, Aggregate: catalog.Complete}}},
		{line: "5,6", want: []Action{{Kind: ActionAggregate, Aggregate: catalog.Standard}, {Kind: ActionAggregate, Aggregate: catalog.Complete}}},
		{line: "0,7,x,-1", want: []Action{}},
		{line: "1,q", want: []Action{{Kind: ActionToggle, Index: 0}, {Kind: ActionQuit}}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line, 4))
		})
	}
}

func TestIsYes(t *testing.T) {
	assert.True(t, IsYes("y"))
	assert.True(t, IsYes(" YES "))
	assert.False(t, IsYes(""))
	assert.False(t, IsYes("n"))
}

func TestNumberedEmptyInputRepromptsThenQuits(t *testing.T) {
	state := newState()
	console, out := newConsole()
	in := lines("", "q")

	outcome, err := New(StyleNumbered, state, in, console, Options{}).Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, outcome)
	assert.True(t, state.IsEmpty())
	assert.Equal(t, 2, in.reads, "empty input must not ask for confirmation")
	assert.Contains(t, out.String(), emptySelectionNotice)
	assert.NotContains(t, out.String(), "Confirm?")
}

func TestNumberedConfirm(t *testing.T) {
	state := newState()
	console, out := newConsole()

	outcome, err := New(StyleNumbered, state, lines("3,1", "y"), console, Options{}).Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome)
	assert.Equal(t, []string{"A", "C"}, state.Snapshot())
	assert.Contains(t, out.String(), "Selected: A, C. Confirm? (y/N)")
	assert.Contains(t, out.String(), " 1. [ ] A")
	assert.Contains(t, out.String(), " 5. [ ] all (all except D)")
}

func TestNumberedDeclineKeepsSelection(t *testing.T) {
	state := newState()
	console, _ := newConsole()

	outcome, err := New(StyleNumbered, state, lines("1", "n", "2", "yes"), console, Options{}).Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome)
	assert.Equal(t, []string{"A", "B"}, state.Snapshot())
}

func TestNumberedAggregateToggle(t *testing.T) {
	state := newState()
	console, out := newConsole()

	// standard, decline, standard again clears, then complete via its index
	outcome, err := New(StyleNumbered, state, lines("a", "n", "a", "6", "y"), console, Options{}).Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome)
	assert.Equal(t, []string{"A", "B", "C", "D"}, state.Snapshot())
	assert.True(t, state.CompleteActive())
	assert.Contains(t, out.String(), " 5. [x] all (all except D)")
}

func TestNumberedIgnoresUnknownTokens(t *testing.T) {
	state := newState()
	console, out := newConsole()

	outcome, err := New(StyleNumbered, state, lines("foo, 99", "quit"), console, Options{}).Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, outcome)
	assert.Contains(t, out.String(), emptySelectionNotice)
}

func TestNumberedEOFQuits(t *testing.T) {
	state := newState()
	console, _ := newConsole()

	outcome, err := New(StyleNumbered, state, lines("1"), console, Options{}).Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, outcome)
}

type failing struct{}

func (failing) Read() (Event, error) { return Event{}, errors.New("tty gone") }

func TestNumberedReadError(t *testing.T) {
	console, _ := newConsole()
	_, err := New(StyleNumbered, newState(), failing{}, console, Options{}).Run()
	assert.ErrorContains(t, err, "tty gone")
}

func TestNumberedClearScreen(t *testing.T) {
	console, out := newConsole()
	_, err := New(StyleNumbered, newState(), lines("q"), console, Options{ClearScreen: true, Title: "Pick"}).Run()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), clearScreen+"Pick\n"))
}

func TestCursorToggleAndAccept(t *testing.T) {
	state := newState()
	console, _ := newConsole()

	outcome, err := New(StyleCursor, state, keys(KeyDown, KeyToggle, KeyDown, KeyDown, KeyToggle, KeyOther, KeyAccept), console, Options{}).Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome)
	assert.Equal(t, []string{"B", "D"}, state.Snapshot())
}

func TestCursorWrapsAround(t *testing.T) {
	state := newState()
	console, _ := newConsole()
	m := New(StyleCursor, state, keys(KeyUp, KeyToggle, KeyDown, KeyToggle, KeyAccept), console, Options{}).(*CursorMenu)

	outcome, err := m.Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome)
	// up from the first row lands on "full"; down from there wraps to the first role,
	// and toggling a role clears the complete flag
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, []string{"B", "C", "D"}, state.Snapshot())
	assert.False(t, state.CompleteActive())
}

func TestCursorAggregateDoubleApplyClears(t *testing.T) {
	state := newState()
	console, out := newConsole()

	// move to "all", apply twice, try to accept empty, then quit
	in := keys(KeyDown, KeyDown, KeyDown, KeyDown, KeyToggle, KeyToggle, KeyAccept, KeyQuit)
	outcome, err := New(StyleCursor, state, in, console, Options{}).Run()

	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, outcome)
	assert.True(t, state.IsEmpty())
	assert.Contains(t, out.String(), emptySelectionNotice)
}

func TestInputClosedWhenLoopReturns(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		in    *scripted
		want  Outcome
	}{
		{"cursor confirm", StyleCursor, keys(KeyToggle, KeyAccept), OutcomeConfirmed},
		{"cursor quit", StyleCursor, keys(KeyQuit), OutcomeQuit},
		{"numbered confirm", StyleNumbered, lines("1", "y"), OutcomeConfirmed},
		{"numbered eof", StyleNumbered, lines(), OutcomeQuit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console, _ := newConsole()

			outcome, err := New(tt.style, newState(), tt.in, console, Options{}).Run()

			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
			assert.Equal(t, 1, tt.in.closed)
		})
	}
}

func TestCursorRendersMarker(t *testing.T) {
	console, out := newConsole()
	_, err := New(StyleCursor, newState(), keys(KeyToggle, KeyQuit), console, Options{}).Run()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "> [✔] A")
	assert.Contains(t, out.String(), "  [ ] B")
}

func TestTranslateRune(t *testing.T) {
	assert.Equal(t, KeyUp, TranslateRune(terminal.KeyArrowUp))
	assert.Equal(t, KeyDown, TranslateRune('j'))
	assert.Equal(t, KeyToggle, TranslateRune(' '))
	assert.Equal(t, KeyAccept, TranslateRune(terminal.KeyEnter))
	assert.Equal(t, KeyQuit, TranslateRune('q'))
	assert.Equal(t, KeyQuit, TranslateRune(terminal.KeyInterrupt))
	assert.Equal(t, KeyOther, TranslateRune('x'))
}

func TestLineInput(t *testing.T) {
	in := NewLineInput(strings.NewReader("1,2\n  a \nlast"))

	for _, want := range []string{"1,2", "a", "last"} {
		ev, err := in.Read()
		require.NoError(t, err)
		assert.Equal(t, KeyLine, ev.Key)
		assert.Equal(t, want, ev.Text)
	}
	_, err := in.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStyle(t *testing.T) {
	s, err := ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleAuto, s)
	assert.Equal(t, StyleCursor, s.Resolve(true))
	assert.Equal(t, StyleNumbered, s.Resolve(false))
	assert.Equal(t, StyleNumbered, StyleNumbered.Resolve(true))

	_, err = ParseStyle("fancy")
	assert.Error(t, err)
}
