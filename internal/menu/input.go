package menu

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
)

// Key is the menu-level meaning of one input event
type Key int

const (
	KeyLine   Key = iota // a full line of text, see Event.Text
	KeyUp                // move cursor up
	KeyDown              // move cursor down
	KeyToggle            // toggle the entry under the cursor
	KeyAccept            // accept the current selection
	KeyQuit              // leave without applying anything
	KeyOther             // anything else; ignored
)

// Event is one unit of operator input
type Event struct {
	Key  Key
	Text string
}

// Input reads one input event at a time. Implementations block until an event
// is available and return io.EOF when the input is exhausted. An Input that
// also implements io.Closer is closed when the menu loop returns.
type Input interface {
	Read() (Event, error)
}

// release closes in if it holds terminal state, so the terminal is back in
// cooked mode before anything else reads from it
func release(in Input) {
	if c, ok := in.(io.Closer); ok {
		c.Close()
	}
}

// LineInput turns each line of r into a KeyLine event.
type LineInput struct {
	r *bufio.Reader
}

// NewLineInput wraps r
func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{r: bufio.NewReader(r)}
}

func (in *LineInput) Read() (Event, error) {
	line, err := in.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return Event{Key: KeyLine, Text: strings.TrimSpace(line)}, nil
		}
		return Event{}, err
	}
	return Event{Key: KeyLine, Text: strings.TrimSpace(line)}, nil
}

// KeyInput reads single keypresses from a terminal in raw mode. The terminal
// is switched on the first Read and restored by Close.
type KeyInput struct {
	rr     *terminal.RuneReader
	rawSet bool
}

// NewKeyInput reads from stdio.In, which must be a terminal
func NewKeyInput(stdio terminal.Stdio) *KeyInput {
	return &KeyInput{rr: terminal.NewRuneReader(stdio)}
}

func (in *KeyInput) Read() (Event, error) {
	if !in.rawSet {
		if err := in.rr.SetTermMode(); err != nil {
			return Event{}, err
		}
		in.rawSet = true
	}
	r, _, err := in.rr.ReadRune()
	if err != nil {
		return Event{}, err
	}
	return Event{Key: TranslateRune(r)}, nil
}

// Close restores the terminal mode
func (in *KeyInput) Close() error {
	if !in.rawSet {
		return nil
	}
	in.rawSet = false
	return in.rr.RestoreTermMode()
}

// TranslateRune maps a rune from the survey rune reader to a menu key. The
// reader already folds arrow escape sequences into KeyArrowUp/KeyArrowDown.
func TranslateRune(r rune) Key {
	switch r {
	case terminal.KeyArrowUp, 'k':
		return KeyUp
	case terminal.KeyArrowDown, 'j':
		return KeyDown
	case terminal.KeySpace:
		return KeyToggle
	case terminal.KeyEnter, '\n':
		return KeyAccept
	case 'q', 'Q', terminal.KeyInterrupt, terminal.KeyEndTransmission:
		return KeyQuit
	default:
		return KeyOther
	}
}
