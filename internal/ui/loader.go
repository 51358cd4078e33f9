package ui

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Loader is a small CLI spinner shown while a sub-step runs with captured output
// (the galaxy collection install). It is never used while the engine owns the terminal.
//
//	l := ui.NewLoader(os.Stdout, "Installing collections...")
//	l.Start()
//	// do work
//	l.Stop()
type Loader struct {
	mu           sync.Mutex
	msg          string
	frames       []string
	interval     time.Duration
	out          io.Writer
	stopCh       chan struct{}
	doneCh       chan struct{}
	active       bool
	supportsANSI bool
	paint        *color.Color
}

// NewLoader creates a loader writing to out (stdout when nil). ANSI frames are
// used unless colors are disabled or the platform is Windows.
func NewLoader(out io.Writer, message string) *Loader {
	l := &Loader{
		msg:          message,
		frames:       []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval:     90 * time.Millisecond,
		out:          out,
		supportsANSI: runtime.GOOS != "windows" && !color.NoColor,
		paint:        color.New(color.FgCyan),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	if l.out == nil {
		l.out = os.Stdout
	}
	if !l.supportsANSI {
		l.frames = []string{"-", "\\", "|", "/"}
	}
	return l
}

// Start begins the spinner. Repeated calls are ignored.
func (l *Loader) Start() {
	l.mu.Lock()
	if l.active {
		l.mu.Unlock()
		return
	}
	l.active = true
	l.mu.Unlock()

	if l.supportsANSI {
		fmt.Fprint(l.out, "\x1b[?25l")
	}

	go func() {
		defer close(l.doneCh)
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			frame := l.frames[i%len(l.frames)]
			if l.supportsANSI {
				fmt.Fprintf(l.out, "\r\x1b[2K%s %s", l.paint.Sprint(frame), l.msg)
			} else {
				fmt.Fprintf(l.out, "\r%s %s", frame, l.msg)
			}
			select {
			case <-l.stopCh:
				if l.supportsANSI {
					fmt.Fprint(l.out, "\r\x1b[2K\x1b[?25h")
				} else {
					fmt.Fprint(l.out, "\r"+strings.Repeat(" ", len(l.msg)+2)+"\r")
				}
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner and waits for the frame goroutine to exit.
func (l *Loader) Stop() {
	l.mu.Lock()
	if !l.active {
		l.mu.Unlock()
		return
	}
	l.active = false
	close(l.stopCh)
	l.mu.Unlock()
	<-l.doneCh
}
