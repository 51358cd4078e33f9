package menu

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/hemantobora/auto-provision/internal/catalog"
	"github.com/hemantobora/auto-provision/internal/selection"
)

const clearScreen = "\x1b[H\x1b[2J"

var (
	rule    = strings.Repeat("-", 80)
	checked = color.New(color.FgGreen).SprintFunc()
	bold    = color.New(color.Bold).SprintFunc()
	hint    = color.New(color.FgCyan).SprintFunc()
)

// entry is one row of the menu: a role or one of the two aggregates
type entry struct {
	label     string
	role      string
	aggregate catalog.Aggregate
}

func entries(c *catalog.Catalog) []entry {
	out := make([]entry, 0, c.Len()+2)
	for _, name := range c.Features() {
		out = append(out, entry{label: name, role: name})
	}
	out = append(out,
		entry{label: fmt.Sprintf("all (%s)", c.Describe(catalog.Standard)), aggregate: catalog.Standard},
		entry{label: fmt.Sprintf("full (%s)", c.Describe(catalog.Complete)), aggregate: catalog.Complete},
	)
	return out
}

func (e entry) isChecked(s *selection.State) bool {
	if e.role != "" {
		return s.Has(e.role)
	}
	return s.AggregateActive(e.aggregate)
}

// frame holds what every render needs
type frame struct {
	out    io.Writer
	title  string
	usage  string
	clear  bool
	notice string
}

func (f *frame) header() {
	if f.clear {
		fmt.Fprint(f.out, clearScreen)
	}
	fmt.Fprintln(f.out, bold(f.title))
	fmt.Fprintln(f.out, f.usage)
	fmt.Fprintln(f.out, rule)
}

func (f *frame) footer(warn func(string, ...interface{})) {
	fmt.Fprintln(f.out, rule)
	if f.notice != "" {
		warn("%s", f.notice)
		f.notice = ""
	}
}

func renderNumbered(f *frame, s *selection.State, warn func(string, ...interface{})) {
	f.header()
	for i, e := range entries(s.Catalog()) {
		box := "[ ]"
		if e.isChecked(s) {
			box = "[x]"
		}
		fmt.Fprintf(f.out, "%2d. %s %s\n", i+1, box, e.label)
	}
	f.footer(warn)
}

func renderCursor(f *frame, s *selection.State, cursor int, warn func(string, ...interface{})) {
	f.header()
	for i, e := range entries(s.Catalog()) {
		marker := "  "
		if i == cursor {
			marker = hint(">") + " "
		}
		if e.isChecked(s) {
			fmt.Fprintf(f.out, "%s%s %s\n", marker, checked("[✔]"), e.label)
		} else {
			fmt.Fprintf(f.out, "%s[ ] %s\n", marker, e.label)
		}
	}
	f.footer(warn)
}
