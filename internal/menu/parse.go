package menu

import (
	"strconv"
	"strings"

	"github.com/hemantobora/auto-provision/internal/catalog"
)

// ActionKind is what a single token of numbered-menu input asks for
type ActionKind int

const (
	ActionToggle ActionKind = iota + 1
	ActionAggregate
	ActionQuit
)

// Action is one resolved token
type Action struct {
	Kind      ActionKind
	Index     int // 0-based, for ActionToggle
	Aggregate catalog.Aggregate
}

var (
	standardWords = map[string]bool{"a": true, "all": true, "s": true, "standard": true}
	completeWords = map[string]bool{"f": true, "full": true, "c": true, "complete": true}
	quitWords     = map[string]bool{"q": true, "quit": true, "exit": true}
)

// ParseLine resolves a line like "1,3, 5 a" against a catalog of n roles.
// Indices are 1-based; n+1 and n+2 stand for the standard and complete
// entries. Tokens that resolve to nothing are dropped.
func ParseLine(line string, n int) []Action {
	fields := strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	actions := make([]Action, 0, len(fields))
	for _, tok := range fields {
		switch {
		case quitWords[tok]:
			actions = append(actions, Action{Kind: ActionQuit})
		case standardWords[tok]:
			actions = append(actions, Action{Kind: ActionAggregate, Aggregate: catalog.Standard})
		case completeWords[tok]:
			actions = append(actions, Action{Kind: ActionAggregate, Aggregate: catalog.Complete})
		default:
			idx, err := strconv.Atoi(tok)
			if err != nil {
				continue
			}
			switch {
			case idx >= 1 && idx <= n:
				actions = append(actions, Action{Kind: ActionToggle, Index: idx - 1})
			case idx == n+1:
				actions = append(actions, Action{Kind: ActionAggregate, Aggregate: catalog.Standard})
			case idx == n+2:
				actions = append(actions, Action{Kind: ActionAggregate, Aggregate: catalog.Complete})
			}
		}
	}
	return actions
}

// IsYes reports whether a confirmation answer is affirmative
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
