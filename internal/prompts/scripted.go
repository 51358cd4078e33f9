package prompts

import (
	"fmt"
	"io"
	"strings"
)

// Scripted answers prompts from a fixed list. An empty answer takes the
// default, and an answer rejected by the validator is recorded and the
// prompt asked again, the same way survey behaves on a terminal.
type Scripted struct {
	Answers  []string
	Asked    []string // messages in the order they were asked
	Rejected []error  // validator failures
}

// NewScripted queues answers
func NewScripted(answers ...string) *Scripted {
	return &Scripted{Answers: answers}
}

func (s *Scripted) next(message string) (string, error) {
	s.Asked = append(s.Asked, message)
	if len(s.Answers) == 0 {
		return "", fmt.Errorf("no scripted answer for %q: %w", message, io.EOF)
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a, nil
}

func (s *Scripted) Input(message, def, _ string, validate func(string) error) (string, error) {
	for {
		a, err := s.next(message)
		if err != nil {
			return "", err
		}
		a = strings.TrimSpace(a)
		if a == "" {
			a = def
		}
		if validate != nil {
			if verr := validate(a); verr != nil {
				s.Rejected = append(s.Rejected, verr)
				continue
			}
		}
		return a, nil
	}
}

func (s *Scripted) Confirm(message string, def bool) (bool, error) {
	a, err := s.next(message)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(a)) {
	case "":
		return def, nil
	case "y", "yes", "true":
		return true, nil
	}
	return false, nil
}

func (s *Scripted) Select(message string, options []string, def string) (string, error) {
	a, err := s.next(message)
	if err != nil {
		return "", err
	}
	if a == "" {
		return def, nil
	}
	for _, o := range options {
		if o == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("%q is not one of %v", a, options)
}
