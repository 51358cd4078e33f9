// Package prompts asks the operator for individual values
package prompts

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Prompter is the narrow prompt surface the session needs. Validators are
// re-applied by the implementation until the answer passes.
type Prompter interface {
	Input(message, def, help string, validate func(string) error) (string, error)
	Confirm(message string, def bool) (bool, error)
	Select(message string, options []string, def string) (string, error)
}

// SurveyPrompter implements Prompter with survey
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter binds survey to stdio
func NewSurveyPrompter(stdio terminal.Stdio) *SurveyPrompter {
	return &SurveyPrompter{
		opts: []survey.AskOpt{survey.WithStdio(stdio.In, stdio.Out, stdio.Err)},
	}
}

func (p *SurveyPrompter) Input(message, def, help string, validate func(string) error) (string, error) {
	var answer string
	opts := p.opts
	if validate != nil {
		opts = append(append([]survey.AskOpt(nil), p.opts...), survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(strings.TrimSpace(s))
		}))
	}
	if err := survey.AskOne(&survey.Input{Message: message, Default: def, Help: help}, &answer, opts...); err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func (p *SurveyPrompter) Confirm(message string, def bool) (bool, error) {
	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &ok, p.opts...); err != nil {
		return false, err
	}
	return ok, nil
}

func (p *SurveyPrompter) Select(message string, options []string, def string) (string, error) {
	var choice string
	prompt := &survey.Select{Message: message, Options: options}
	if def != "" {
		prompt.Default = def
	}
	if err := survey.AskOne(prompt, &choice, p.opts...); err != nil {
		return "", err
	}
	return choice, nil
}
