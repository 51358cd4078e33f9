package models

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks. The typed errors below unwrap to them.
var (
	ErrInvalidFeature     = errors.New("invalid feature")
	ErrEmptySelection     = errors.New("no roles selected")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrInvocationFailed   = errors.New("invocation failed")
	ErrEngineNotFound     = errors.New("engine not found")
)

// InvalidFeatureError reports a role name that is not part of the catalog.
// Menu input is always index-derived, so this indicates a bug rather than
// operator error (except for names passed with --roles).
type InvalidFeatureError struct {
	Name string
}

func (e *InvalidFeatureError) Error() string {
	return fmt.Sprintf("unknown role '%s'", e.Name)
}

func (e *InvalidFeatureError) Unwrap() error {
	return ErrInvalidFeature
}

// CredentialNotFoundError represents a key path that does not resolve to a file
type CredentialNotFoundError struct {
	Path  string
	Cause error
}

func (e *CredentialNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("SSH key file not found at '%s': %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("SSH key file not found at '%s'", e.Path)
}

func (e *CredentialNotFoundError) Unwrap() error {
	return ErrCredentialNotFound
}

// InvocationError represents a non-zero exit from the configuration engine
type InvocationError struct {
	Command  string
	ExitCode int
	Cause    error
}

func (e *InvocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s exited with code %d: %v", e.Command, e.ExitCode, e.Cause)
	}
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

func (e *InvocationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvocationFailed, e.Cause}
	}
	return []error{ErrInvocationFailed}
}

// EngineNotFoundError is returned when the engine binary is not on PATH.
// Installing it is a separate bootstrap step.
type EngineNotFoundError struct {
	Binary string
	Cause  error
}

func (e *EngineNotFoundError) Error() string {
	return fmt.Sprintf("%s not found in PATH. Please install Ansible first: https://docs.ansible.com/ansible/latest/installation_guide/", e.Binary)
}

func (e *EngineNotFoundError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrEngineNotFound, e.Cause}
	}
	return []error{ErrEngineNotFound}
}

// InputValidationError represents user input validation errors
type InputValidationError struct {
	InputType string // "host", "user", "port", etc.
	Value     string
	Expected  string // description of expected format
	Cause     error
}

func (e *InputValidationError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("invalid %s value '%s' (expected: %s): %v",
			e.InputType, e.Value, e.Expected, e.Cause)
	}
	return fmt.Sprintf("invalid %s value '%s': %v",
		e.InputType, e.Value, e.Cause)
}

func (e *InputValidationError) Unwrap() error {
	return e.Cause
}

// ArchiveError represents run-archive storage errors
type ArchiveError struct {
	Provider  string // "aws"
	Operation string // "load-config", "identity", "put"
	Resource  string // bucket or key
	Cause     error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("%s archive error during %s operation on resource '%s': %v",
		e.Provider, e.Operation, e.Resource, e.Cause)
}

func (e *ArchiveError) Unwrap() error {
	return e.Cause
}
