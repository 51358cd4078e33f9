package models

import "time"

// InvocationResult is the outcome of one engine run
type InvocationResult struct {
	ExitCode  int  `json:"exit_code"`
	Succeeded bool `json:"succeeded"`
}

// NewInvocationResult derives Succeeded from the exit code
func NewInvocationResult(exitCode int) InvocationResult {
	return InvocationResult{ExitCode: exitCode, Succeeded: exitCode == 0}
}

// RunRecord is the JSON document written to the run archive
type RunRecord struct {
	ID         string           `json:"id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Target     TargetDescriptor `json:"target"`
	Features   []string         `json:"features"`
	Result     InvocationResult `json:"result"`
	Identity   string           `json:"identity,omitempty"` // AWS caller ARN that uploaded the record
	Inventory  string           `json:"inventory_key,omitempty"`
}
