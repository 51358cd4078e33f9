package engine

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/hemantobora/auto-provision/internal/inventory"
	"github.com/hemantobora/auto-provision/internal/models"
	"github.com/hemantobora/auto-provision/internal/ui"
)

const (
	DefaultBinary          = "ansible-playbook"
	DefaultPlaybook        = "site.yml"
	DefaultLocalInventory  = "inventory/hosts.ini"
	DefaultRemoteInventory = "inventory/remote_hosts.ini"
)

// Pipeline turns a confirmed selection and a target into one engine run
type Pipeline struct {
	Runner          Runner
	Binary          string
	Playbook        string
	PlaybookDir     string
	LocalInventory  string // relative to PlaybookDir unless absolute
	RemoteInventory string
	Console         *ui.Console
}

// NewPipeline returns a pipeline with the default file layout rooted at dir
func NewPipeline(dir string, runner Runner, console *ui.Console) *Pipeline {
	return &Pipeline{
		Runner:          runner,
		Binary:          DefaultBinary,
		Playbook:        DefaultPlaybook,
		PlaybookDir:     dir,
		LocalInventory:  DefaultLocalInventory,
		RemoteInventory: DefaultRemoteInventory,
		Console:         console,
	}
}

// InventoryFor returns the relative and on-disk inventory paths for target
func (p *Pipeline) InventoryFor(t models.TargetDescriptor) (rel, abs string) {
	rel = p.LocalInventory
	if t.IsRemote() {
		rel = p.RemoteInventory
	}
	if filepath.IsAbs(rel) {
		return rel, rel
	}
	return rel, filepath.Join(p.PlaybookDir, rel)
}

// BuildArgs returns the engine arguments for features against target.
// features must already be de-duplicated and in catalog order.
func (p *Pipeline) BuildArgs(features []string, t models.TargetDescriptor) []string {
	inv, _ := p.InventoryFor(t)
	args := []string{
		"-i", inv,
		p.Playbook,
		"--tags", strings.Join(features, ","),
		"--ask-become-pass",
	}
	if t.NeedsPassword() {
		args = append(args, "--ask-pass")
	}
	return args
}

// Invoke writes the inventory, runs the engine once and reports its exit status.
// A non-zero exit returns the result together with an *models.InvocationError.
func (p *Pipeline) Invoke(ctx context.Context, features []string, t models.TargetDescriptor) (models.InvocationResult, error) {
	if len(features) == 0 {
		return models.InvocationResult{}, models.ErrEmptySelection
	}

	_, invPath := p.InventoryFor(t)
	if err := inventory.Write(invPath, t); err != nil {
		return models.InvocationResult{}, err
	}
	p.debugf("Inventory written to %s", invPath)

	args := p.BuildArgs(features, t)
	line := shellescape.QuoteCommand(append([]string{p.Binary}, args...))
	p.infof("Running: %s", line)

	// The engine owns the terminal from here; an interrupt is its to handle
	code, err := p.Runner.Run(context.WithoutCancel(ctx), Command{Name: p.Binary, Args: args, Dir: p.PlaybookDir})
	if err != nil {
		return models.NewInvocationResult(code), &models.InvocationError{Command: p.Binary, ExitCode: code, Cause: err}
	}
	result := models.NewInvocationResult(code)
	if !result.Succeeded {
		return result, &models.InvocationError{Command: p.Binary, ExitCode: code}
	}
	return result, nil
}

func (p *Pipeline) infof(format string, a ...interface{}) {
	if p.Console != nil {
		p.Console.Infof(format, a...)
	}
}

func (p *Pipeline) debugf(format string, a ...interface{}) {
	if p.Console != nil {
		p.Console.Debugf(format, a...)
	}
}

// CheckInstalled reports whether binary is on PATH
func CheckInstalled(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", &models.EngineNotFoundError{Binary: binary, Cause: err}
	}
	return path, nil
}
