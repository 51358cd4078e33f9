// Package session wires one provisioning run: engine check, collections,
// target, role selection, invocation and the optional run archive.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hemantobora/auto-provision/internal/archive"
	"github.com/hemantobora/auto-provision/internal/catalog"
	"github.com/hemantobora/auto-provision/internal/engine"
	"github.com/hemantobora/auto-provision/internal/inventory"
	"github.com/hemantobora/auto-provision/internal/menu"
	"github.com/hemantobora/auto-provision/internal/models"
	"github.com/hemantobora/auto-provision/internal/selection"
	"github.com/hemantobora/auto-provision/internal/ui"
)

// TargetSource produces the target descriptor, prompting if it needs to
type TargetSource func() (models.TargetDescriptor, error)

// Request describes what the operator asked for on the command line
type Request struct {
	Target TargetSource

	// Roles or Aggregate preselect the features and skip the menu
	Roles     []string
	Aggregate catalog.Aggregate
}

func (r Request) bypassMenu() bool {
	return len(r.Roles) > 0 || r.Aggregate != ""
}

// Report is what happened during Run
type Report struct {
	Outcome    menu.Outcome
	Target     models.TargetDescriptor
	Features   []string
	Result     models.InvocationResult
	ArchiveKey string
}

// Session holds the collaborators for a run. Collections and Archiver are optional.
type Session struct {
	Catalog     *catalog.Catalog
	Pipeline    *engine.Pipeline
	Collections *engine.CollectionInstaller
	Archiver    *archive.Archiver
	Console     *ui.Console

	// NewMenu builds the interactive controller for a fresh selection
	NewMenu func(*selection.State) menu.Controller

	CheckEngine func(binary string) (string, error)
	Now         func() time.Time
}

// Run executes one session. Quitting the menu is not an error and yields an
// OutcomeQuit report with a zero result.
func (s *Session) Run(ctx context.Context, req Request) (Report, error) {
	var rep Report

	check := s.CheckEngine
	if check == nil {
		check = engine.CheckInstalled
	}
	path, err := check(s.Pipeline.Binary)
	if err != nil {
		return rep, err
	}
	s.Console.Debugf("Using %s", path)

	if s.Collections != nil {
		if err := s.Collections.Install(ctx); err != nil {
			s.Console.Warnf("Collection installation failed, continuing: %v", err)
		}
	}

	// Remote details are gathered before the menu so a bad key fails early
	target, err := req.Target()
	if err != nil {
		return rep, err
	}
	rep.Target = target

	state := selection.New(s.Catalog)
	if req.bypassMenu() {
		if err := preselect(state, req); err != nil {
			return rep, err
		}
		rep.Outcome = menu.OutcomeConfirmed
	} else {
		outcome, err := s.NewMenu(state).Run()
		if err != nil {
			return rep, fmt.Errorf("menu failed: %w", err)
		}
		rep.Outcome = outcome
	}

	if rep.Outcome == menu.OutcomeQuit {
		s.Console.Infof("Exiting without changes.")
		return rep, nil
	}

	rep.Features = state.Snapshot()
	s.Console.Infof("Selected roles: %s", strings.Join(rep.Features, ", "))
	s.Console.Infof("Running Ansible playbook with selected roles against %s...", target)

	started := s.now()
	result, invokeErr := s.Pipeline.Invoke(ctx, rep.Features, target)
	rep.Result = result

	if invokeErr == nil {
		s.Console.Successf("Ansible playbook executed successfully on %s.", target)
	} else if !errors.Is(invokeErr, models.ErrInvocationFailed) {
		return rep, invokeErr
	} else {
		var ierr *models.InvocationError
		if errors.As(invokeErr, &ierr) && ierr.Cause != nil {
			s.Console.Errorf("Could not run %s: %v", ierr.Command, ierr.Cause)
		} else {
			s.Console.Errorf("Ansible playbook execution failed on %s. Please check the output above for errors.", target)
		}
	}

	if s.Archiver != nil {
		key, err := s.archive(ctx, rep, started)
		if err != nil {
			s.Console.Warnf("Run archive failed: %v", err)
		} else {
			rep.ArchiveKey = key
			s.Console.Infof("Run archived to %s", key)
		}
	}

	return rep, invokeErr
}

func (s *Session) archive(ctx context.Context, rep Report, started time.Time) (string, error) {
	_, invPath := s.Pipeline.InventoryFor(rep.Target)
	inv, err := os.ReadFile(invPath)
	if err != nil {
		inv = []byte(inventory.Render(rep.Target))
	}
	rec := &models.RunRecord{
		StartedAt:  started,
		FinishedAt: s.now(),
		Target:     rep.Target,
		Features:   rep.Features,
		Result:     rep.Result,
	}
	return s.Archiver.Archive(ctx, rec, inv)
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func preselect(state *selection.State, req Request) error {
	if req.Aggregate == "" {
		if err := state.Select(req.Roles...); err != nil {
			return err
		}
	} else {
		if err := state.ApplyAggregate(req.Aggregate); err != nil {
			return err
		}
		// Extra roles on top of an aggregate, typically the opt-in one
		for _, name := range req.Roles {
			if state.Has(name) {
				continue
			}
			if err := state.Toggle(name); err != nil {
				return err
			}
		}
	}
	if state.IsEmpty() {
		return models.ErrEmptySelection
	}
	return nil
}

// ExitCode maps a session outcome to the process exit status: the engine's
// own code when it ran and failed, 1 for anything that stopped the session
// before the engine ran, 0 otherwise.
func ExitCode(rep Report, err error) int {
	if err == nil {
		return rep.Result.ExitCode
	}
	var ierr *models.InvocationError
	if errors.As(err, &ierr) && ierr.ExitCode > 0 {
		return ierr.ExitCode
	}
	return 1
}

// AggregateFromFlags maps --standard/--complete to an aggregate; the two are
// mutually exclusive
func AggregateFromFlags(standard, complete bool) (catalog.Aggregate, error) {
	switch {
	case standard && complete:
		return "", errors.New("--standard and --complete cannot be used together")
	case complete:
		return catalog.Complete, nil
	case standard:
		return catalog.Standard, nil
	}
	return "", nil
}

// ParseRoles splits a --roles value on commas and whitespace
func ParseRoles(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
