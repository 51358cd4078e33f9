package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hemantobora/auto-provision/internal/ui"
)

const (
	DefaultGalaxyBinary = "ansible-galaxy"
	DefaultRequirements = "requirements.yml"
)

// CollectionInstaller runs the galaxy pre-step that installs the collections
// the playbook depends on
type CollectionInstaller struct {
	Runner       Runner
	Binary       string
	Requirements string // relative to Dir unless absolute
	Dir          string
	Console      *ui.Console
}

// Args returns the galaxy arguments
func (c *CollectionInstaller) Args() []string {
	return []string{"collection", "install", "-r", c.Requirements}
}

// Install runs the galaxy command with its output captured behind a spinner.
// A missing requirements file is reported as a warning and skipped.
func (c *CollectionInstaller) Install(ctx context.Context) error {
	path := c.Requirements
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.Dir, path)
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		c.Console.Warnf("%s not found, skipping collection installation", c.Requirements)
		return nil
	}

	var output bytes.Buffer
	loader := c.Console.NewLoader("Installing Ansible collections")
	loader.Start()
	code, err := c.Runner.Run(ctx, Command{
		Name:   c.Binary,
		Args:   c.Args(),
		Dir:    c.Dir,
		Stdout: &output,
		Stderr: &output,
	})
	loader.Stop()

	if err != nil {
		return fmt.Errorf("failed to run %s: %w", c.Binary, err)
	}
	if code != 0 {
		c.Console.Errorf("%s", strings.TrimSpace(output.String()))
		return fmt.Errorf("%s exited with code %d", c.Binary, code)
	}
	c.Console.Debugf("%s", strings.TrimSpace(output.String()))
	c.Console.Successf("Ansible collections installed")
	return nil
}
