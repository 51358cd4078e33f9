// Package inventory renders the single-host INI inventory handed to the engine.
package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hemantobora/auto-provision/internal/models"
)

const (
	LocalGroup  = "localhost"
	RemoteGroup = "remote_servers"
)

// Render returns the inventory text for t. It always holds exactly one host.
func Render(t models.TargetDescriptor) string {
	var b strings.Builder
	if !t.IsRemote() {
		fmt.Fprintf(&b, "[%s]\n", LocalGroup)
		fmt.Fprintf(&b, "%s ansible_connection=local\n", t.Alias())
		return b.String()
	}

	fmt.Fprintf(&b, "[%s]\n", RemoteGroup)
	fmt.Fprintf(&b, "%s ansible_host=%s ansible_user=%s ansible_port=%d", t.Alias(), t.Host, t.User, t.Port)
	if t.KeyPath != "" {
		fmt.Fprintf(&b, " ansible_ssh_private_key_file='%s'", t.KeyPath)
	}
	b.WriteString("\n")
	return b.String()
}

// Write renders t to path, creating parent directories and replacing any previous file
func Write(path string, t models.TargetDescriptor) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create inventory directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Render(t)), 0o644); err != nil {
		return fmt.Errorf("failed to write inventory %s: %w", path, err)
	}
	return nil
}
