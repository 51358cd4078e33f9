package target

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// HostDefaults are values pre-filled from ~/.ssh/config for a host alias
type HostDefaults struct {
	User         string
	Port         int
	IdentityFile string
}

// SSHConfig wraps a parsed ssh client config. A nil *SSHConfig yields no defaults.
type SSHConfig struct {
	cfg *ssh_config.Config
}

// DefaultSSHConfigPath returns ~/.ssh/config
func DefaultSSHConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ssh", "config")
}

// LoadSSHConfig parses path. A missing file is not an error.
func LoadSSHConfig(path string) (*SSHConfig, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := ssh_config.Decode(f)
	if err != nil {
		return nil, err
	}
	return &SSHConfig{cfg: cfg}, nil
}

// Lookup returns the defaults configured for host. Unparseable ports are ignored.
// IdentityFile is only taken from a Host block that names host literally;
// keys from wildcard blocks such as "Host *" are not offered, so a blank key
// answer still means password authentication for hosts without their own entry.
func (c *SSHConfig) Lookup(host string) HostDefaults {
	var d HostDefaults
	if c == nil || c.cfg == nil || host == "" {
		return d
	}
	if v, err := c.cfg.Get(host, "User"); err == nil {
		d.User = v
	}
	if v, err := c.cfg.Get(host, "Port"); err == nil && v != "" {
		if p, perr := strconv.Atoi(v); perr == nil {
			d.Port = p
		}
	}
	d.IdentityFile = c.explicitIdentityFile(host)
	return d
}

func (c *SSHConfig) explicitIdentityFile(host string) string {
	for _, h := range c.cfg.Hosts {
		named := false
		for _, p := range h.Patterns {
			if p.String() == host {
				named = true
				break
			}
		}
		if !named {
			continue
		}
		for _, node := range h.Nodes {
			if kv, ok := node.(*ssh_config.KV); ok && strings.EqualFold(kv.Key, "IdentityFile") {
				return kv.Value
			}
		}
	}
	return ""
}
