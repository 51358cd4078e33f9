// Package target builds the descriptor of the machine the engine configures.
package target

import (
	"strconv"
	"strings"

	"github.com/hemantobora/auto-provision/internal/models"
	"github.com/hemantobora/auto-provision/internal/prompts"
)

// Preset holds remote fields given as flags; set fields are not prompted for.
type Preset struct {
	Host    string
	User    string
	Port    int
	KeyPath string
	KeySet  bool // --key was passed, possibly empty to force password auth
}

// Collector asks for remote target fields in a fixed order: host, user, port, key path.
type Collector struct {
	Prompter prompts.Prompter
	SSH      *SSHConfig
}

// IsPasswordAnswer reports whether a key path answer asks for password authentication
func IsPasswordAnswer(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "-":
		return true
	}
	return false
}

// Local returns the loopback descriptor. It never prompts.
func Local() models.TargetDescriptor {
	return models.LocalTarget()
}

// Remote collects and validates a remote descriptor. A key path that does not
// exist fails with a CredentialNotFoundError.
func (c *Collector) Remote(p Preset) (models.TargetDescriptor, error) {
	host := p.Host
	if host == "" {
		var err error
		host, err = c.Prompter.Input("Server Hostname/IP Address:", "", "An IP address, DNS name, or a Host alias from ~/.ssh/config", ValidateHost)
		if err != nil {
			return models.TargetDescriptor{}, err
		}
	} else if err := ValidateHost(host); err != nil {
		return models.TargetDescriptor{}, err
	}

	defaults := c.SSH.Lookup(host)

	user := p.User
	if user == "" {
		var err error
		user, err = c.Prompter.Input("SSH Username (e.g., 'ubuntu', 'ec2-user'):", defaults.User, "", ValidateUser)
		if err != nil {
			return models.TargetDescriptor{}, err
		}
	} else if err := ValidateUser(user); err != nil {
		return models.TargetDescriptor{}, err
	}

	port := p.Port
	if port == 0 {
		def := models.DefaultSSHPort
		if defaults.Port != 0 {
			def = defaults.Port
		}
		answer, err := c.Prompter.Input("SSH Port:", strconv.Itoa(def), "", func(s string) error {
			_, err := ParsePort(s)
			return err
		})
		if err != nil {
			return models.TargetDescriptor{}, err
		}
		if port, err = ParsePort(answer); err != nil {
			return models.TargetDescriptor{}, err
		}
	} else if err := ValidatePort(port); err != nil {
		return models.TargetDescriptor{}, err
	}

	keyPath := p.KeyPath
	if !p.KeySet {
		message := "Path to SSH Private Key (leave blank if using password):"
		if defaults.IdentityFile != "" {
			message = "Path to SSH Private Key (enter 'none' to use a password):"
		}
		var err error
		keyPath, err = c.Prompter.Input(message, defaults.IdentityFile, "", nil)
		if err != nil {
			return models.TargetDescriptor{}, err
		}
	}
	if IsPasswordAnswer(keyPath) {
		keyPath = ""
	}
	resolved, err := ResolveKeyPath(keyPath)
	if err != nil {
		return models.TargetDescriptor{}, err
	}

	return models.RemoteTarget(host, user, port, resolved), nil
}
