package models

import (
	"fmt"
	"strings"
)

// TargetMode discriminates local and remote targets
type TargetMode string

const (
	TargetLocal  TargetMode = "local"
	TargetRemote TargetMode = "remote"
)

// DefaultSSHPort is used when the operator leaves the port prompt blank
const DefaultSSHPort = 22

// TargetDescriptor is the minimal addressing record the engine needs to reach a machine.
// Local targets carry no further fields.
type TargetDescriptor struct {
	Mode    TargetMode `json:"mode"`
	Host    string     `json:"host,omitempty"`
	User    string     `json:"user,omitempty"`
	Port    int        `json:"port,omitempty"`
	KeyPath string     `json:"key_path,omitempty"` // empty means password prompt at run time
}

// LocalTarget returns the loopback descriptor
func LocalTarget() TargetDescriptor {
	return TargetDescriptor{Mode: TargetLocal}
}

// RemoteTarget builds a remote descriptor, defaulting the port to 22
func RemoteTarget(host, user string, port int, keyPath string) TargetDescriptor {
	if port == 0 {
		port = DefaultSSHPort
	}
	return TargetDescriptor{
		Mode:    TargetRemote,
		Host:    host,
		User:    user,
		Port:    port,
		KeyPath: keyPath,
	}
}

// IsRemote reports whether the target is reached over SSH
func (t TargetDescriptor) IsRemote() bool {
	return t.Mode == TargetRemote
}

// NeedsPassword reports whether the engine must prompt for the SSH password
func (t TargetDescriptor) NeedsPassword() bool {
	return t.IsRemote() && t.KeyPath == ""
}

// Alias returns the inventory host name. Remote aliases are made hostname-safe
// by replacing '.' and ':' in the address.
func (t TargetDescriptor) Alias() string {
	if !t.IsRemote() {
		return "localhost"
	}
	safe := strings.NewReplacer(".", "-", ":", "-").Replace(t.Host)
	return "remote-server-" + safe
}

// String is used in operator-facing messages
func (t TargetDescriptor) String() string {
	if !t.IsRemote() {
		return "localhost"
	}
	return fmt.Sprintf("%s@%s:%d", t.User, t.Host, t.Port)
}
