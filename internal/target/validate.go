package target

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hemantobora/auto-provision/internal/models"
)

var hostnamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// ValidateHost accepts an IPv4/IPv6 address or a hostname / ssh alias
func ValidateHost(host string) error {
	if host == "" {
		return &models.InputValidationError{InputType: "host", Value: host, Cause: errors.New("server IP/hostname cannot be empty")}
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	if !hostnamePattern.MatchString(host) {
		return &models.InputValidationError{
			InputType: "host",
			Value:     host,
			Expected:  "IP address or hostname",
			Cause:     errors.New("invalid IP address or hostname format"),
		}
	}
	return nil
}

// ValidateUser requires a non-empty name without whitespace
func ValidateUser(user string) error {
	if user == "" {
		return &models.InputValidationError{InputType: "user", Value: user, Cause: errors.New("SSH username cannot be empty")}
	}
	if strings.ContainsAny(user, " \t") {
		return &models.InputValidationError{InputType: "user", Value: user, Cause: errors.New("SSH username cannot contain spaces")}
	}
	return nil
}

// ParsePort parses a port answer; blank means 22
func ParsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.DefaultSSHPort, nil
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, &models.InputValidationError{InputType: "port", Value: s, Expected: "a number", Cause: err}
	}
	if err := ValidatePort(port); err != nil {
		return 0, err
	}
	return port, nil
}

// ValidatePort checks the TCP port range
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return &models.InputValidationError{
			InputType: "port",
			Value:     strconv.Itoa(port),
			Expected:  "1-65535",
			Cause:     errors.New("port out of range"),
		}
	}
	return nil
}

// ResolveKeyPath expands a leading ~ and checks the key file exists.
// An empty path is valid and means password authentication.
func ResolveKeyPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	expanded, err := expandHome(path)
	if err != nil {
		return "", &models.CredentialNotFoundError{Path: path, Cause: err}
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return "", &models.CredentialNotFoundError{Path: expanded, Cause: err}
	}
	if info.IsDir() {
		return "", &models.CredentialNotFoundError{Path: expanded, Cause: fmt.Errorf("%s is a directory", expanded)}
	}
	return expanded, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
