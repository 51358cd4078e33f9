// Package config loads auto-provision.yaml, the optional per-playbook settings file.
//
// Values are layered: command-line flags override environment variables,
// which override the file, which overrides the defaults below.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is looked up in the playbook directory when --config is not given
	FileName = "auto-provision.yaml"

	EnvConfig      = "AUTO_PROVISION_CONFIG"
	EnvPlaybookDir = "AUTO_PROVISION_PLAYBOOK_DIR"

	defaultArchivePrefix = "runs"
)

var validStyles = []string{"auto", "numbered", "cursor"}

// InventoryPaths are relative to the playbook directory unless absolute
type InventoryPaths struct {
	Local  string `yaml:"local"`
	Remote string `yaml:"remote"`
}

// ArchiveConfig enables the S3 run archive when Bucket is set
type ArchiveConfig struct {
	Bucket  string `yaml:"bucket,omitempty"`
	Prefix  string `yaml:"prefix,omitempty"`
	Profile string `yaml:"profile,omitempty"`
	Region  string `yaml:"region,omitempty"`
}

// Config models auto-provision.yaml
type Config struct {
	PlaybookDir  string         `yaml:"playbook_dir"`
	Playbook     string         `yaml:"playbook"`
	Engine       string         `yaml:"engine"`
	Galaxy       string         `yaml:"galaxy"`
	Requirements string         `yaml:"requirements"`
	Inventory    InventoryPaths `yaml:"inventory"`
	Style        string         `yaml:"style"`
	Archive      ArchiveConfig  `yaml:"archive"`

	// Source is the file the config was read from, empty for defaults
	Source string `yaml:"-"`
}

// Default returns the built-in layout of the playbook repository
func Default() *Config {
	return &Config{
		PlaybookDir:  ".",
		Playbook:     "site.yml",
		Engine:       "ansible-playbook",
		Galaxy:       "ansible-galaxy",
		Requirements: "requirements.yml",
		Inventory: InventoryPaths{
			Local:  "inventory/hosts.ini",
			Remote: "inventory/remote_hosts.ini",
		},
		Style:   "auto",
		Archive: ArchiveConfig{Prefix: defaultArchivePrefix},
	}
}

// Load reads path over the defaults. A missing file yields the defaults
// unless required is set. A relative playbook_dir is resolved against the
// directory holding the file.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Source = path

	if !filepath.IsAbs(cfg.PlaybookDir) {
		cfg.PlaybookDir = filepath.Join(filepath.Dir(path), cfg.PlaybookDir)
	}
	if cfg.Archive.Prefix == "" {
		cfg.Archive.Prefix = defaultArchivePrefix
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks required fields and enumerations
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Playbook) == "" {
		errs = append(errs, errors.New("playbook must not be empty"))
	}
	if strings.TrimSpace(c.Engine) == "" {
		errs = append(errs, errors.New("engine must not be empty"))
	}
	if c.Inventory.Local == "" || c.Inventory.Remote == "" {
		errs = append(errs, errors.New("inventory.local and inventory.remote must both be set"))
	}
	if c.Inventory.Local != "" && c.Inventory.Local == c.Inventory.Remote {
		errs = append(errs, errors.New("inventory.local and inventory.remote must differ"))
	}
	if !validStyle(c.Style) {
		errs = append(errs, fmt.Errorf("style %q is not one of %s", c.Style, strings.Join(validStyles, ", ")))
	}
	if strings.HasPrefix(c.Archive.Prefix, "/") {
		errs = append(errs, fmt.Errorf("archive.prefix %q must not start with '/'", c.Archive.Prefix))
	}
	return errors.Join(errs...)
}

func validStyle(s string) bool {
	for _, v := range validStyles {
		if s == v {
			return true
		}
	}
	return false
}

// ArchiveEnabled reports whether runs are uploaded after completion
func (c *Config) ArchiveEnabled() bool {
	return c.Archive.Bucket != ""
}

// PlaybookPath returns the playbook file on disk
func (c *Config) PlaybookPath() string {
	return c.resolve(c.Playbook)
}

// RequirementsPath returns the galaxy requirements file on disk
func (c *Config) RequirementsPath() string {
	return c.resolve(c.Requirements)
}

// CloudInitDir holds the cloud-init vars files and generated configs
func (c *Config) CloudInitDir() string {
	return c.resolve(filepath.Join("files", "cloud-init"))
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.PlaybookDir, p)
}

// Locate picks the config file: an explicit path wins, otherwise FileName
// inside dir. The second result reports whether the file must exist.
func Locate(explicit, dir string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, FileName), false
}
