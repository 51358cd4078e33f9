// Package cloudinit renders cloud-config user data by running the playbook's
// cloud-init role locally with variant-specific variables.
package cloudinit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hemantobora/auto-provision/internal/engine"
	"github.com/hemantobora/auto-provision/internal/prompts"
	"github.com/hemantobora/auto-provision/internal/ui"
)

// Variant names a predefined vars file, or Custom for operator-chosen values
type Variant string

const (
	Minimal Variant = "minimal"
	Dev     Variant = "dev"
	Full    Variant = "full"
	Custom  Variant = "custom"
)

// Dir is where vars files live and generated configs are written, relative to the playbook dir
const Dir = "files/cloud-init"

const tag = "cloud-init"

// VariantInfo pairs a variant with its menu description
type VariantInfo struct {
	Variant     Variant
	Description string
}

var Variants = []VariantInfo{
	{Minimal, "Basic setup (essentials only)"},
	{Dev, "Dev setup (+ dev-envs, fonts, terminals)"},
	{Full, "Full setup (+ GUI, Nix GUI)"},
	{Custom, "Custom selection"},
}

// AllDevEnvs is what "all" expands to in the custom prompts
var AllDevEnvs = []string{"python", "js", "go", "lua"}

var hardenLevels = []string{"basic", "standard", "full"}

// ParseVariant reports false for unknown names, returning Minimal
func ParseVariant(s string) (Variant, bool) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, info := range Variants {
		if info.Variant == v {
			return v, true
		}
	}
	return Minimal, false
}

// CustomVars is written as the extra-vars file for the custom variant
type CustomVars struct {
	EnableGUI    bool     `yaml:"enable_gui"`
	EnableNixGUI bool     `yaml:"enable_nix_gui"`
	DevEnvs      []string `yaml:"dev_envs"`
	HardenLevel  string   `yaml:"harden_level"`
}

// ParseDevEnvs splits a comma list; "all" or blank selects every environment
func ParseDevEnvs(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return append([]string(nil), AllDevEnvs...)
	}
	var envs []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			envs = append(envs, part)
		}
	}
	return envs
}

// PromptCustom asks for the custom variant's values
func PromptCustom(p prompts.Prompter) (CustomVars, error) {
	var vars CustomVars
	var err error
	if vars.EnableGUI, err = p.Confirm("Enable GUI apps (VSCode, etc.)?", false); err != nil {
		return vars, err
	}
	if vars.EnableNixGUI, err = p.Confirm("Enable Nix GUI apps?", false); err != nil {
		return vars, err
	}
	envs, err := p.Input("Dev environments (comma-separated: python,js,go,lua or 'all'):", "all", "", nil)
	if err != nil {
		return vars, err
	}
	vars.DevEnvs = ParseDevEnvs(envs)
	if vars.HardenLevel, err = p.Select("Harden level:", hardenLevels, "standard"); err != nil {
		return vars, err
	}
	return vars, nil
}

// Generator runs the engine against localhost with the cloud-init tag only
type Generator struct {
	Runner      engine.Runner
	Binary      string
	Playbook    string
	PlaybookDir string
	Console     *ui.Console
}

// OutputPath returns the generated file for v, relative to the playbook dir
func OutputPath(v Variant) string {
	return filepath.Join(Dir, fmt.Sprintf("cloud-config-%s.yaml", v))
}

func varsPath(v Variant) string {
	if v == Custom {
		return filepath.Join(Dir, "cloud-config-custom-vars.yml")
	}
	return filepath.Join(Dir, string(v)+".yml")
}

// Args returns the engine arguments for one generation. The output path and
// the vars file go in separate --extra-vars flags; a single value cannot mix
// key=value pairs with an @file reference.
func (g *Generator) Args(varsFile, output string) []string {
	return []string{
		"-i", "localhost,",
		g.Playbook,
		"--tags", tag,
		"--connection", "local",
		"--extra-vars", "cloud_init_path=" + output,
		"--extra-vars", "@" + varsFile,
	}
}

// Generate renders the cloud-config for v and returns its path relative to
// the playbook dir. custom is required for the Custom variant; its vars file
// is removed once the engine finishes.
func (g *Generator) Generate(ctx context.Context, v Variant, custom *CustomVars) (string, error) {
	vars := varsPath(v)
	abs := filepath.Join(g.PlaybookDir, vars)

	if v == Custom {
		if custom == nil {
			return "", errors.New("custom variant requires values")
		}
		if err := writeVars(abs, custom); err != nil {
			return "", err
		}
		defer os.Remove(abs)
	} else if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("vars file for variant %s not found: %s", v, abs)
	}

	output := OutputPath(v)
	g.Console.Infof("Generating %s config...", v)

	var buf bytes.Buffer
	code, err := g.Runner.Run(ctx, engine.Command{
		Name:   g.Binary,
		Args:   g.Args(vars, output),
		Dir:    g.PlaybookDir,
		Stdout: &buf,
		Stderr: &buf,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w", g.Binary, err)
	}
	if code != 0 {
		g.Console.Errorf("Failed to generate %s: %s", v, strings.TrimSpace(buf.String()))
		return "", fmt.Errorf("%s exited with code %d", g.Binary, code)
	}
	g.Console.Successf("Generated %s", output)
	return output, nil
}

func writeVars(path string, vars *CustomVars) error {
	data, err := yaml.Marshal(vars)
	if err != nil {
		return fmt.Errorf("failed to encode custom vars: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, append([]byte("---\n"), data...), 0o644)
}
