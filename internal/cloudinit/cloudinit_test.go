package cloudinit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hemantobora/auto-provision/internal/engine"
	"github.com/hemantobora/auto-provision/internal/prompts"
	"github.com/hemantobora/auto-provision/internal/ui"
)

// captureRunner records the command and, for custom runs, the vars file
// content while it still exists
type captureRunner struct {
	code     int
	commands []engine.Command
	varsSeen []byte
	varsPath string
}

func (r *captureRunner) Run(_ context.Context, c engine.Command) (int, error) {
	r.commands = append(r.commands, c)
	if r.varsPath != "" {
		r.varsSeen, _ = os.ReadFile(r.varsPath)
	}
	return r.code, nil
}

func newGenerator(t *testing.T, runner engine.Runner) (*Generator, string) {
	t.Helper()
	ui.DisableColor()
	dir := t.TempDir()
	var out bytes.Buffer
	return &Generator{
		Runner:      runner,
		Binary:      "ansible-playbook",
		Playbook:    "site.yml",
		PlaybookDir: dir,
		Console:     ui.NewConsoleWithWriters(&out, &out),
	}, dir
}

func TestParseVariant(t *testing.T) {
	v, ok := ParseVariant(" Dev ")
	assert.True(t, ok)
	assert.Equal(t, Dev, v)

	v, ok = ParseVariant("huge")
	assert.False(t, ok)
	assert.Equal(t, Minimal, v)
}

func TestParseDevEnvs(t *testing.T) {
	assert.Equal(t, AllDevEnvs, ParseDevEnvs("all"))
	assert.Equal(t, AllDevEnvs, ParseDevEnvs(""))
	assert.Equal(t, []string{"python", "go"}, ParseDevEnvs("python, ,go"))
}

func TestPromptCustom(t *testing.T) {
	p := prompts.NewScripted("y", "n", "go,lua", "")

	vars, err := PromptCustom(p)

	require.NoError(t, err)
	assert.Equal(t, CustomVars{EnableGUI: true, DevEnvs: []string{"go", "lua"}, HardenLevel: "standard"}, vars)
}

func TestGeneratePredefinedVariant(t *testing.T) {
	runner := &captureRunner{}
	g, dir := newGenerator(t, runner)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, Dir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, Dir, "dev.yml"), []byte("---\n"), 0o644))

	out, err := g.Generate(context.Background(), Dev, nil)

	require.NoError(t, err)
	assert.Equal(t, "files/cloud-init/cloud-config-dev.yaml", out)
	require.Len(t, runner.commands, 1)
	assert.Equal(t, []string{
		"-i", "localhost,", "site.yml", "--tags", "cloud-init", "--connection", "local",
		"--extra-vars", "cloud_init_path=files/cloud-init/cloud-config-dev.yaml",
		"--extra-vars", "@files/cloud-init/dev.yml",
	}, runner.commands[0].Args)
	assert.NotContains(t, runner.commands[0].Args, "--batch")
	assert.Equal(t, dir, runner.commands[0].Dir)
	assert.NotNil(t, runner.commands[0].Stdout)
}

func TestGenerateMissingVarsFile(t *testing.T) {
	runner := &captureRunner{}
	g, _ := newGenerator(t, runner)

	_, err := g.Generate(context.Background(), Full, nil)

	assert.Error(t, err)
	assert.Empty(t, runner.commands)
}

func TestGenerateCustomWritesAndRemovesVars(t *testing.T) {
	runner := &captureRunner{}
	g, dir := newGenerator(t, runner)
	runner.varsPath = filepath.Join(dir, Dir, "cloud-config-custom-vars.yml")
	vars := &CustomVars{EnableNixGUI: true, DevEnvs: []string{"python"}, HardenLevel: "full"}

	out, err := g.Generate(context.Background(), Custom, vars)

	require.NoError(t, err)
	assert.Equal(t, "files/cloud-init/cloud-config-custom.yaml", out)

	var seen CustomVars
	require.NoError(t, yaml.Unmarshal(runner.varsSeen, &seen))
	assert.Equal(t, *vars, seen)

	_, statErr := os.Stat(runner.varsPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateFailure(t *testing.T) {
	runner := &captureRunner{code: 2}
	g, dir := newGenerator(t, runner)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, Dir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, Dir, "minimal.yml"), []byte("---\n"), 0o644))

	_, err := g.Generate(context.Background(), Minimal, nil)

	assert.Error(t, err)
}
