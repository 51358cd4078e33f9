package target

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemantobora/auto-provision/internal/models"
	"github.com/hemantobora/auto-provision/internal/prompts"
)

func writeKey(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "id_test")
	require.NoError(t, os.WriteFile(path, []byte("key"), 0o600))
	return path
}

func TestLocal(t *testing.T) {
	d := Local()
	assert.False(t, d.IsRemote())
	assert.Equal(t, "localhost", d.Alias())
	assert.False(t, d.NeedsPassword())
}

func TestRemotePromptsInOrder(t *testing.T) {
	key := writeKey(t)
	p := prompts.NewScripted("10.0.0.5", "ubuntu", "", key)
	c := &Collector{Prompter: p}

	d, err := c.Remote(Preset{})

	require.NoError(t, err)
	assert.Equal(t, models.RemoteTarget("10.0.0.5", "ubuntu", 22, key), d)
	require.Len(t, p.Asked, 4)
	assert.Contains(t, p.Asked[0], "Hostname")
	assert.Contains(t, p.Asked[1], "Username")
	assert.Contains(t, p.Asked[2], "Port")
	assert.Contains(t, p.Asked[3], "Private Key")
	assert.Equal(t, "remote-server-10-0-0-5", d.Alias())
	assert.False(t, d.NeedsPassword())
}

func TestRemoteRepromptsInvalidAnswers(t *testing.T) {
	p := prompts.NewScripted("", "bad host", "web-1.example.com", "", "deploy", "70000", "abc", "2222", "")
	c := &Collector{Prompter: p}

	d, err := c.Remote(Preset{})

	require.NoError(t, err)
	assert.Equal(t, "web-1.example.com", d.Host)
	assert.Equal(t, "deploy", d.User)
	assert.Equal(t, 2222, d.Port)
	assert.Empty(t, d.KeyPath)
	assert.True(t, d.NeedsPassword())
	assert.Len(t, p.Rejected, 5)
}

func TestRemoteMissingKey(t *testing.T) {
	p := prompts.NewScripted("host", "root", "22", "/missing/key")
	c := &Collector{Prompter: p}

	_, err := c.Remote(Preset{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrCredentialNotFound))
	var cerr *models.CredentialNotFoundError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "/missing/key", cerr.Path)
}

func TestRemotePresetSkipsPrompts(t *testing.T) {
	key := writeKey(t)
	p := prompts.NewScripted()
	c := &Collector{Prompter: p}

	d, err := c.Remote(Preset{Host: "2001:db8::1", User: "admin", Port: 2200, KeyPath: key, KeySet: true})

	require.NoError(t, err)
	assert.Empty(t, p.Asked)
	assert.Equal(t, "remote-server-2001-db8--1", d.Alias())
	assert.Equal(t, 2200, d.Port)
}

func TestRemotePresetValidation(t *testing.T) {
	c := &Collector{Prompter: prompts.NewScripted()}

	_, err := c.Remote(Preset{Host: "a b", User: "x", Port: 22, KeySet: true})
	var verr *models.InputValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "host", verr.InputType)

	_, err = c.Remote(Preset{Host: "h", User: "x", Port: 99999, KeySet: true})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "port", verr.InputType)
}

func TestRemoteUsesSSHConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "id_box")
	require.NoError(t, os.WriteFile(key, []byte("key"), 0o600))
	cfgPath := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(cfgPath, []byte("Host box\n  User builder\n  Port 2022\n  IdentityFile "+key+"\n"), 0o600))

	ssh, err := LoadSSHConfig(cfgPath)
	require.NoError(t, err)
	p := prompts.NewScripted("box", "", "", "")
	c := &Collector{Prompter: p, SSH: ssh}

	d, err := c.Remote(Preset{})

	require.NoError(t, err)
	assert.Equal(t, models.RemoteTarget("box", "builder", 2022, key), d)
}

func TestRemoteWildcardIdentityFileIsNotOffered(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "id_all")
	require.NoError(t, os.WriteFile(key, []byte("key"), 0o600))
	cfgPath := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(cfgPath, []byte("Host *\n  User everyone\n  IdentityFile "+key+"\n"), 0o600))

	ssh, err := LoadSSHConfig(cfgPath)
	require.NoError(t, err)
	p := prompts.NewScripted("10.0.0.7", "", "", "")
	c := &Collector{Prompter: p, SSH: ssh}

	d, err := c.Remote(Preset{})

	require.NoError(t, err)
	assert.Equal(t, "everyone", d.User)
	assert.Empty(t, d.KeyPath)
	assert.True(t, d.NeedsPassword())
	assert.Contains(t, p.Asked[3], "leave blank if using password")
}

func TestRemoteNoneOverridesConfiguredKey(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "id_box")
	require.NoError(t, os.WriteFile(key, []byte("key"), 0o600))
	cfgPath := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(cfgPath, []byte("Host box\n  IdentityFile "+key+"\n"), 0o600))

	ssh, err := LoadSSHConfig(cfgPath)
	require.NoError(t, err)
	p := prompts.NewScripted("box", "ops", "", "none")
	c := &Collector{Prompter: p, SSH: ssh}

	d, err := c.Remote(Preset{})

	require.NoError(t, err)
	assert.Empty(t, d.KeyPath)
	assert.True(t, d.NeedsPassword())
	assert.Contains(t, p.Asked[3], "enter 'none' to use a password")
}

func TestIsPasswordAnswer(t *testing.T) {
	assert.True(t, IsPasswordAnswer(" None "))
	assert.True(t, IsPasswordAnswer("-"))
	assert.False(t, IsPasswordAnswer(""))
	assert.False(t, IsPasswordAnswer("~/.ssh/id_rsa"))
}

func TestLoadSSHConfigMissingFile(t *testing.T) {
	cfg, err := LoadSSHConfig(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Equal(t, HostDefaults{}, cfg.Lookup("anything"))
}

func TestResolveKeyPath(t *testing.T) {
	path, err := ResolveKeyPath("  ")
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = ResolveKeyPath(t.TempDir())
	assert.ErrorIs(t, err, models.ErrCredentialNotFound)

	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "k"), []byte("x"), 0o600))
	path, err = ResolveKeyPath("~/k")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "k"), path)
}

func TestParsePort(t *testing.T) {
	port, err := ParsePort("")
	require.NoError(t, err)
	assert.Equal(t, 22, port)

	for _, bad := range []string{"0", "65536", "ssh"} {
		_, err := ParsePort(bad)
		assert.Error(t, err, bad)
	}
}
