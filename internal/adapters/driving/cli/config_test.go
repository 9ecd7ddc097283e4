package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_SetAndGet(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(t, "config", "set", "vcard.path", "/home/ada/cards", "--config-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "vcard.path = /home/ada/cards\n", out)

	out, err = executeCommand(t, "config", "get", "vcard.path", "--config-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "/home/ada/cards\n", out)
}

func TestConfigCmd_SetTypedValues(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(t, "config", "set", "google.page_size", "250", "--config-dir", dir)
	require.NoError(t, err)

	cfg, _ := newConfigAt(t, dir)
	assert.Equal(t, 250, cfg.GetInt("google.page_size"))
}

func TestConfigCmd_GetMissingKey(t *testing.T) {
	_, err := executeCommand(t, "config", "get", "nope", "--config-dir", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope" is not set`)
}

func TestConfigCmd_Path(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(t, "config", "path", "--config-dir", dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), strings.TrimSpace(out))
}

func TestConfigCmd_List(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(t, "config", "list", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No configuration set.")

	_, err = executeCommand(t, "config", "set", "store.type", "google", "--config-dir", dir)
	require.NoError(t, err)
	_, err = executeCommand(t, "config", "set", "google.client_secret", "hunter2", "--config-dir", dir)
	require.NoError(t, err)

	out, err = executeCommand(t, "config", "list", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "store.type = google")
	assert.Contains(t, out, "google.client_secret = ********")
	assert.NotContains(t, out, "hunter2")
}

func TestConfigCmd_RequiresArgs(t *testing.T) {
	_, err := executeCommand(t, "config", "set", "only-key", "--config-dir", t.TempDir())

	assert.Error(t, err)
}
