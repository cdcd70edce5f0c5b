package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadSettingsMissingFile(t *testing.T) {
	withHome(t)

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, settings)
}

func TestLoadSettings(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".cradle")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{
		"subject": "~/bin/deno",
		"fixtures_dir": "/srv/fixtures",
		"env": {"NO_COLOR": "1"},
		"parallelism": 4
	}`), 0644))

	settings, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "bin", "deno"), settings.Subject)
	assert.Equal(t, "/srv/fixtures", settings.FixturesDir)
	assert.Equal(t, "1", settings.Env["NO_COLOR"])
	require.NotNil(t, settings.Parallelism)
	assert.Equal(t, 4, *settings.Parallelism)
}

func TestLoadSettingsRejectsMalformedJSON(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".cradle")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{`), 0644))

	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home := withHome(t)

	assert.Equal(t, "", expandPath(""))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
	assert.Equal(t, home, expandPath("~"))
	assert.Equal(t, filepath.Join(home, "x"), expandPath("~/x"))
}
