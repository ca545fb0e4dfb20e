package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	path := filepath.Join(t.TempDir(), "taskboard", "config.toml")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, filepath.Join("/data", "taskboard", "taskboard.db"), cfg.DBPath)

	_, err = os.Stat(path)
	require.NoError(t, err, "config file should be created")

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Theme = ThemeLight
	cfg.DefaultStatus = "pending"
	cfg.CleanupTitles = []string{"Excel sheet", "Presentation on AI"}

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = \"LIGHT\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, cfg.Theme)
	assert.Equal(t, Default().DBPath, cfg.DBPath)
	assert.Equal(t, "all", cfg.DefaultStatus)
}

func TestLoadUnknownThemeFallsBackToDark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = \"neon\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, cfg.Theme)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = = \n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	assert.Equal(t, filepath.Join("/cfg", "taskboard", "config.toml"), ResolveConfigPath())
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(path, Default()))

	got := make(chan Config, 16)
	w, err := Watch(path, func(c Config) {
		select {
		case got <- c:
		default:
		}
	}, nil)
	require.NoError(t, err)
	defer w.Close()

	cfg := Default()
	cfg.Theme = ThemeLight
	require.NoError(t, Save(path, cfg))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-got:
			if c.Theme == ThemeLight {
				return
			}
		case <-deadline:
			t.Fatal("watcher did not deliver the reloaded config")
		}
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, Save(path, Default()))

	got := make(chan Config, 16)
	w, err := Watch(path, func(c Config) { got <- c }, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o644))
	select {
	case <-got:
		t.Fatal("unexpected reload for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
	require.NoError(t, w.Close())
}
