package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "taskboard"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskboard.db"
	DefaultLogName        = "taskboard.log"
)

// Themes
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Config struct {
	DBPath        string   `toml:"db_path"`
	LogPath       string   `toml:"log_path"`
	LogLevel      string   `toml:"log_level"`
	Theme         string   `toml:"theme"`
	DefaultStatus string   `toml:"default_status"`
	CleanupTitles []string `toml:"cleanup_titles,omitempty"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/taskboard/config.toml, falling
// back to ~/.config
func ResolveConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// DataDir returns $XDG_DATA_HOME/taskboard, falling back to ~/.local/share
func DataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share")
		}
	}
	return filepath.Join(dir, AppName)
}

func Default() Config {
	data := DataDir()
	return Config{
		DBPath:        filepath.Join(data, DefaultDBName),
		LogPath:       filepath.Join(data, DefaultLogName),
		LogLevel:      "info",
		Theme:         ThemeDark,
		DefaultStatus: "all",
	}
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist yet
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) normalize() {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme != ThemeLight {
		c.Theme = ThemeDark
	}
	c.DefaultStatus = strings.ToLower(strings.TrimSpace(c.DefaultStatus))
	if c.DefaultStatus == "" {
		c.DefaultStatus = def.DefaultStatus
	}
}
