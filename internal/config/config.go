package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Source selects where crew records are read from.
type Source string

const (
	SourceFixture Source = "fixture"
	SourceSQLite  Source = "sqlite"
)

// Config captures crewdeck's runtime settings.
type Config struct {
	Source         Source
	FixturePath    string // empty serves the embedded demo data
	DBPath         string
	LogPath        string // empty disables logging
	LogLevel       string
	RefreshSeconds int
	DefaultScreen  string
}

const (
	defaultConfigPath     = "~/.config/crewdeck/config.toml"
	defaultDBPath         = "~/.local/share/crewdeck/crew.db"
	defaultLogLevel       = "info"
	defaultRefreshSeconds = 5
	defaultScreen         = "changes"
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Source:         SourceFixture,
		DBPath:         mustExpand(defaultDBPath),
		LogLevel:       defaultLogLevel,
		RefreshSeconds: defaultRefreshSeconds,
		DefaultScreen:  defaultScreen,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Source         string `toml:"source"`
		FixturePath    string `toml:"fixture_path"`
		DBPath         string `toml:"db_path"`
		LogPath        string `toml:"log_path"`
		LogLevel       string `toml:"log_level"`
		RefreshSeconds int    `toml:"refresh_seconds"`
		DefaultScreen  string `toml:"default_screen"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	switch source := Source(strings.ToLower(strings.TrimSpace(raw.Source))); source {
	case "":
	case SourceFixture, SourceSQLite:
		cfg.Source = source
	default:
		return Config{}, fmt.Errorf("parse config: unknown source %q", raw.Source)
	}

	if p := strings.TrimSpace(raw.FixturePath); p != "" {
		cfg.FixturePath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.DBPath); p != "" {
		cfg.DBPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.LogPath); p != "" {
		cfg.LogPath = mustExpand(p)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if raw.RefreshSeconds > 0 {
		cfg.RefreshSeconds = raw.RefreshSeconds
	}
	if screen := strings.TrimSpace(raw.DefaultScreen); screen != "" {
		cfg.DefaultScreen = screen
	}

	return cfg, nil
}

// SourceLabel describes where records come from, for the header and logs.
func (c Config) SourceLabel() string {
	switch c.Source {
	case SourceSQLite:
		return "sqlite " + c.DBPath
	default:
		if strings.TrimSpace(c.FixturePath) == "" {
			return "demo data"
		}
		return "fixture " + c.FixturePath
	}
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
