// Package prefs persists the UI state crewdeck restores on the next start:
// the theme and the screen that was open. They live in
// ~/.config/crewdeck/prefs.toml, separate from the hand-edited config.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/crewdeck/internal/config"
)

// Prefs holds the persisted UI state.
type Prefs struct {
	Theme      string `toml:"theme"`
	LastScreen string `toml:"last_screen"`
}

const (
	defaultPrefsPath = "~/.config/crewdeck/prefs.toml"
	defaultTheme     = "Dracula"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences used when nothing is stored.
func Default() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from path. A missing file is not an error. An
// unreadable or malformed file is reported, but Load still returns usable
// defaults so the caller can log and carry on.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse prefs %s: %w", resolved, err)
	}

	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastScreen = strings.TrimSpace(p.LastScreen)
	return p, nil
}

// Normalize matches the stored names case-insensitively against what the
// running build offers. An unknown theme falls back to the default and an
// unknown screen is dropped, so a renamed screen never blocks startup.
func (p Prefs) Normalize(themes, screens []string) Prefs {
	p.Theme = canonical(p.Theme, themes)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastScreen = canonical(p.LastScreen, screens)
	return p
}

func canonical(name string, known []string) string {
	name = strings.TrimSpace(name)
	for _, k := range known {
		if strings.EqualFold(k, name) {
			return k
		}
	}
	return ""
}

// Save writes preferences to path, creating directories as needed. The file
// is replaced atomically so a quit mid-write never leaves it truncated.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve prefs path: %w", err)
	}
	return resolved, nil
}
