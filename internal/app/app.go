package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/crewdeck/internal/config"
	"github.com/five82/crewdeck/internal/crew"
	"github.com/five82/crewdeck/internal/fixture"
	"github.com/five82/crewdeck/internal/logging"
	"github.com/five82/crewdeck/internal/prefs"
	"github.com/five82/crewdeck/internal/screens"
	"github.com/five82/crewdeck/internal/sqlite"
	"github.com/five82/crewdeck/internal/state"
	"github.com/five82/crewdeck/internal/ui"
)

// Options configure the crewdeck TUI.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/crewdeck/prefs.toml
	PollEvery  int    // seconds; zero uses the configured refresh interval
	Screen     string // initial screen; empty uses the last one or the configured default
}

// Run boots the crewdeck TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	boards := screens.All(time.Now)
	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed", zap.Error(err))
	}
	userPrefs = userPrefs.Normalize(ui.ThemeNames(), screens.IDs(boards))

	repo, closeRepo, err := OpenRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeRepo() }()

	interval := time.Duration(cfg.RefreshSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	logger.Info("starting",
		zap.String("source", cfg.SourceLabel()),
		zap.Duration("refresh", interval),
	)

	store := &state.Store{}

	// Populate the store before the first frame so the UI opens on data.
	_ = refresh(ctx, store, repo, logger)

	pollCtx, cancel := context.WithCancel(ctx)
	var trigger <-chan struct{}
	if cfg.Source == config.SourceFixture && cfg.FixturePath != "" {
		w, err := fixture.Watch(pollCtx, cfg.FixturePath, fixture.DefaultDebounce, logger)
		if err != nil {
			logger.Warn("fixture watch disabled", zap.String("path", cfg.FixturePath), zap.Error(err))
		} else {
			trigger = w.Changes()
			defer func() { <-w.Done() }()
		}
	}
	done := StartPoller(pollCtx, store, repo, interval, trigger, logger)
	defer func() {
		cancel()
		<-done
	}()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Screens:   boards,
		Source:    cfg.SourceLabel(),
		Screen:    firstNonEmpty(opts.Screen, userPrefs.LastScreen, cfg.DefaultScreen),
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
		LogPath:   cfg.LogPath,
		Logger:    logger,
	})
}

// OpenRepository builds the repository selected by cfg. The returned close
// function releases any underlying database.
func OpenRepository(ctx context.Context, cfg config.Config) (crew.Repository, func() error, error) {
	switch cfg.Source {
	case config.SourceSQLite:
		db, err := openDB(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewRepository(db), db.Close, nil
	default:
		return fixture.NewRepository(cfg.FixturePath), func() error { return nil }, nil
	}
}

func openDB(ctx context.Context, path string) (*sqlite.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
