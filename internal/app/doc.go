// Package app provides the orchestration layer for crewdeck.
//
// # Overview
//
// This package wires together configuration, logging, the record repository,
// state management and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Entry points
//
//   - Run: the interactive TUI
//   - Print: load once and write one screen as a plain table
//   - Import: seed a SQLite database from a YAML fixture
//   - ListScreens: write the available screen ids
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read ~/.config/crewdeck/config.toml
//	       ├─────> logging.New()        JSON log file (or no-op)
//	       ├─────> OpenRepository()     fixture or sqlite
//	       ├─────> state.Store{}        Shared state container
//	       ├─────> refresh()            Initial load
//	       ├─────> fixture.Watch()      Reload on fixture edits (fixture_path only)
//	       ├─────> StartPoller()        Background reloads
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> wait interval, backoff or trigger  │
//	│  ├─> crew.Load()  (collections in       │
//	│  │               parallel)              │
//	│  └─> store.Update()                     │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller reloads every collection at the configured interval (default
// 5 seconds, refresh_seconds in the config, --poll on the command line).
// After a failed load the wait doubles per consecutive failure up to 30
// seconds and resets on the next success. A failed load keeps the previous
// dataset in the store; the UI marks the data stale after two failures.
// When a fixture file is configured, a write to it refreshes at once
// instead of waiting out the interval.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - Log file cannot be created
//   - SQLite database cannot be opened or migrated
//
// Recoverable errors (logged as warnings, polling continues):
//   - Repository load failures
//   - Preference save failures
//   - Fixture watcher setup failures (polling still picks up edits)
package app
