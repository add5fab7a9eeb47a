// Package config loads crewdeck's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/crewdeck/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	source = "fixture"            # or "sqlite"
//	fixture_path = "~/crew.yaml"  # empty serves the embedded demo data
//	db_path = "~/.local/share/crewdeck/crew.db"
//	log_path = "~/.local/state/crewdeck/crewdeck.log"
//	log_level = "info"
//	refresh_seconds = 5
//	default_screen = "changes"
//
// Every field is optional. Tilde expansion is performed on paths.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, TOML
// parse errors and unknown sources. A missing config file is NOT an error.
package config
