package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/five82/crewdeck/internal/config"
	"github.com/five82/crewdeck/internal/crew"
	"github.com/five82/crewdeck/internal/fixture"
	"github.com/five82/crewdeck/internal/sqlite"
)

// ImportOptions select the fixture to read and the database to seed.
type ImportOptions struct {
	ConfigPath string
	From       string // fixture path; empty imports the embedded demo data
	DB         string // database path; empty uses the configured db_path
}

// Import replaces the contents of a SQLite database with a fixture document.
func Import(ctx context.Context, w io.Writer, opts ImportOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ds, err := crew.Load(ctx, fixture.NewRepository(opts.From))
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	dbPath := cfg.DBPath
	if p := strings.TrimSpace(opts.DB); p != "" {
		if dbPath, err = config.ExpandPath(p); err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
	}

	db, err := openDB(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := sqlite.NewRepository(db).Import(ctx, ds); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	total := 0
	for _, n := range ds.Counts() {
		total += n
	}
	_, err = fmt.Fprintf(w, "imported %s records (%d vessels, %d seafarers, %d contracts, %d crew changes, %d cases) into %s\n",
		humanize.Comma(int64(total)),
		len(ds.Vessels), len(ds.Seafarers), len(ds.Contracts), len(ds.CrewChanges), len(ds.Cases),
		dbPath,
	)
	return err
}
