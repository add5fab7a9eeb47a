package app

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/five82/crewdeck/internal/config"
	"github.com/five82/crewdeck/internal/crew"
	"github.com/five82/crewdeck/internal/datatable"
	"github.com/five82/crewdeck/internal/screens"
	"github.com/five82/crewdeck/internal/ui"
)

// TableOptions describe one non-interactive table render.
type TableOptions struct {
	ConfigPath string
	Screen     string
	Search     string
	Facets     []string // key=value, repeatable
	Sort       string   // key or key:asc / key:desc
	Hide       []string // column keys
	Now        func() time.Time
}

// Print loads the dataset once and writes the filtered, sorted view of one
// screen to w as a plain text table.
func Print(ctx context.Context, w io.Writer, opts TableOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	s, err := screens.Lookup(screens.All(opts.Now), firstNonEmpty(opts.Screen, cfg.DefaultScreen))
	if err != nil {
		return err
	}

	repo, closeRepo, err := OpenRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeRepo() }()

	ds, err := crew.Load(ctx, repo)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	s.SetData(ds)

	if err := applyTableOptions(s, opts); err != nil {
		return err
	}
	return ui.RenderPlain(w, s.View())
}

// applyTableOptions maps command line flags onto a screen.
func applyTableOptions(s screens.Screen, opts TableOptions) error {
	for _, key := range opts.Hide {
		key = strings.TrimSpace(key)
		cols := s.Columns()
		idx := slices.IndexFunc(cols, func(c datatable.ColumnInfo) bool { return c.Key == key })
		if idx < 0 {
			return fmt.Errorf("%w: %s", screens.ErrUnknownColumn, key)
		}
		if cols[idx].Visible {
			if err := s.ToggleColumn(key); err != nil {
				return err
			}
		}
	}

	facetKeys := make([]string, 0)
	for _, f := range s.Facets() {
		facetKeys = append(facetKeys, f.Key)
	}
	for _, raw := range opts.Facets {
		facet, value, ok := strings.Cut(raw, "=")
		facet, value = strings.TrimSpace(facet), strings.TrimSpace(value)
		if !ok || facet == "" || value == "" {
			return fmt.Errorf("facet %q: want key=value", raw)
		}
		if !slices.Contains(facetKeys, facet) {
			return fmt.Errorf("unknown facet %q for %s (have %s)", facet, s.ID(), strings.Join(facetKeys, ", "))
		}
		if !s.FilterState().IsSelected(facet, value) {
			s.ToggleFacet(facet, value)
		}
	}

	s.SetQuery(opts.Search)

	if strings.TrimSpace(opts.Sort) != "" {
		cfg, err := ParseSort(opts.Sort)
		if err != nil {
			return err
		}
		if err := s.SetSort(cfg); err != nil {
			return err
		}
	}
	return nil
}

// ParseSort reads "key", "key:asc" or "key:desc".
func ParseSort(raw string) (datatable.SortConfig, error) {
	key, dir, _ := strings.Cut(strings.TrimSpace(raw), ":")
	cfg := datatable.SortConfig{Key: strings.TrimSpace(key)}
	if cfg.Key == "" {
		return datatable.NoSort, fmt.Errorf("sort %q: missing column", raw)
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
		cfg.Direction = datatable.Asc
	case "desc":
		cfg.Direction = datatable.Desc
	default:
		return datatable.NoSort, fmt.Errorf("sort %q: direction must be asc or desc", raw)
	}
	return cfg, nil
}

// ListScreens writes the id and title of every screen.
func ListScreens(w io.Writer) error {
	for _, s := range screens.All(nil) {
		if _, err := fmt.Fprintf(w, "%-10s %s\n", s.ID(), s.Title()); err != nil {
			return err
		}
	}
	return nil
}
