// Package fixture reads crew records from a YAML document. An embedded demo
// document is used when no path is configured.
package fixture

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/five82/crewdeck/internal/crew"
)

//go:embed demo.yaml
var demoYAML []byte

// document is the on-disk layout.
type document struct {
	Vessels     []crew.Vessel     `yaml:"vessels"`
	Seafarers   []crew.Seafarer   `yaml:"seafarers"`
	Contracts   []crew.Contract   `yaml:"contracts"`
	CrewChanges []crew.CrewChange `yaml:"crew_changes"`
	Cases       []crew.Case       `yaml:"cases"`
}

// Decode parses a fixture document. Records without an ID get one derived
// from their collection and content, so re-reading an edited file keeps the
// keys of unchanged records.
func Decode(r io.Reader) (crew.Dataset, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return crew.Dataset{}, fmt.Errorf("parse fixture: %w", err)
	}

	for i := range doc.Seafarers {
		doc.Seafarers[i].Status = crew.SeafarerStatus(strings.ToUpper(string(doc.Seafarers[i].Status)))
	}
	for i := range doc.CrewChanges {
		doc.CrewChanges[i].Status = crew.ChangeStatus(strings.ToUpper(string(doc.CrewChanges[i].Status)))
	}
	for i := range doc.Cases {
		doc.Cases[i].Status = crew.CaseStatus(strings.ToUpper(string(doc.Cases[i].Status)))
	}

	assignIDs("vessels", doc.Vessels, func(v *crew.Vessel) *string { return &v.ID })
	assignIDs("seafarers", doc.Seafarers, func(s *crew.Seafarer) *string { return &s.ID })
	assignIDs("contracts", doc.Contracts, func(c *crew.Contract) *string { return &c.ID })
	assignIDs("crew_changes", doc.CrewChanges, func(c *crew.CrewChange) *string { return &c.ID })
	assignIDs("cases", doc.Cases, func(c *crew.Case) *string { return &c.ID })

	return crew.Dataset{
		Vessels:     doc.Vessels,
		Seafarers:   doc.Seafarers,
		Contracts:   doc.Contracts,
		CrewChanges: doc.CrewChanges,
		Cases:       doc.Cases,
	}, nil
}

// Encode writes ds as a fixture document.
func Encode(w io.Writer, ds crew.Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := document{
		Vessels:     ds.Vessels,
		Seafarers:   ds.Seafarers,
		Contracts:   ds.Contracts,
		CrewChanges: ds.CrewChanges,
		Cases:       ds.Cases,
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	return enc.Close()
}

// Demo returns the embedded demo dataset.
func Demo() (crew.Dataset, error) {
	return Decode(bytes.NewReader(demoYAML))
}

// idSpace namespaces the name-based UUIDs given to records without an ID.
var idSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("crewdeck/fixture"))

// assignIDs fills blank IDs with a UUID named by the collection and the
// record's encoded content. Identical blank records are told apart by their
// occurrence count.
func assignIDs[T any](collection string, items []T, id func(*T) *string) {
	seen := make(map[string]int)
	for i := range items {
		field := id(&items[i])
		if strings.TrimSpace(*field) != "" {
			continue
		}
		*field = ""
		content, err := yaml.Marshal(items[i])
		if err != nil {
			content = fmt.Appendf(nil, "%+v", items[i])
		}
		name := collection + "\x00" + string(content)
		n := seen[name]
		seen[name]++
		*field = uuid.NewSHA1(idSpace, fmt.Appendf(nil, "%s\x00%d", name, n)).String()
	}
}

// Repository serves a fixture file, re-reading it only when its modification
// time or size changes. An empty path serves the embedded demo data.
type Repository struct {
	path string

	mu      sync.Mutex
	cached  crew.Dataset
	modTime time.Time
	size    int64
	loaded  bool
}

var _ crew.Repository = (*Repository)(nil)

// NewRepository creates a repository for path.
func NewRepository(path string) *Repository {
	return &Repository{path: strings.TrimSpace(path)}
}

// Path returns the fixture path, empty for the embedded demo.
func (r *Repository) Path() string { return r.path }

func (r *Repository) snapshot(ctx context.Context) (crew.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return crew.Dataset{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path == "" {
		if !r.loaded {
			ds, err := Demo()
			if err != nil {
				return crew.Dataset{}, err
			}
			r.cached, r.loaded = ds, true
		}
		return r.cached.Clone(), nil
	}

	info, err := os.Stat(r.path)
	if err != nil {
		return crew.Dataset{}, fmt.Errorf("stat fixture: %w", err)
	}
	if r.loaded && info.ModTime().Equal(r.modTime) && info.Size() == r.size {
		return r.cached.Clone(), nil
	}

	file, err := os.Open(r.path)
	if err != nil {
		return crew.Dataset{}, fmt.Errorf("open fixture: %w", err)
	}
	defer func() { _ = file.Close() }()

	ds, err := Decode(file)
	if err != nil {
		return crew.Dataset{}, err
	}
	r.cached, r.modTime, r.size, r.loaded = ds, info.ModTime(), info.Size(), true
	return ds.Clone(), nil
}

func (r *Repository) Vessels(ctx context.Context) ([]crew.Vessel, error) {
	ds, err := r.snapshot(ctx)
	return ds.Vessels, err
}

func (r *Repository) Seafarers(ctx context.Context) ([]crew.Seafarer, error) {
	ds, err := r.snapshot(ctx)
	return ds.Seafarers, err
}

func (r *Repository) Contracts(ctx context.Context) ([]crew.Contract, error) {
	ds, err := r.snapshot(ctx)
	return ds.Contracts, err
}

func (r *Repository) CrewChanges(ctx context.Context) ([]crew.CrewChange, error) {
	ds, err := r.snapshot(ctx)
	return ds.CrewChanges, err
}

func (r *Repository) Cases(ctx context.Context) ([]crew.Case, error) {
	ds, err := r.snapshot(ctx)
	return ds.Cases, err
}
