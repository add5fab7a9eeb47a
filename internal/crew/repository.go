package crew

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Repository supplies crew records. Implementations return fresh slices the
// caller may keep.
type Repository interface {
	Vessels(ctx context.Context) ([]Vessel, error)
	Seafarers(ctx context.Context) ([]Seafarer, error)
	Contracts(ctx context.Context) ([]Contract, error)
	CrewChanges(ctx context.Context) ([]CrewChange, error)
	Cases(ctx context.Context) ([]Case, error)
}

// Load fetches every collection concurrently. Any failure fails the load and
// cancels the remaining fetches.
func Load(ctx context.Context, repo Repository) (Dataset, error) {
	if repo == nil {
		return Dataset{}, fmt.Errorf("repository is nil")
	}
	var ds Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ds.Vessels, err = wrap("vessels", repo.Vessels)(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.Seafarers, err = wrap("seafarers", repo.Seafarers)(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.Contracts, err = wrap("contracts", repo.Contracts)(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.CrewChanges, err = wrap("crew changes", repo.CrewChanges)(gctx)
		return err
	})
	g.Go(func() (err error) {
		ds.Cases, err = wrap("cases", repo.Cases)(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func wrap[T any](name string, fetch func(context.Context) ([]T, error)) func(context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		items, err := fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}
		return items, nil
	}
}

// MemoryRepository serves a fixed dataset. It is safe for concurrent reads.
type MemoryRepository struct {
	data Dataset
}

// NewMemoryRepository copies ds into a new repository.
func NewMemoryRepository(ds Dataset) *MemoryRepository {
	return &MemoryRepository{data: ds.Clone()}
}

var _ Repository = (*MemoryRepository)(nil)

func (m *MemoryRepository) Vessels(ctx context.Context) ([]Vessel, error) {
	return serve(ctx, m.data.Vessels)
}

func (m *MemoryRepository) Seafarers(ctx context.Context) ([]Seafarer, error) {
	return serve(ctx, m.data.Seafarers)
}

func (m *MemoryRepository) Contracts(ctx context.Context) ([]Contract, error) {
	return serve(ctx, m.data.Contracts)
}

func (m *MemoryRepository) CrewChanges(ctx context.Context) ([]CrewChange, error) {
	return serve(ctx, m.data.CrewChanges)
}

func (m *MemoryRepository) Cases(ctx context.Context) ([]Case, error) {
	return serve(ctx, m.data.Cases)
}

func serve[T any](ctx context.Context, items []T) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cloneSlice(items), nil
}
