package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/five82/crewdeck/internal/crew"
)

// NewTestDB creates a new in-memory SQLite database for testing.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func sampleDataset() crew.Dataset {
	signOn := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	return crew.Dataset{
		Vessels: []crew.Vessel{
			{ID: "V-1", Name: "Nordic Star", IMO: "9412345", Flag: "Panama", GrossTonnage: 43012, Built: 2011},
			{ID: "V-2", Name: "Aegean Dawn", Flag: "Malta"},
		},
		Seafarers: []crew.Seafarer{
			{ID: "S-1", Name: "Andrei Popescu", Rank: "Master", Vessel: "Nordic Star", Status: crew.StatusOnboard, SignOn: signOn},
			{ID: "S-2", Name: "Dmitri Volkov", Rank: "Chief Engineer", Status: crew.StatusVacation, AvailableFrom: signOn.AddDate(0, 5, 0)},
		},
		Contracts: []crew.Contract{
			{ID: "K-1", Seafarer: "Andrei Popescu", Vessel: "Nordic Star", Start: signOn, End: signOn.AddDate(0, 5, 0), MonthlyWage: 12500},
		},
		CrewChanges: []crew.CrewChange{
			{ID: "CC-1", Vessel: "Nordic Star", Port: "Singapore", Date: signOn.AddDate(0, 4, 0), Status: crew.ChangePlanned},
		},
		Cases: []crew.Case{
			{ID: "PI-1", Vessel: "Nordic Star", Category: "Injury", Status: crew.CaseOpen, Reserve: 25000},
		},
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.Migrate(context.Background()))

	for _, table := range []string{"vessels", "seafarers", "contracts", "crew_changes", "cases"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

func TestRepository_ImportAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewTestDB(t))
	src := sampleDataset()

	require.NoError(t, repo.Import(ctx, src))

	ds, err := crew.Load(ctx, repo)
	require.NoError(t, err)
	require.Equal(t, src.Vessels, ds.Vessels)
	require.Len(t, ds.Seafarers, 2)
	require.True(t, ds.Seafarers[0].SignOn.Equal(src.Seafarers[0].SignOn))
	require.True(t, ds.Seafarers[0].ContractEnd.IsZero())
	require.Equal(t, crew.StatusVacation, ds.Seafarers[1].Status)
	require.Equal(t, 12500, ds.Contracts[0].MonthlyWage)
	require.True(t, ds.Contracts[0].End.Equal(src.Contracts[0].End))
	require.Equal(t, crew.ChangePlanned, ds.CrewChanges[0].Status)
	require.Equal(t, crew.CaseOpen, ds.Cases[0].Status)
}

func TestRepository_ImportReplacesContents(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewTestDB(t))

	require.NoError(t, repo.Import(ctx, sampleDataset()))
	require.NoError(t, repo.Import(ctx, crew.Dataset{Vessels: []crew.Vessel{{ID: "V-9", Name: "Coral Venture"}}}))

	vessels, err := repo.Vessels(ctx)
	require.NoError(t, err)
	require.Len(t, vessels, 1)
	require.Equal(t, "V-9", vessels[0].ID)

	cases, err := repo.Cases(ctx)
	require.NoError(t, err)
	require.Empty(t, cases)
}

func TestRepository_ImportRollsBackOnDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewTestDB(t))
	require.NoError(t, repo.Import(ctx, sampleDataset()))

	bad := crew.Dataset{Vessels: []crew.Vessel{{ID: "V-1", Name: "a"}, {ID: "V-1", Name: "b"}}}
	require.Error(t, repo.Import(ctx, bad))

	vessels, err := repo.Vessels(ctx)
	require.NoError(t, err)
	require.Len(t, vessels, 2, "failed import should leave previous data in place")
}

func TestRepository_VesselNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewTestDB(t))
	require.NoError(t, repo.Import(ctx, sampleDataset()))

	v, err := repo.Vessel(ctx, "V-2")
	require.NoError(t, err)
	require.Equal(t, "Aegean Dawn", v.Name)

	_, err = repo.Vessel(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}
