package crew

import (
	"context"
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyContract(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	cases := []struct {
		name string
		c    Contract
		want ContractStatus
	}{
		{"future start", Contract{Start: day(2024, 7, 1), End: day(2025, 1, 1)}, ContractPending},
		{"ended yesterday", Contract{Start: day(2024, 1, 1), End: day(2024, 6, 14)}, ContractExpired},
		{"ends today", Contract{Start: day(2024, 1, 1), End: day(2024, 6, 15)}, ContractExpiring},
		{"ends within window", Contract{Start: day(2024, 1, 1), End: day(2024, 7, 15)}, ContractExpiring},
		{"ends after window", Contract{Start: day(2024, 1, 1), End: day(2024, 7, 16)}, ContractActive},
		{"open ended", Contract{Start: day(2024, 1, 1)}, ContractActive},
		{"starts today", Contract{Start: day(2024, 6, 15), End: day(2025, 6, 15)}, ContractActive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyContract(tc.c, now); got != tc.want {
				t.Fatalf("ClassifyContract = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := day(2024, 6, 15)
	if d, ok := DaysRemaining(Contract{End: day(2024, 6, 25)}, now); !ok || d != 10 {
		t.Fatalf("DaysRemaining = %d,%v want 10,true", d, ok)
	}
	if d, ok := DaysRemaining(Contract{End: day(2024, 6, 10)}, now); !ok || d != -5 {
		t.Fatalf("DaysRemaining = %d,%v want -5,true", d, ok)
	}
	if _, ok := DaysRemaining(Contract{}, now); ok {
		t.Fatalf("DaysRemaining open-ended should report ok=false")
	}
}

func TestDataset_SplitsSeafarersByStatus(t *testing.T) {
	ds := Dataset{Seafarers: []Seafarer{
		{ID: "s1", Status: StatusOnboard},
		{ID: "s2", Status: StatusVacation},
		{ID: "s3", Status: StatusOnboard},
	}}
	if got := ds.Onboard(); len(got) != 2 || got[1].ID != "s3" {
		t.Fatalf("Onboard = %+v", got)
	}
	if got := ds.Vacationers(); len(got) != 1 || got[0].ID != "s2" {
		t.Fatalf("Vacationers = %+v", got)
	}
}

func TestLoad_MemoryRepository(t *testing.T) {
	src := Dataset{
		Vessels:     []Vessel{{ID: "v1", Name: "Nordic Star"}},
		Contracts:   []Contract{{ID: "k1"}},
		CrewChanges: []CrewChange{{ID: "cc1"}},
	}
	repo := NewMemoryRepository(src)
	src.Vessels[0].Name = "mutated"

	ds, err := Load(context.Background(), repo)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(ds.Vessels) != 1 || ds.Vessels[0].Name != "Nordic Star" {
		t.Fatalf("Vessels = %+v, want repository copy", ds.Vessels)
	}
	if len(ds.Contracts) != 1 || len(ds.CrewChanges) != 1 || ds.Cases != nil {
		t.Fatalf("dataset = %+v", ds.Counts())
	}
}

type failingRepo struct {
	*MemoryRepository
}

func (failingRepo) Cases(context.Context) ([]Case, error) {
	return nil, errors.New("disk on fire")
}

func TestLoad_FailureFailsWholeLoad(t *testing.T) {
	_, err := Load(context.Background(), failingRepo{NewMemoryRepository(Dataset{})})
	if err == nil {
		t.Fatalf("Load returned nil error, want failure")
	}
	if got := err.Error(); got != "fetch cases: disk on fire" {
		t.Fatalf("Load error = %q", got)
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, NewMemoryRepository(Dataset{})); !errors.Is(err, context.Canceled) {
		t.Fatalf("Load error = %v, want context.Canceled", err)
	}
}
