package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/five82/crewdeck/internal/crew"
)

// Repository implements crew.Repository for SQLite.
type Repository struct {
	db *DB
}

var _ crew.Repository = (*Repository)(nil)

// NewRepository creates a Repository backed by db.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Vessels(ctx context.Context) ([]crew.Vessel, error) {
	query := `
		SELECT id, name, imo, flag, type, gross_tonnage, built, manager
		FROM vessels
		ORDER BY id
	`
	return queryAll(ctx, r.db, query, func(rows *sql.Rows) (crew.Vessel, error) {
		var v crew.Vessel
		err := rows.Scan(&v.ID, &v.Name, &v.IMO, &v.Flag, &v.Type, &v.GrossTonnage, &v.Built, &v.Manager)
		return v, err
	})
}

func (r *Repository) Seafarers(ctx context.Context) ([]crew.Seafarer, error) {
	query := `
		SELECT id, name, rank, nationality, vessel, status, sign_on, contract_end, available_from
		FROM seafarers
		ORDER BY id
	`
	return queryAll(ctx, r.db, query, func(rows *sql.Rows) (crew.Seafarer, error) {
		var (
			s                          crew.Seafarer
			status                     string
			signOn, end, availableFrom sql.NullTime
		)
		err := rows.Scan(&s.ID, &s.Name, &s.Rank, &s.Nationality, &s.Vessel, &status, &signOn, &end, &availableFrom)
		s.Status = crew.SeafarerStatus(status)
		s.SignOn = fromNull(signOn)
		s.ContractEnd = fromNull(end)
		s.AvailableFrom = fromNull(availableFrom)
		return s, err
	})
}

func (r *Repository) Contracts(ctx context.Context) ([]crew.Contract, error) {
	query := `
		SELECT id, seafarer, rank, vessel, start_date, end_date, monthly_wage
		FROM contracts
		ORDER BY id
	`
	return queryAll(ctx, r.db, query, func(rows *sql.Rows) (crew.Contract, error) {
		var (
			c          crew.Contract
			start, end sql.NullTime
		)
		err := rows.Scan(&c.ID, &c.Seafarer, &c.Rank, &c.Vessel, &start, &end, &c.MonthlyWage)
		c.Start = fromNull(start)
		c.End = fromNull(end)
		return c, err
	})
}

func (r *Repository) CrewChanges(ctx context.Context) ([]crew.CrewChange, error) {
	query := `
		SELECT id, vessel, port, change_date, rank, onsigner, offsigner, status
		FROM crew_changes
		ORDER BY id
	`
	return queryAll(ctx, r.db, query, func(rows *sql.Rows) (crew.CrewChange, error) {
		var (
			c      crew.CrewChange
			date   sql.NullTime
			status string
		)
		err := rows.Scan(&c.ID, &c.Vessel, &c.Port, &date, &c.Rank, &c.Onsigner, &c.Offsigner, &status)
		c.Date = fromNull(date)
		c.Status = crew.ChangeStatus(status)
		return c, err
	})
}

func (r *Repository) Cases(ctx context.Context) ([]crew.Case, error) {
	query := `
		SELECT id, vessel, seafarer, category, club, opened, status, reserve
		FROM cases
		ORDER BY id
	`
	return queryAll(ctx, r.db, query, func(rows *sql.Rows) (crew.Case, error) {
		var (
			c      crew.Case
			opened sql.NullTime
			status string
		)
		err := rows.Scan(&c.ID, &c.Vessel, &c.Seafarer, &c.Category, &c.Club, &opened, &status, &c.Reserve)
		c.Opened = fromNull(opened)
		c.Status = crew.CaseStatus(status)
		return c, err
	})
}

// Vessel retrieves a single vessel by ID.
func (r *Repository) Vessel(ctx context.Context, id string) (crew.Vessel, error) {
	query := `
		SELECT id, name, imo, flag, type, gross_tonnage, built, manager
		FROM vessels
		WHERE id = ?
	`
	var v crew.Vessel
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Name, &v.IMO, &v.Flag, &v.Type, &v.GrossTonnage, &v.Built, &v.Manager)
	if err == sql.ErrNoRows {
		return crew.Vessel{}, ErrNotFound
	}
	if err != nil {
		return crew.Vessel{}, fmt.Errorf("failed to get vessel: %w", err)
	}
	return v, nil
}

// Import replaces every table's contents with ds in one transaction.
func (r *Repository) Import(ctx context.Context, ds crew.Dataset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"vessels", "seafarers", "contracts", "crew_changes", "cases"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, v := range ds.Vessels {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO vessels (id, name, imo, flag, type, gross_tonnage, built, manager)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.Name, v.IMO, v.Flag, v.Type, v.GrossTonnage, v.Built, v.Manager,
		); err != nil {
			return fmt.Errorf("insert vessel %s: %w", v.ID, err)
		}
	}
	for _, s := range ds.Seafarers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO seafarers (id, name, rank, nationality, vessel, status, sign_on, contract_end, available_from)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.Name, s.Rank, s.Nationality, s.Vessel, string(s.Status),
			toNull(s.SignOn), toNull(s.ContractEnd), toNull(s.AvailableFrom),
		); err != nil {
			return fmt.Errorf("insert seafarer %s: %w", s.ID, err)
		}
	}
	for _, c := range ds.Contracts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO contracts (id, seafarer, rank, vessel, start_date, end_date, monthly_wage)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Seafarer, c.Rank, c.Vessel, toNull(c.Start), toNull(c.End), c.MonthlyWage,
		); err != nil {
			return fmt.Errorf("insert contract %s: %w", c.ID, err)
		}
	}
	for _, c := range ds.CrewChanges {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO crew_changes (id, vessel, port, change_date, rank, onsigner, offsigner, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Vessel, c.Port, toNull(c.Date), c.Rank, c.Onsigner, c.Offsigner, string(c.Status),
		); err != nil {
			return fmt.Errorf("insert crew change %s: %w", c.ID, err)
		}
	}
	for _, c := range ds.Cases {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cases (id, vessel, seafarer, category, club, opened, status, reserve)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Vessel, c.Seafarer, c.Category, c.Club, toNull(c.Opened), string(c.Status), c.Reserve,
		); err != nil {
			return fmt.Errorf("insert case %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func queryAll[T any](ctx context.Context, db *DB, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

func toNull(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func fromNull(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}
