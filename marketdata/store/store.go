// Package store persists yield-curve snapshots to PostgreSQL so the engine
// can run against cached history instead of refetching FRED on every use.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"

	"github.com/meenmo/curvelab/marketdata"
)

const defaultTimeout = 30 * time.Second

// Store reads and writes snapshot history in a yield_observations table.
type Store struct {
	db      *sqlx.DB
	timeout time.Duration
}

// Open connects to PostgreSQL, verifies the connection and runs the schema
// migration. A zero timeout selects the 30s default per statement.
func Open(ctx context.Context, dsn string, timeout time.Duration) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("Open: dsn is required")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open: ping: %w", err)
	}

	s := &Store{db: db, timeout: timeout}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS yield_observations (
			obs_date  date             NOT NULL,
			tenor     text             NOT NULL,
			yield     double precision NOT NULL,
			PRIMARY KEY (obs_date, tenor)
		)`)
	return err
}

// SaveHistory upserts every observation of the history. Forward-filled
// values are stored as-is; the fill is part of the snapshot semantics, not a
// storage artifact.
func (s *Store) SaveHistory(ctx context.Context, h *marketdata.History) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("SaveHistory: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO yield_observations (obs_date, tenor, yield)
		VALUES ($1, $2, $3)
		ON CONFLICT (obs_date, tenor) DO UPDATE SET yield = EXCLUDED.yield`)
	if err != nil {
		return fmt.Errorf("SaveHistory: %w", err)
	}
	defer stmt.Close()

	rows := 0
	for _, snap := range h.Snapshots() {
		for _, tenor := range snap.Tenors() {
			y, _ := snap.Yield(tenor)
			if _, err := stmt.ExecContext(ctx, snap.Date(), string(tenor), y); err != nil {
				return fmt.Errorf("SaveHistory: insert %s %s: %w", snap.Date().Format("2006-01-02"), tenor, err)
			}
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("SaveHistory: commit: %w", err)
	}
	log.Info().Int("rows", rows).Msg("saved yield history")
	return nil
}

type observationRow struct {
	ObsDate time.Time `db:"obs_date"`
	Tenor   string    `db:"tenor"`
	Yield   float64   `db:"yield"`
}

// LoadHistory reads the observations in [from, to] (zero bounds are open)
// and assembles them into a history. No stored rows fails with
// marketdata.ErrNoData.
func (s *Store) LoadHistory(ctx context.Context, from, to time.Time) (*marketdata.History, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := `SELECT obs_date, tenor, yield FROM yield_observations WHERE 1=1`
	args := []interface{}{}
	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(" AND obs_date >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(" AND obs_date <= $%d", len(args))
	}
	query += " ORDER BY obs_date, tenor"

	var rows []observationRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("LoadHistory: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("LoadHistory: %w", marketdata.ErrNoData)
	}

	byDate := make(map[time.Time]map[marketdata.Tenor]float64)
	for _, row := range rows {
		date := row.ObsDate.UTC().Truncate(24 * time.Hour)
		m, ok := byDate[date]
		if !ok {
			m = make(map[marketdata.Tenor]float64)
			byDate[date] = m
		}
		m[marketdata.Tenor(row.Tenor)] = row.Yield
	}

	snaps := make([]marketdata.Snapshot, 0, len(byDate))
	for date, yields := range byDate {
		snaps = append(snaps, marketdata.NewSnapshot(date, yields))
	}

	h, err := marketdata.NewHistory(snaps)
	if err != nil {
		return nil, fmt.Errorf("LoadHistory: %w", err)
	}
	return h, nil
}

// LatestDate returns the most recent stored observation date, or
// marketdata.ErrNoData when the table is empty.
func (s *Store) LatestDate(ctx context.Context) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var latest sql.NullTime
	if err := s.db.GetContext(ctx, &latest, `SELECT MAX(obs_date) FROM yield_observations`); err != nil {
		return time.Time{}, fmt.Errorf("LatestDate: %w", err)
	}
	if !latest.Valid {
		return time.Time{}, fmt.Errorf("LatestDate: %w", marketdata.ErrNoData)
	}
	return latest.Time.UTC(), nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
