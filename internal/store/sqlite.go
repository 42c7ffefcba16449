// internal/store/sqlite.go
//
// SQLite-backed persistence for the solver.
// Responsibilities:
//   - SuggestionCache: a solver.Cache over the suggestions table, so
//     expensive selections survive restarts.
//   - Runs: solve-all reports (one solve_runs row plus a solve_results row
//     per seed) and the "hardest seeds" query over them.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

// SuggestionCache implements solver.Cache and solver.Purger.
type SuggestionCache struct{ db *sql.DB }

var (
	_ solver.Cache  = (*SuggestionCache)(nil)
	_ solver.Purger = (*SuggestionCache)(nil)
)

// NewSuggestionCache wraps a migrated database.
func NewSuggestionCache(db *sql.DB) *SuggestionCache { return &SuggestionCache{db: db} }

// Get loads the memoized selection for key.
func (c *SuggestionCache) Get(ctx context.Context, key string) (solver.Entry, bool, error) {
	var e solver.Entry
	err := c.db.QueryRowContext(ctx,
		`SELECT word, candidates FROM suggestions WHERE cache_key=?`, key,
	).Scan(&e.Word, &e.Candidates)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return solver.Entry{}, false, nil
	case err != nil:
		return solver.Entry{}, false, err
	}
	return e, true, nil
}

// Put upserts the selection for key.
func (c *SuggestionCache) Put(ctx context.Context, key string, e solver.Entry) error {
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO suggestions (cache_key, word, candidates)
        VALUES (?, ?, ?)
        ON CONFLICT(cache_key) DO UPDATE SET word=excluded.word, candidates=excluded.candidates`,
		key, e.Word, e.Candidates,
	)
	return err
}

// Purge deletes every memoized suggestion.
func (c *SuggestionCache) Purge(ctx context.Context) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM suggestions`)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	log.Info().Int64("rows", n).Msg("suggestion cache purged")
	return nil
}

// Len counts the memoized suggestions.
func (c *SuggestionCache) Len(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM suggestions`).Scan(&n)
	return n, err
}

// Run summarizes a persisted solve-all run.
type Run struct {
	ID        int64     `json:"id"`
	StartedAt time.Time `json:"startedAt"`
	Budget    int       `json:"budget"`
	Seeds     int       `json:"seeds"`
	Failed    int       `json:"failed"`
	Mean      float64   `json:"mean"`
	ElapsedMs int64     `json:"elapsedMs"`
}

// HardRow is one seed of the hardest-seeds query.
type HardRow struct {
	Seed    string   `json:"seed"`
	Guesses int      `json:"guesses"`
	Solved  bool     `json:"solved"`
	Path    []string `json:"path"`
}

// Runs stores solve-all reports.
type Runs struct{ db *sql.DB }

// NewRuns wraps a migrated database.
func NewRuns(db *sql.DB) *Runs { return &Runs{db: db} }

// SaveRun persists rep in one transaction and returns the new run ID.
func (s *Runs) SaveRun(ctx context.Context, startedAt time.Time, rep *solver.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO solve_runs (started_at, budget, seeds, failed, mean, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?)`,
		startedAt.UTC().Format(time.RFC3339), rep.Budget, len(rep.Results), len(rep.Failed),
		rep.Mean(), rep.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO solve_results (run_id, seed, guesses, solved, path)
        VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, r := range rep.Results {
		if _, err := stmt.ExecContext(ctx, id, r.Seed, r.Guesses, r.Solved, strings.Join(r.Path, ",")); err != nil {
			return 0, fmt.Errorf("insert result %q: %w", r.Seed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info().Int64("run", id).Int("seeds", len(rep.Results)).Msg("solve run saved")
	return id, nil
}

// Latest returns the most recent run, or ErrNotFound.
func (s *Runs) Latest(ctx context.Context) (Run, error) {
	var (
		r       Run
		started string
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT id, started_at, budget, seeds, failed, mean, elapsed_ms
        FROM solve_runs
        ORDER BY id DESC
        LIMIT 1`,
	).Scan(&r.ID, &started, &r.Budget, &r.Seeds, &r.Failed, &r.Mean, &r.ElapsedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, err
	}
	r.StartedAt, _ = time.Parse(time.RFC3339, started)
	return r, nil
}

// Hardest returns the seeds of run that took the most guesses, unsolved
// seeds first, ties by seed. limit <= 0 defaults to 20.
func (s *Runs) Hardest(ctx context.Context, runID int64, limit int) ([]HardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT seed, guesses, solved, path
        FROM solve_results
        WHERE run_id=?
        ORDER BY solved ASC, guesses DESC, seed ASC
        LIMIT ?`, runID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HardRow, 0, limit)
	for rows.Next() {
		var (
			r    HardRow
			path string
		)
		if err := rows.Scan(&r.Seed, &r.Guesses, &r.Solved, &path); err != nil {
			return nil, err
		}
		if path != "" {
			r.Path = strings.Split(path, ",")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
