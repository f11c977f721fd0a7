// Package store persists finished simulation runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kevinkasson/boardsim/internal/sim"
)

var ErrNotFound = errors.New("run not found")

// Run is one stored result.
type Run struct {
	ID        string
	CreatedAt time.Time
	Trials    int
	Result    sim.Result
	Share     []sim.Stats // nil unless the run combined several replications
}

// Runs is the repository of stored runs.
type Runs struct {
	db  *sql.DB
	now func() time.Time
}

func NewRuns(db *sql.DB) *Runs {
	return &Runs{db: db, now: time.Now}
}

// Save stores res with its per-position replication stats (may be nil)
// and returns the new record.
func (r *Runs) Save(ctx context.Context, res sim.Result, trials int, share []sim.Stats) (Run, error) {
	if trials < 1 {
		trials = 1
	}
	landings, err := json.Marshal(res.Landings)
	if err != nil {
		return Run{}, fmt.Errorf("failed to marshal landings: %w", err)
	}
	var shareJSON sql.NullString
	if len(share) > 0 {
		b, err := json.Marshal(share)
		if err != nil {
			return Run{}, fmt.Errorf("failed to marshal share stats: %w", err)
		}
		shareJSON = sql.NullString{String: string(b), Valid: true}
	}
	run := Run{
		ID:        uuid.NewString(),
		CreatedAt: r.now().UTC(),
		Trials:    trials,
		Result:    res,
		Share:     share,
	}

	var seed sql.NullInt64
	if res.Seed != nil {
		seed = sql.NullInt64{Int64: int64(*res.Seed), Valid: true}
	}

	query := `
		INSERT INTO runs (id, created_at, players, rounds, seed, trials, rolls, landings_total, landings, share)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		run.ID, run.CreatedAt, res.Players, res.Rounds, seed, trials,
		res.Rolls, res.Total(), string(landings), shareJSON,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to save run: %w", err)
	}
	return run, nil
}

const selectRuns = `SELECT id, created_at, players, rounds, seed, trials, rolls, landings, share FROM runs`

// Get returns the run with id, or ErrNotFound.
func (r *Runs) Get(ctx context.Context, id string) (Run, error) {
	runs, err := r.getMany(ctx, selectRuns+` WHERE id = ?`, id)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return runs[0], nil
}

// List returns the most recent runs first.
func (r *Runs) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return r.getMany(ctx, selectRuns+` ORDER BY created_at DESC, id LIMIT ?`, limit)
}

func (r *Runs) getMany(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			seed     sql.NullInt64
			landings string
			share    sql.NullString
		)
		err := rows.Scan(
			&run.ID, &run.CreatedAt, &run.Result.Players, &run.Result.Rounds,
			&seed, &run.Trials, &run.Result.Rolls, &landings, &share,
		)
		if err != nil {
			return nil, err
		}
		if seed.Valid {
			s := uint64(seed.Int64)
			run.Result.Seed = &s
		}
		if err := json.Unmarshal([]byte(landings), &run.Result.Landings); err != nil {
			return nil, fmt.Errorf("failed to decode landings of %s: %w", run.ID, err)
		}
		if share.Valid {
			if err := json.Unmarshal([]byte(share.String), &run.Share); err != nil {
				return nil, fmt.Errorf("failed to decode share stats of %s: %w", run.ID, err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
