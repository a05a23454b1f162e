// Package store archives simulation logs in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wbusacker/robot-gnc/internal/engine"
	"github.com/wbusacker/robot-gnc/internal/motor"
)

// ErrRunNotFound is returned when a run id has no archive entry.
var ErrRunNotFound = errors.New("run not found")

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		run_id            INTEGER PRIMARY KEY AUTOINCREMENT,
		simulation_id     TEXT NOT NULL,
		seed              BIGINT,
		time_step         DOUBLE NOT NULL,
		run_time          DOUBLE NOT NULL,
		outcome           TEXT NOT NULL,
		ticks             BIGINT NOT NULL,
		created_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS samples (
		run_id            INTEGER NOT NULL,
		sample_index      BIGINT NOT NULL,
		timestamp_s       DOUBLE,
		target_m          DOUBLE,
		est_position_m    DOUBLE,
		est_velocity_mps  DOUBLE,
		est_accel_mps2    DOUBLE,
		actual_position_m DOUBLE,
		control_effort    DOUBLE,
		drift_pct         DOUBLE,
		direction         TEXT,
		PRIMARY KEY (run_id, sample_index),
		FOREIGN KEY(run_id) REFERENCES runs(run_id)
	);
`

// Store is a run archive backed by a SQLite file.
type Store struct {
	db *sql.DB
}

// RunSummary is one archived run without its samples.
type RunSummary struct {
	RunID        int64
	SimulationID string
	Seed         *uint64
	TimeStep     float64 // seconds
	RunTime      float64 // seconds
	Outcome      engine.Outcome
	Ticks        int
	CreatedAt    time.Time
}

// Open opens or creates the archive at path. Use ":memory:" for a throwaway
// database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun archives log in one transaction and returns its run id.
func (s *Store) SaveRun(ctx context.Context, log engine.SimulationLog) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (simulation_id, seed, time_step, run_time, outcome, ticks) VALUES (?, ?, ?, ?, ?, ?)`,
		log.Meta.SimulationID, seedArg(log.Meta.Seed), log.Meta.TimeStep, log.Meta.RunTime, string(log.Outcome), log.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO samples (
			run_id, sample_index, timestamp_s, target_m, est_position_m, est_velocity_mps,
			est_accel_mps2, actual_position_m, control_effort, drift_pct, direction
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing sample insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range log.Output {
		if _, err := stmt.ExecContext(ctx,
			runID, i, r.Timestamp, r.Target, r.EstimatedPosition, r.EstimatedVelocity,
			r.EstimatedAcceleration, r.ActualPosition, r.ControlEffort, r.DriftPct, r.Direction.String(),
		); err != nil {
			return 0, fmt.Errorf("inserting sample %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// LoadRun reads an archived run back as a log.
func (s *Store) LoadRun(ctx context.Context, runID int64) (engine.SimulationLog, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, simulation_id, seed, time_step, run_time, outcome, ticks, created_at FROM runs WHERE run_id = ?`, runID)
	sum, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.SimulationLog{}, fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return engine.SimulationLog{}, fmt.Errorf("reading run %d: %w", runID, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp_s, target_m, est_position_m, est_velocity_mps, est_accel_mps2,
			actual_position_m, control_effort, drift_pct, direction
		FROM samples WHERE run_id = ? ORDER BY sample_index`, runID)
	if err != nil {
		return engine.SimulationLog{}, fmt.Errorf("reading samples of run %d: %w", runID, err)
	}
	defer rows.Close()

	out := make([]engine.SimulationLogRow, 0, sum.Ticks+1)
	for rows.Next() {
		var (
			r   engine.SimulationLogRow
			dir string
		)
		if err := rows.Scan(&r.Timestamp, &r.Target, &r.EstimatedPosition, &r.EstimatedVelocity,
			&r.EstimatedAcceleration, &r.ActualPosition, &r.ControlEffort, &r.DriftPct, &dir); err != nil {
			return engine.SimulationLog{}, fmt.Errorf("scanning sample: %w", err)
		}
		if r.Direction, err = motor.ParseDirection(dir); err != nil {
			return engine.SimulationLog{}, fmt.Errorf("sample %d: %w", len(out), err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return engine.SimulationLog{}, fmt.Errorf("iterating samples: %w", err)
	}

	return engine.SimulationLog{
		Meta: engine.SimulationMeta{
			SimulationID: sum.SimulationID,
			TimeStep:     sum.TimeStep,
			RunTime:      sum.RunTime,
			Seed:         sum.Seed,
		},
		Outcome: sum.Outcome,
		Ticks:   sum.Ticks,
		Output:  out,
	}, nil
}

// ListRuns returns every archived run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, simulation_id, seed, time_step, run_time, outcome, ticks, created_at FROM runs ORDER BY run_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, sum)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(sc scanner) (RunSummary, error) {
	var (
		sum     RunSummary
		seed    sql.NullInt64
		outcome string
	)
	if err := sc.Scan(&sum.RunID, &sum.SimulationID, &seed, &sum.TimeStep, &sum.RunTime, &outcome, &sum.Ticks, &sum.CreatedAt); err != nil {
		return RunSummary{}, err
	}
	if seed.Valid {
		v := uint64(seed.Int64)
		sum.Seed = &v
	}
	sum.Outcome = engine.Outcome(outcome)
	return sum, nil
}

// seedArg stores the seed's bits in a signed column; SQLite integers are
// 64-bit signed.
func seedArg(seed *uint64) any {
	if seed == nil {
		return nil
	}
	return int64(*seed)
}
