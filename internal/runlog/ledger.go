// Package runlog records one row per triage run. Nothing is read back by the pipeline.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Files      int
	Zones      int
	Flagged    int
	Targets    int
	Source     string
	Output     string
	MirrorKey  string
	Error      string
}

type Ledger interface {
	Record(ctx context.Context, run Run) error
	Close() error
}

// Nop discards every run.
type Nop struct{}

func (Nop) Record(context.Context, Run) error { return nil }
func (Nop) Close() error                      { return nil }

type PostgresLedger struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

// Open returns Nop for an empty DSN.
func Open(ctx context.Context, dsn string) (Ledger, error) {
	if strings.TrimSpace(dsn) == "" {
		return Nop{}, nil
	}
	return NewPostgres(ctx, dsn)
}

func NewPostgres(ctx context.Context, dsn string) (*PostgresLedger, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresLedger{db: db}, nil
}

func (l *PostgresLedger) ensureSchema(ctx context.Context) error {
	if l == nil || l.db == nil {
		return nil
	}
	l.schemaOnce.Do(func() {
		_, l.schemaErr = l.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS triage_runs (
  run_id TEXT PRIMARY KEY,
  started_at TIMESTAMP WITH TIME ZONE NOT NULL,
  finished_at TIMESTAMP WITH TIME ZONE NOT NULL,
  files INTEGER NOT NULL DEFAULT 0,
  zones INTEGER NOT NULL DEFAULT 0,
  flagged INTEGER NOT NULL DEFAULT 0,
  targets INTEGER NOT NULL DEFAULT 0,
  source TEXT NOT NULL DEFAULT '',
  output TEXT NOT NULL DEFAULT '',
  mirror_key TEXT NOT NULL DEFAULT '',
  error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_triage_runs_started_at ON triage_runs (started_at);
`)
	})
	return l.schemaErr
}

func (l *PostgresLedger) Record(ctx context.Context, run Run) error {
	if l == nil || l.db == nil {
		return fmt.Errorf("ledger is nil")
	}
	if err := validate(run); err != nil {
		return err
	}
	if err := l.ensureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	_, err := l.db.ExecContext(ctx, `
INSERT INTO triage_runs (
  run_id, started_at, finished_at, files, zones, flagged, targets,
  source, output, mirror_key, error
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (run_id)
DO UPDATE SET finished_at=EXCLUDED.finished_at,
  files=EXCLUDED.files,
  zones=EXCLUDED.zones,
  flagged=EXCLUDED.flagged,
  targets=EXCLUDED.targets,
  source=EXCLUDED.source,
  output=EXCLUDED.output,
  mirror_key=EXCLUDED.mirror_key,
  error=EXCLUDED.error`,
		strings.TrimSpace(run.ID), run.StartedAt.UTC(), run.FinishedAt.UTC(),
		run.Files, run.Zones, run.Flagged, run.Targets,
		run.Source, run.Output, run.MirrorKey, run.Error)
	return err
}

func (l *PostgresLedger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

func validate(run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("run_id is required")
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("started_at is required")
	}
	if run.FinishedAt.Before(run.StartedAt) {
		return fmt.Errorf("finished_at precedes started_at")
	}
	return nil
}
