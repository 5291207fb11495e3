// Package store persists disambiguation runs: the result table of one
// engine invocation under a run identifier. Three backends are provided,
// SQLite and PostgreSQL through database/sql and an embedded BadgerDB
// variant.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SaschaSchweitzer/persons/tabular"
)

// Run is one persisted disambiguation result.
type Run struct {
	ID        string
	CreatedAt time.Time
	Columns   []string
	Rows      []tabular.Row
}

// RunInfo is the listing view of a run.
type RunInfo struct {
	ID        string
	CreatedAt time.Time
	RowCount  int
}

// Store saves and loads disambiguation runs.
type Store interface {
	SaveRun(ctx context.Context, run *Run) error
	LoadRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context) ([]RunInfo, error)
	Close() error
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// NewRun wraps a result table into a run with a fresh id.
func NewRun(result *tabular.ResultTable, createdAt time.Time) *Run {
	return &Run{
		ID:        NewRunID(),
		CreatedAt: createdAt,
		Columns:   result.Columns,
		Rows:      result.Rows,
	}
}
