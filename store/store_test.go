package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SaschaSchweitzer/persons/tabular"
)

func sampleRun() *Run {
	return &Run{
		ID:        NewRunID(),
		CreatedAt: time.Unix(1500000000, 0),
		Columns:   []string{"person_id", "fnm", "snm"},
		Rows: []tabular.Row{
			{"person_id": "0", "fnm": "Tim", "snm": "Burton"},
			{"person_id": "0", "fnm": "Tim W.", "snm": "Burton"},
			{"person_id": "1", "fnm": "Albert", "snm": "Einstein"},
		},
	}
}

func roundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	run := sampleRun()

	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	loaded, err := s.LoadRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if len(loaded.Rows) != len(run.Rows) {
		t.Fatalf("expected %d rows, got %d", len(run.Rows), len(loaded.Rows))
	}
	for i, row := range run.Rows {
		for col, want := range row {
			if got := loaded.Rows[i][col]; got != want {
				t.Errorf("row %d column %s: expected %q, got %q", i, col, want, got)
			}
		}
	}
	if len(loaded.Columns) != len(run.Columns) {
		t.Errorf("expected %d columns, got %d", len(run.Columns), len(loaded.Columns))
	}

	infos, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(infos) != 1 || infos[0].ID != run.ID || infos[0].RowCount != 3 {
		t.Errorf("unexpected run listing: %+v", infos)
	}

	if _, err := s.LoadRun(ctx, "no-such-run"); err == nil {
		t.Error("expected error for unknown run id")
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	roundTrip(t, s)
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	s, err := NewBadgerStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	defer s.Close()

	roundTrip(t, s)
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set")
	}
	s, err := NewPostgresStore("")
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}
	defer s.Close()

	roundTrip(t, s)
}

func TestNewRunID(t *testing.T) {
	if NewRunID() == NewRunID() {
		t.Error("run ids must be unique")
	}
}
