package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/SaschaSchweitzer/persons/tabular"
)

// PostgresStore persists runs in a PostgreSQL database. It mirrors the
// SQLite store and is selected by connection string.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a PostgreSQL run store. An empty databaseURL falls
// back to the DATABASE_URL environment variable.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set and no database URL provided")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	s := &PostgresStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create PostgreSQL schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS persons_runs (
		id TEXT PRIMARY KEY,
		created_at BIGINT NOT NULL,
		columns TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS persons_run_rows (
		run_id TEXT NOT NULL REFERENCES persons_runs(id),
		seq INTEGER NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun stores a run and its rows in one transaction.
func (s *PostgresStore) SaveRun(ctx context.Context, run *Run) error {
	columns, err := json.Marshal(run.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO persons_runs (id, created_at, columns) VALUES ($1, $2, $3)",
		run.ID, run.CreatedAt.Unix(), string(columns)); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for seq, row := range run.Rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal row %d: %w", seq, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO persons_run_rows (run_id, seq, data) VALUES ($1, $2, $3)",
			run.ID, seq, string(data)); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", seq, err)
		}
	}

	return tx.Commit()
}

// LoadRun loads a run and its rows.
func (s *PostgresStore) LoadRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{ID: id}
	var createdAt int64
	var columns string
	err := s.db.QueryRowContext(ctx,
		"SELECT created_at, columns FROM persons_runs WHERE id = $1", id).
		Scan(&createdAt, &columns)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	run.CreatedAt = time.Unix(createdAt, 0)
	if err := json.Unmarshal([]byte(columns), &run.Columns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT data FROM persons_run_rows WHERE run_id = $1 ORDER BY seq", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var row tabular.Row
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			return nil, fmt.Errorf("failed to unmarshal row: %w", err)
		}
		run.Rows = append(run.Rows, row)
	}
	return run, rows.Err()
}

// ListRuns lists all stored runs, newest first.
func (s *PostgresStore) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, COUNT(rr.seq)
		FROM persons_runs r LEFT JOIN persons_run_rows rr ON rr.run_id = r.id
		GROUP BY r.id, r.created_at
		ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var infos []RunInfo
	for rows.Next() {
		var info RunInfo
		var createdAt int64
		if err := rows.Scan(&info.ID, &createdAt, &info.RowCount); err != nil {
			return nil, fmt.Errorf("failed to scan run info: %w", err)
		}
		info.CreatedAt = time.Unix(createdAt, 0)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Close closes the database.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
