package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore persists runs in an embedded BadgerDB key-value store.
// Runs are stored as one meta entry plus one entry per row:
//
//	run:<id>:meta -> {created_at, columns, row_count}
//	run:<id>:row:<seq> -> row JSON
type BadgerStore struct {
	db *badger.DB
}

type badgerMeta struct {
	CreatedAt int64    `json:"created_at"`
	Columns   []string `json:"columns"`
	RowCount  int      `json:"row_count"`
}

// NewBadgerStore opens (and if necessary creates) a Badger run store in the
// given directory.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func metaKey(id string) []byte {
	return []byte("run:" + id + ":meta")
}

func rowKey(id string, seq int) []byte {
	return []byte(fmt.Sprintf("run:%s:row:%012d", id, seq))
}

// SaveRun stores a run and its rows in one write batch.
func (s *BadgerStore) SaveRun(ctx context.Context, run *Run) error {
	meta, err := json.Marshal(badgerMeta{
		CreatedAt: run.CreatedAt.Unix(),
		Columns:   run.Columns,
		RowCount:  len(run.Rows),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal run meta: %w", err)
	}

	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	if err := batch.Set(metaKey(run.ID), meta); err != nil {
		return fmt.Errorf("failed to write run meta: %w", err)
	}
	for seq, row := range run.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal row %d: %w", seq, err)
		}
		if err := batch.Set(rowKey(run.ID, seq), data); err != nil {
			return fmt.Errorf("failed to write row %d: %w", seq, err)
		}
	}
	return batch.Flush()
}

// LoadRun loads a run and its rows.
func (s *BadgerStore) LoadRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{ID: id}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("run %s not found", id)
		}
		if err != nil {
			return err
		}
		var meta badgerMeta
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		}); err != nil {
			return fmt.Errorf("failed to unmarshal run meta: %w", err)
		}
		run.CreatedAt = time.Unix(meta.CreatedAt, 0)
		run.Columns = meta.Columns

		prefix := []byte("run:" + id + ":row:")
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 100})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var row map[string]string
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &row)
			}); err != nil {
				return fmt.Errorf("failed to unmarshal row: %w", err)
			}
			run.Rows = append(run.Rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns lists all stored runs, newest first.
func (s *BadgerStore) ListRuns(ctx context.Context) ([]RunInfo, error) {
	var infos []RunInfo
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte("run:")
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 100})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			if !strings.HasSuffix(key, ":meta") {
				continue
			}
			id := strings.TrimSuffix(strings.TrimPrefix(key, "run:"), ":meta")
			var meta badgerMeta
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &meta)
			}); err != nil {
				return fmt.Errorf("failed to unmarshal run meta: %w", err)
			}
			infos = append(infos, RunInfo{
				ID:        id,
				CreatedAt: time.Unix(meta.CreatedAt, 0),
				RowCount:  meta.RowCount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(a, b int) bool {
		return infos[a].CreatedAt.After(infos[b].CreatedAt)
	})
	return infos, nil
}

// Close closes the store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
