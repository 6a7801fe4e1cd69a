package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MainDocumentKey is the row holding the live document.
const MainDocumentKey = "system_memory"

// SQLiteStore keeps the JSON document as a single row in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, MainDocumentKey)
	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("document get: %w", err)
	}
	return Decode([]byte(body))
}

func (s *SQLiteStore) Save(ctx context.Context, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return s.SaveRaw(ctx, data)
}

func (s *SQLiteStore) SaveRaw(ctx context.Context, data []byte) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
		`, MainDocumentKey, string(data), time.Now().UTC())
		if err != nil {
			return fmt.Errorf("document upsert: %w", err)
		}
		return nil
	})
}

// inTx runs fn in a transaction and rolls back unless fn and the commit succeed.
func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
