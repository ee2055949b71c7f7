package datastores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// BlobSQLite implements [Blob] with one row of a SQLite table.
type BlobSQLite struct {
	db  *sql.DB
	key string
}

var _ Blob = (*BlobSQLite)(nil)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS blobs (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// OpenBlobSQLite opens (creating if needed) the database at path and
// addresses the row named key. Use ":memory:" for a throwaway database.
func OpenBlobSQLite(path, key string) (*BlobSQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: path is required")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("sqlite: key is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and shared
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &BlobSQLite{db: db, key: key}, nil
}

func (b *BlobSQLite) Read(ctx context.Context) ([]byte, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, b.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotExist
	}
	return data, err
}

func (b *BlobSQLite) Write(ctx context.Context, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO blobs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		b.key, data)
	return err
}

func (b *BlobSQLite) Ping(ctx context.Context) error { return b.db.PingContext(ctx) }

func (b *BlobSQLite) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
