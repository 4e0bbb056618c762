package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
)

// Entry is one recorded render.
type Entry struct {
	Id           int
	ContentPath  string
	TemplatePath string
	OutputPath   string
	ContentHash  string
	OutputBytes  int
	CreatedAt    time.Time
}

// HashContent returns the hex-encoded SHA-256 of a content document, the
// form stored in ContentHash.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SetupSchema initializes the render log table in the provided database.
// It is idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schemaRenders = `
CREATE TABLE IF NOT EXISTS renders (
    render_id INTEGER PRIMARY KEY,
    content_path TEXT NOT NULL,
    template_path TEXT NOT NULL,
    output_path TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    output_bytes INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);
`
	if _, err := db.Exec(schemaRenders); err != nil {
		return fmt.Errorf("could not create renders schema: %w", err)
	}
	return nil
}

// Store records and lists render history entries. It holds the database
// connection and prepared statements; all methods are safe for concurrent
// use.
type Store struct {
	db         *sql.DB
	stmtInsert *sql.Stmt
	stmtList   *sql.Stmt
	stmtLast   *sql.Stmt
}

// NewStore creates a Store over db, pre-compiling its SQL statements. The
// schema must already be in place; see SetupSchema.
func NewStore(db *sql.DB) (*Store, error) {
	stmtInsert, err := db.Prepare(`INSERT INTO renders (content_path, template_path, output_path, content_hash, output_bytes, created_at) VALUES (?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtList, err := db.Prepare(`SELECT render_id, content_path, template_path, output_path, content_hash, output_bytes, created_at FROM renders ORDER BY render_id DESC LIMIT ?;`)
	if err != nil {
		return nil, err
	}

	stmtLast, err := db.Prepare(`SELECT render_id, content_path, template_path, output_path, content_hash, output_bytes, created_at FROM renders WHERE content_path = ? ORDER BY render_id DESC LIMIT 1;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		stmtInsert: stmtInsert,
		stmtList:   stmtList,
		stmtLast:   stmtLast,
	}, nil
}

// Record appends an entry to the render log. CreatedAt defaults to the
// current time when unset.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.stmtInsert.ExecContext(ctx,
		entry.ContentPath,
		entry.TemplatePath,
		entry.OutputPath,
		entry.ContentHash,
		entry.OutputBytes,
		createdAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("could not record render: %w", err)
	}
	return nil
}

// List returns up to limit entries, most recent first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.stmtList.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Last returns the most recent entry for a content path. The boolean result
// reports whether one exists.
func (s *Store) Last(ctx context.Context, contentPath string) (Entry, bool, error) {
	rows, err := s.stmtLast.QueryContext(ctx, contentPath)
	if err != nil {
		return Entry{}, false, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	if !rows.Next() {
		return Entry{}, false, rows.Err()
	}
	entry, err := scanEntry(rows)
	if err != nil {
		return Entry{}, false, err
	}
	return entry, true, rows.Err()
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var entry Entry
	var createdAt int64
	if err := rows.Scan(
		&entry.Id,
		&entry.ContentPath,
		&entry.TemplatePath,
		&entry.OutputPath,
		&entry.ContentHash,
		&entry.OutputBytes,
		&createdAt,
	); err != nil {
		return Entry{}, err
	}
	entry.CreatedAt = time.Unix(createdAt, 0)
	return entry, nil
}

// Close releases the prepared statements. The database connection itself
// belongs to the caller.
func (s *Store) Close() {
	_ = s.stmtInsert.Close()
	_ = s.stmtList.Close()
	_ = s.stmtLast.Close()
}
