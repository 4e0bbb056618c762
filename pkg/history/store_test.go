package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// setupTestStore creates a file-backed SQLite database and a Store for
// testing. It uses t.Cleanup to release resources.
func setupTestStore(t *testing.T) (context.Context, *Store) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbFile)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}
	// SetupSchema is idempotent.
	if err := SetupSchema(db); err != nil {
		t.Fatalf("second SetupSchema failed: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return context.Background(), s
}

func TestRecordAndList(t *testing.T) {
	ctx, s := setupTestStore(t)

	entries := []Entry{
		{ContentPath: "resume.md", TemplatePath: "base.mustache.html", OutputPath: "out1.html", ContentHash: HashContent([]byte("one")), OutputBytes: 10},
		{ContentPath: "resume.md", TemplatePath: "base.mustache.html", OutputPath: "out2.html", ContentHash: HashContent([]byte("two")), OutputBytes: 20},
		{ContentPath: "cv.md", TemplatePath: "alt.mustache.html", OutputPath: "cv.html", ContentHash: HashContent([]byte("three")), OutputBytes: 30},
	}
	for _, entry := range entries {
		if err := s.Record(ctx, entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	listed, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(listed))
	}
	// Most recent first.
	if listed[0].ContentPath != "cv.md" || listed[2].OutputPath != "out1.html" {
		t.Errorf("unexpected ordering: %+v", listed)
	}
	if listed[0].OutputBytes != 30 {
		t.Errorf("expected 30 output bytes, got %d", listed[0].OutputBytes)
	}
	if listed[0].CreatedAt.IsZero() {
		t.Error("expected a populated CreatedAt")
	}

	limited, err := s.List(ctx, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d entries", len(limited))
	}
}

func TestLast(t *testing.T) {
	ctx, s := setupTestStore(t)

	if _, found, err := s.Last(ctx, "resume.md"); err != nil || found {
		t.Fatalf("Last() on empty store = found %v, err %v", found, err)
	}

	older := Entry{ContentPath: "resume.md", OutputPath: "old.html", ContentHash: HashContent([]byte("a")), CreatedAt: time.Now().Add(-time.Hour)}
	newer := Entry{ContentPath: "resume.md", OutputPath: "new.html", ContentHash: HashContent([]byte("b"))}
	for _, entry := range []Entry{older, newer} {
		if err := s.Record(ctx, entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	last, found, err := s.Last(ctx, "resume.md")
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if !found {
		t.Fatal("expected an entry for resume.md")
	}
	if last.OutputPath != "new.html" {
		t.Errorf("expected the most recent entry, got %+v", last)
	}
}

func TestHashContent(t *testing.T) {
	a := HashContent([]byte("same"))
	b := HashContent([]byte("same"))
	c := HashContent([]byte("different"))
	if a != b {
		t.Error("expected equal hashes for equal content")
	}
	if a == c {
		t.Error("expected different hashes for different content")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}
