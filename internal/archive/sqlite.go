package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps a local history of drafts and publishes in SQLite so past
// runs stay inspectable without going back to the Substack dashboard.
type Store struct {
	db *sql.DB
}

// Entry is one recorded draft or publish.
type Entry struct {
	ID        int64
	Title     string
	DraftID   int
	URL       string
	Audience  string
	Published bool
	CreatedAt time.Time
}

// NewStore creates or opens the history database.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		draft_id INTEGER,
		url TEXT,
		audience TEXT,
		published INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);`)
	return err
}

// Record appends an entry to the history. A zero CreatedAt is stamped with
// the current time.
func (s *Store) Record(ctx context.Context, e *Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (title, draft_id, url, audience, published, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Title, e.DraftID, e.URL, e.Audience, e.Published, e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	e.ID, _ = res.LastInsertId()
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, draft_id, url, audience, published, created_at
		FROM posts ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Title, &e.DraftID, &e.URL, &e.Audience, &e.Published, &created); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
