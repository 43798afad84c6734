// Package history records visited pages in a SQLite database, feeding
// the landing page's recent-pages list.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS visits (
    id          TEXT PRIMARY KEY,
    url         TEXT NOT NULL,
    title       TEXT NOT NULL,
    visited_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visits_time ON visits(visited_at);
`

// Visit is one recorded page visit.
type Visit struct {
	ID        string
	URL       string
	Title     string
	VisitedAt time.Time
}

// Store is the SQLite-backed visit log.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user history database location.
func DefaultPath() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, "outloud", "history.db")
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record logs a visit. An untitled page is stored under its URL so the
// landing page always has something to read out.
func (s *Store) Record(url, title string) error {
	if title == "" {
		title = url
	}
	_, err := s.db.Exec(
		`INSERT INTO visits (id, url, title, visited_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), url, title, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Recent returns up to n visits, newest first, deduplicated by URL.
func (s *Store) Recent(n int) ([]Visit, error) {
	rows, err := s.db.Query(`
		SELECT id, url, title, MAX(visited_at)
		FROM visits
		GROUP BY url
		ORDER BY MAX(visited_at) DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var ts int64
		if err := rows.Scan(&v.ID, &v.URL, &v.Title, &ts); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.VisitedAt = time.Unix(0, ts)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
