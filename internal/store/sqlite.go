package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pbaille/aura/internal/domain"
)

//go:embed schema.sql
var schema string

// SQLite keeps the mood log in a SQLite database
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (or creates) the database at dbPath
func OpenSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLite{db: db, path: dbPath}, nil
}

func (s *SQLite) Location() string { return s.path }

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load returns all entries in insertion order
func (s *SQLite) Load() ([]domain.MoodLogEntry, error) {
	rows, err := s.db.Query(
		"SELECT id, timestamp, entry, sentiment FROM mood_logs ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.MoodLogEntry
	for rows.Next() {
		var e domain.MoodLogEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Entry, &e.Sentiment); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}

// Save inserts the entries the table does not have yet. The log is
// append-only, so a shorter slice than what is stored is rejected.
func (s *SQLite) Save(entries []domain.MoodLogEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var stored int
	if err := tx.QueryRow("SELECT COUNT(*) FROM mood_logs").Scan(&stored); err != nil {
		return fmt.Errorf("count entries: %w", err)
	}
	if stored > len(entries) {
		return fmt.Errorf("refusing to drop %d stored entries", stored-len(entries))
	}

	for _, e := range entries[stored:] {
		_, err := tx.Exec(
			"INSERT INTO mood_logs (id, timestamp, entry, sentiment) VALUES (?, ?, ?, ?)",
			e.ID, e.Timestamp, e.Entry, string(e.Sentiment),
		)
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
