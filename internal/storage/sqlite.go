// Package storage provides a SQLite catalog of imported maps.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/natrix/internal/grid"
)

// ErrNotFound is returned when a map name is not in the catalog.
var ErrNotFound = errors.New("storage: map not found")

// Store manages the SQLite database connection for the map catalog.
type Store struct {
	db *sql.DB
}

// MapEntry is one catalog row. Body holds the map in text format.
type MapEntry struct {
	Name      string
	Body      string
	Origin    string // where the map was imported from
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Map parses the stored body.
func (e MapEntry) Map() (*grid.Map, error) {
	return grid.Parse(e.Body)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS maps (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			origin TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMap stores m under its name, replacing any map of the same name.
func (s *Store) SaveMap(m *grid.Map, origin string) error {
	_, err := s.db.Exec(
		`INSERT INTO maps (name, body, origin) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			origin = excluded.origin,
			updated_at = CURRENT_TIMESTAMP`,
		m.Name, m.Text(), origin,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save map %q: %w", m.Name, err)
	}
	return nil
}

// ImportText validates a map in text format and saves it.
func (s *Store) ImportText(text, origin string) (*grid.Map, error) {
	m, err := grid.Parse(text)
	if err != nil {
		return nil, err
	}
	if err := s.SaveMap(m, origin); err != nil {
		return nil, err
	}
	return m, nil
}

// Map retrieves a catalog entry by name.
func (s *Store) Map(name string) (*MapEntry, error) {
	var e MapEntry
	var createdAt, updatedAt any

	err := s.db.QueryRow(
		`SELECT name, body, origin, created_at, updated_at
		 FROM maps
		 WHERE name = ?`,
		name,
	).Scan(&e.Name, &e.Body, &e.Origin, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query map: %w", err)
	}

	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

// Maps retrieves all catalog entries ordered by name.
func (s *Store) Maps() ([]MapEntry, error) {
	rows, err := s.db.Query(
		`SELECT name, body, origin, created_at, updated_at
		 FROM maps
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query maps: %w", err)
	}
	defer rows.Close()

	var entries []MapEntry
	for rows.Next() {
		var e MapEntry
		var createdAt, updatedAt any
		if err := rows.Scan(&e.Name, &e.Body, &e.Origin, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// GridMaps parses every catalog entry. Entries that fail to parse are
// skipped and reported in the returned error alongside the valid maps.
func (s *Store) GridMaps() ([]*grid.Map, error) {
	entries, err := s.Maps()
	if err != nil {
		return nil, err
	}

	var maps []*grid.Map
	var errs []error
	for _, e := range entries {
		m, err := e.Map()
		if err != nil {
			errs = append(errs, fmt.Errorf("storage: map %q: %w", e.Name, err))
			continue
		}
		maps = append(maps, m)
	}
	return maps, errors.Join(errs...)
}

// DeleteMap removes a map from the catalog.
func (s *Store) DeleteMap(name string) error {
	res, err := s.db.Exec("DELETE FROM maps WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete map: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// Count returns the number of maps in the catalog.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM maps").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count maps: %w", err)
	}
	return n, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
