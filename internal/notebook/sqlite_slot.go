package notebook

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const slotSchema = `
CREATE TABLE IF NOT EXISTS slots (
	name       TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteSlot stores the notebook payload as one row of a SQLite database
type SQLiteSlot struct {
	db   *sqlx.DB
	name string
}

// OpenSQLiteSlot opens (or creates) the database at path and uses the row named name
func OpenSQLiteSlot(path, name string) (*SQLiteSlot, error) {
	if name == "" {
		name = DefaultSlotName
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(slotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteSlot{db: db, name: name}, nil
}

func (s *SQLiteSlot) Name() string { return s.name }

func (s *SQLiteSlot) Load() ([]byte, error) {
	var data string
	err := s.db.Get(&data, `SELECT data FROM slots WHERE name = ?`, s.name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", s.name, err)
	}
	return []byte(data), nil
}

func (s *SQLiteSlot) Save(data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO slots (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.name, string(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", s.name, err)
	}
	return nil
}

// Close releases the database connection
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
