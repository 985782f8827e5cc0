package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrisonrobin/lockin/pkg/model"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLite stores the task list as one JSON value in a key/value table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Load() ([]model.Task, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, Key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.Task{}, nil
	}
	if err != nil {
		return []model.Task{}, fmt.Errorf("load query failed: %w", err)
	}
	return decode([]byte(value))
}

func (s *SQLite) Save(tasks []model.Task) error {
	b, err := encode(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, Key, string(b))
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	return nil
}

