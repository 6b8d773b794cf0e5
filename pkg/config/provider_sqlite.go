package config

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements Provider by storing a single configuration
// document as JSON in a local SQLite database, allowing an operator to
// edit configuration at runtime through a management API rather than
// hand-editing a YAML file.
type SQLiteProvider struct {
	db *sql.DB
}

const sqliteConfigSchema = `
CREATE TABLE IF NOT EXISTS service_config (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);
`

// NewSQLiteProvider opens (creating if necessary) the SQLite database at
// path and ensures its schema exists.
func NewSQLiteProvider(path string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("config: opening sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteConfigSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("config: creating schema: %w", err)
	}
	return &SQLiteProvider{db: db}, nil
}

// Load reads the stored configuration document. If none has been saved
// yet, it returns the zero-value Data.
func (p *SQLiteProvider) Load() (*Data, error) {
	var raw string
	err := p.db.QueryRow(`SELECT data FROM service_config WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return &Data{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: loading config row: %w", err)
	}
	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("config: parsing stored config: %w", err)
	}
	return &data, nil
}

// Save upserts the configuration document.
func (p *SQLiteProvider) Save(data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("config: marshaling config: %w", err)
	}
	_, err = p.db.Exec(`
		INSERT INTO service_config (id, data) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`, string(raw))
	if err != nil {
		return fmt.Errorf("config: saving config row: %w", err)
	}
	return nil
}

// IsReadOnly is always false for the SQLite provider.
func (p *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close releases the underlying database connection.
func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}
