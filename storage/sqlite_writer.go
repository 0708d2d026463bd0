package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"restaurant-explorer/models"
)

// SQLiteWriter stores snapshots in a local SQLite file.
type SQLiteWriter struct {
	conn *sql.DB
}

// NewSQLiteWriter opens (or creates) the SQLite file at path.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// single writer
	conn.SetMaxOpenConns(1)

	sw := &SQLiteWriter{conn: conn}
	if err := sw.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return sw, nil
}

func (sw *SQLiteWriter) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			restaurant_id INTEGER NOT NULL,
			restaurant_name TEXT NOT NULL DEFAULT '',
			country_code INTEGER NOT NULL,
			city TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			locality TEXT NOT NULL DEFAULT '',
			locality_verbose TEXT NOT NULL DEFAULT '',
			longitude REAL NOT NULL DEFAULT 0,
			latitude REAL NOT NULL DEFAULT 0,
			cuisines TEXT NOT NULL,
			average_cost_for_two REAL NOT NULL,
			currency TEXT NOT NULL DEFAULT '',
			has_table_booking INTEGER NOT NULL DEFAULT 0,
			has_online_delivery INTEGER NOT NULL DEFAULT 0,
			is_delivering_now INTEGER NOT NULL DEFAULT 0,
			price_range INTEGER NOT NULL DEFAULT 0,
			aggregate_rating REAL NOT NULL DEFAULT 0,
			rating_color TEXT NOT NULL DEFAULT '',
			rating_text TEXT NOT NULL DEFAULT '',
			votes INTEGER NOT NULL DEFAULT 0,
			unified_price REAL NOT NULL,
			country_name TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurants_run ON restaurants(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_restaurants_country ON restaurants(country_name)`,
	}
	for _, m := range migrations {
		if _, err := sw.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Write replaces the stored snapshot.
func (sw *SQLiteWriter) Write(snap *models.Snapshot) error {
	tx, err := sw.conn.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM restaurants"); err != nil {
		return fmt.Errorf("sqlite: clear: %w", err)
	}

	const batchSize = 100
	if err := insertBatches(tx.Exec, sqlitePlaceholder, snap, batchSize); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// FetchAll returns the stored records of a run.
func (sw *SQLiteWriter) FetchAll(runID string) ([]*models.Restaurant, error) {
	out, err := fetchSnapshot(sw.conn, selectSnapshotQuery("?"), runID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetch all: %w", err)
	}
	return out, nil
}

// Close closes the database connection.
func (sw *SQLiteWriter) Close() error {
	return sw.conn.Close()
}

func sqlitePlaceholder(int) string { return "?" }
