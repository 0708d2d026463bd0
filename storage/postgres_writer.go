package storage

import (
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/lib/pq"

	"restaurant-explorer/models"
	"restaurant-explorer/utils"
)

// PostgresWriter persists snapshots to PostgreSQL. Each Write replaces the
// previous snapshot.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter. The initial ping is retried.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS restaurants (
			id                   BIGSERIAL PRIMARY KEY,
			run_id               UUID             NOT NULL,
			restaurant_id        BIGINT           NOT NULL,
			restaurant_name      TEXT             NOT NULL DEFAULT '',
			country_code         INTEGER          NOT NULL,
			city                 TEXT             NOT NULL DEFAULT '',
			address              TEXT             NOT NULL DEFAULT '',
			locality             TEXT             NOT NULL DEFAULT '',
			locality_verbose     TEXT             NOT NULL DEFAULT '',
			longitude            DOUBLE PRECISION NOT NULL DEFAULT 0,
			latitude             DOUBLE PRECISION NOT NULL DEFAULT 0,
			cuisines             TEXT             NOT NULL,
			average_cost_for_two DOUBLE PRECISION NOT NULL,
			currency             TEXT             NOT NULL DEFAULT '',
			has_table_booking    SMALLINT         NOT NULL DEFAULT 0,
			has_online_delivery  SMALLINT         NOT NULL DEFAULT 0,
			is_delivering_now    SMALLINT         NOT NULL DEFAULT 0,
			price_range          SMALLINT         NOT NULL DEFAULT 0,
			aggregate_rating     DOUBLE PRECISION NOT NULL DEFAULT 0,
			rating_color         TEXT             NOT NULL DEFAULT '',
			rating_text          TEXT             NOT NULL DEFAULT '',
			votes                BIGINT           NOT NULL DEFAULT 0,
			unified_price        DOUBLE PRECISION NOT NULL,
			country_name         TEXT             NOT NULL,
			created_at           TIMESTAMPTZ      NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_restaurants_run      ON restaurants(run_id);
		CREATE INDEX IF NOT EXISTS idx_restaurants_country  ON restaurants(country_name);
		CREATE INDEX IF NOT EXISTS idx_restaurants_cuisines ON restaurants(cuisines);
		CREATE INDEX IF NOT EXISTS idx_restaurants_rating   ON restaurants(aggregate_rating);
	`)
	return err
}

// Write replaces the stored snapshot inside one transaction.
func (pw *PostgresWriter) Write(snap *models.Snapshot) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM restaurants"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	if err := insertBatches(tx.Exec, postgresPlaceholder, snap, batchSize); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// FetchAll retrieves the stored records of a run in insertion order.
func (pw *PostgresWriter) FetchAll(runID string) ([]*models.Restaurant, error) {
	out, err := fetchSnapshot(pw.db, selectSnapshotQuery("$1"), runID)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	return out, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func postgresPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}
