package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"restaurant-explorer/models"
)

const snapshotTable = "restaurants"

// snapshotColumns are the columns every SQL backend inserts, in order.
var snapshotColumns = append([]string{"run_id"}, models.CanonicalColumns...)

// insertStatement builds a multi-row INSERT. placeholder maps a 1-based
// argument position to the driver's bind syntax.
func insertStatement(rows int, placeholder func(n int) string) string {
	width := len(snapshotColumns)
	groups := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		marks := make([]string, width)
		for c := 0; c < width; c++ {
			marks[c] = placeholder(r*width + c + 1)
		}
		groups = append(groups, "("+strings.Join(marks, ",")+")")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		snapshotTable, strings.Join(snapshotColumns, ", "), strings.Join(groups, ","))
}

func snapshotArgs(runID string, r *models.Restaurant) []any {
	return []any{
		runID,
		r.RestaurantID, r.RestaurantName, r.CountryCode, r.City, r.Address,
		r.Locality, r.LocalityVerbose, r.Longitude, r.Latitude, r.Cuisines,
		r.AverageCostForTwo, r.Currency, r.HasTableBooking, r.HasOnlineDelivery,
		r.IsDeliveringNow, r.PriceRange, r.AggregateRating, r.RatingColor,
		r.RatingText, r.Votes, r.UnifiedPrice, r.CountryName,
	}
}

// insertBatches writes records in groups of batchSize through exec.
func insertBatches(exec func(query string, args ...any) (sql.Result, error), placeholder func(int) string, snap *models.Snapshot, batchSize int) error {
	for i := 0; i < len(snap.Records); i += batchSize {
		end := i + batchSize
		if end > len(snap.Records) {
			end = len(snap.Records)
		}
		batch := snap.Records[i:end]

		args := make([]any, 0, len(batch)*len(snapshotColumns))
		for _, r := range batch {
			args = append(args, snapshotArgs(snap.RunID, r)...)
		}
		if _, err := exec(insertStatement(len(batch), placeholder), args...); err != nil {
			return fmt.Errorf("insert batch at %d: %w", i, err)
		}
	}
	return nil
}

// fetchSnapshot reads back the rows of one run in insertion order.
func fetchSnapshot(db *sql.DB, query string, runID string) ([]*models.Restaurant, error) {
	rows, err := db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Restaurant
	for rows.Next() {
		r := &models.Restaurant{}
		if err := rows.Scan(
			&r.RestaurantID, &r.RestaurantName, &r.CountryCode, &r.City, &r.Address,
			&r.Locality, &r.LocalityVerbose, &r.Longitude, &r.Latitude, &r.Cuisines,
			&r.AverageCostForTwo, &r.Currency, &r.HasTableBooking, &r.HasOnlineDelivery,
			&r.IsDeliveringNow, &r.PriceRange, &r.AggregateRating, &r.RatingColor,
			&r.RatingText, &r.Votes, &r.UnifiedPrice, &r.CountryName,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func selectSnapshotQuery(bind string) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE run_id = %s ORDER BY id",
		strings.Join(models.CanonicalColumns, ", "), snapshotTable, bind)
}
