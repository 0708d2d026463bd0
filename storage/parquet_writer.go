package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"restaurant-explorer/models"
)

// RestaurantRow is the Parquet schema of an exported restaurant. One row per
// record, tagged with the run that produced it.
type RestaurantRow struct {
	RunID             string  `parquet:"run_id"`
	RestaurantID      int64   `parquet:"restaurant_id"`
	RestaurantName    string  `parquet:"restaurant_name"`
	CountryCode       int32   `parquet:"country_code"`
	City              string  `parquet:"city"`
	Address           string  `parquet:"address"`
	Locality          string  `parquet:"locality"`
	LocalityVerbose   string  `parquet:"locality_verbose"`
	Longitude         float64 `parquet:"longitude"`
	Latitude          float64 `parquet:"latitude"`
	Cuisines          string  `parquet:"cuisines"`
	AverageCostForTwo float64 `parquet:"average_cost_for_two"`
	Currency          string  `parquet:"currency"`
	HasTableBooking   int32   `parquet:"has_table_booking"`
	HasOnlineDelivery int32   `parquet:"has_online_delivery"`
	IsDeliveringNow   int32   `parquet:"is_delivering_now"`
	PriceRange        int32   `parquet:"price_range"`
	AggregateRating   float64 `parquet:"aggregate_rating"`
	RatingColor       string  `parquet:"rating_color"`
	RatingText        string  `parquet:"rating_text"`
	Votes             int64   `parquet:"votes"`
	UnifiedPrice      float64 `parquet:"unified_price"`
	CountryName       string  `parquet:"country_name"`
}

func toParquetRow(runID string, r *models.Restaurant) RestaurantRow {
	return RestaurantRow{
		RunID:             runID,
		RestaurantID:      r.RestaurantID,
		RestaurantName:    r.RestaurantName,
		CountryCode:       int32(r.CountryCode),
		City:              r.City,
		Address:           r.Address,
		Locality:          r.Locality,
		LocalityVerbose:   r.LocalityVerbose,
		Longitude:         r.Longitude,
		Latitude:          r.Latitude,
		Cuisines:          r.Cuisines,
		AverageCostForTwo: r.AverageCostForTwo,
		Currency:          r.Currency,
		HasTableBooking:   int32(r.HasTableBooking),
		HasOnlineDelivery: int32(r.HasOnlineDelivery),
		IsDeliveringNow:   int32(r.IsDeliveringNow),
		PriceRange:        int32(r.PriceRange),
		AggregateRating:   r.AggregateRating,
		RatingColor:       r.RatingColor,
		RatingText:        r.RatingText,
		Votes:             r.Votes,
		UnifiedPrice:      r.UnifiedPrice,
		CountryName:       r.CountryName,
	}
}

// ParquetWriter writes snapshot records to a Snappy-compressed Parquet file.
type ParquetWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[RestaurantRow]
}

// NewParquetWriter creates (or truncates) the Parquet file at path.
func NewParquetWriter(path string) (*ParquetWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("parquet: create output dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("parquet: create file %q: %w", path, err)
	}
	writer := parquet.NewGenericWriter[RestaurantRow](file,
		parquet.Compression(&parquet.Snappy),
	)
	return &ParquetWriter{file: file, writer: writer}, nil
}

// Write appends the snapshot records.
func (w *ParquetWriter) Write(snap *models.Snapshot) error {
	rows := make([]RestaurantRow, len(snap.Records))
	for i, r := range snap.Records {
		rows[i] = toParquetRow(snap.RunID, r)
	}
	if _, err := w.writer.Write(rows); err != nil {
		return fmt.Errorf("parquet: write rows: %w", err)
	}
	return nil
}

// Close flushes and closes the writer.
func (w *ParquetWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("parquet: close writer: %w", err)
	}
	return w.file.Close()
}
