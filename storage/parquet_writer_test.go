package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestParquetWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "restaurants.parquet")

	w, err := NewParquetWriter(path)
	if err != nil {
		t.Fatalf("NewParquetWriter: %v", err)
	}
	snap := sampleSnapshot()
	if err := w.Write(snap); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("parquet file is empty")
	}

	rows, err := parquet.ReadFile[RestaurantRow](path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0] != toParquetRow(snap.RunID, snap.Records[0]) {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].RunID != snap.RunID || rows[1].CountryName != "United States of America" {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if rows[1].UnifiedPrice != 25.5 {
		t.Errorf("row 1 unified_price = %v; want 25.5", rows[1].UnifiedPrice)
	}
}
