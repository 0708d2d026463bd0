package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"restaurant-explorer/models"
)

// CSVWriter writes snapshot records to a CSV file with a canonical header.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(models.CanonicalColumns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends the snapshot records.
func (c *CSVWriter) Write(snap *models.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := writeRows(c.writer, snap.Records); err != nil {
		return err
	}
	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// EncodeCSV writes a header and the records to w, for in-memory downloads.
func EncodeCSV(w io.Writer, records []*models.Restaurant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.CanonicalColumns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := writeRows(cw, records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeRows(w *csv.Writer, records []*models.Restaurant) error {
	for _, r := range records {
		if err := w.Write(recordRow(r)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	return nil
}
