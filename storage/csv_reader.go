package storage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"restaurant-explorer/models"
)

// ErrEmptyDataset is returned when the dataset file has no header row.
var ErrEmptyDataset = errors.New("csv: dataset has no header row")

// CSVDatasetReader reads the raw restaurant dataset from a delimited file.
type CSVDatasetReader struct {
	path string
}

// NewCSVDatasetReader creates a reader for the file at path. Nothing is read
// until ReadDataset is called.
func NewCSVDatasetReader(path string) *CSVDatasetReader {
	return &CSVDatasetReader{path: path}
}

// ReadDataset reads the whole file. Every call re-reads it from disk.
func (r *CSVDatasetReader) ReadDataset() (*models.RawTable, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open dataset %q: %w", r.path, err)
	}
	defer f.Close()

	table, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("csv: read dataset %q: %w", r.path, err)
	}
	return table, nil
}

// ReadTable parses a header row followed by data rows. Every row must have
// as many fields as the header.
func ReadTable(src io.Reader) (*models.RawTable, error) {
	buf := bufio.NewReaderSize(src, 256*1024)

	// Skip UTF-8 BOM if present
	if bom, err := buf.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	table := &models.RawTable{Header: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
