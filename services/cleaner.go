package services

import (
	"fmt"
	"strconv"
	"strings"

	"restaurant-explorer/models"
	"restaurant-explorer/utils"
)

// ConstantColumn carries the same value in every row and is dropped.
const ConstantColumn = models.ColSwitchToOrderMenu


// CleanStats reports how many rows each cleaning step dropped.
type CleanStats struct {
	Input      int
	NoCuisine  int
	Duplicates int
	Output     int
}

// Cleaner removes invalid and duplicate rows from a normalized table and
// collapses the cuisines field to a single value.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean applies, in order: drop the constant column, drop rows without a
// cuisine, drop full-row duplicates (first one wins), keep only the first
// cuisine of each row. The input table is left untouched.
func (c *Cleaner) Clean(in *models.RawTable) (*models.RawTable, CleanStats, error) {
	stats := CleanStats{Input: len(in.Rows)}

	table := c.dropColumn(in, ConstantColumn)

	cuisineIdx := table.ColumnIndex(models.ColCuisines)
	if cuisineIdx < 0 {
		return nil, stats, fmt.Errorf("%w: %s", ErrMissingColumn, models.ColCuisines)
	}

	seen := utils.NewKeySet()
	rows := make([][]string, 0, len(table.Rows))

	for i, row := range table.Rows {
		if strings.TrimSpace(row[cuisineIdx]) == "" {
			c.logger.Debug("[cleaner] Dropping row %d without cuisine", i)
			stats.NoCuisine++
			continue
		}

		if !seen.Add(rowKey(row)) {
			c.logger.Debug("[cleaner] Duplicate row %d skipped", i)
			stats.Duplicates++
			continue
		}

		rows = append(rows, row)
	}

	// Collapse after deduplication so rows differing only in secondary
	// cuisines stay distinct.
	out := &models.RawTable{Header: table.Header, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		cuisine := PrimaryCuisine(row[cuisineIdx])
		if cuisine == "" {
			c.logger.Debug("[cleaner] Dropping row with empty leading cuisine: %q", row[cuisineIdx])
			stats.NoCuisine++
			continue
		}
		row[cuisineIdx] = cuisine
		out.Rows = append(out.Rows, row)
	}

	stats.Output = len(out.Rows)
	c.logger.Debug("[cleaner] %d distinct rows seen", seen.Size())
	c.logger.Info("[cleaner] Cleaned %d → %d rows (no cuisine %d, duplicates %d)",
		stats.Input, stats.Output, stats.NoCuisine, stats.Duplicates)
	return out, stats, nil
}

// rowKey identifies a full row. Each cell is length-prefixed so no cell
// content can shift a boundary.
func rowKey(row []string) string {
	var b strings.Builder
	for _, cell := range row {
		b.WriteString(strconv.Itoa(len(cell)))
		b.WriteByte(':')
		b.WriteString(cell)
	}
	return b.String()
}

// dropColumn returns a copy of the table without the named column. Rows are
// padded or cut to the header width.
func (c *Cleaner) dropColumn(in *models.RawTable, name string) *models.RawTable {
	drop := in.ColumnIndex(name)
	if drop < 0 {
		c.logger.Debug("[cleaner] Column %s not present, nothing to drop", name)
	}

	width := len(in.Header)
	out := &models.RawTable{
		Header: make([]string, 0, width),
		Rows:   make([][]string, len(in.Rows)),
	}
	for i, h := range in.Header {
		if i != drop {
			out.Header = append(out.Header, h)
		}
	}

	for r, row := range in.Rows {
		cells := make([]string, 0, width)
		for i := 0; i < width; i++ {
			if i == drop {
				continue
			}
			if i < len(row) {
				cells = append(cells, row[i])
			} else {
				cells = append(cells, "")
			}
		}
		out.Rows[r] = cells
	}
	return out
}

// PrimaryCuisine returns the first entry of a comma-separated cuisines list,
// trimmed: "Brazilian, Grill" → "Brazilian".
func PrimaryCuisine(cuisines string) string {
	first, _, _ := strings.Cut(cuisines, ",")
	return strings.TrimSpace(first)
}
