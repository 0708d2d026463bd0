package services

import "restaurant-explorer/models"

// UnifiedPriceCeiling is a fixed cutoff, not a statistical outlier test: the
// dataset holds a handful of prices that would dominate every average.
const UnifiedPriceCeiling = 160000.0

// OutlierFilter drops records priced at or above a ceiling.
type OutlierFilter struct {
	ceiling float64
}

// NewOutlierFilter creates a filter using UnifiedPriceCeiling.
func NewOutlierFilter() *OutlierFilter {
	return &OutlierFilter{ceiling: UnifiedPriceCeiling}
}

// Apply keeps only records with UnifiedPrice strictly below the ceiling and
// reports how many were dropped.
func (f *OutlierFilter) Apply(records []*models.Restaurant) ([]*models.Restaurant, int) {
	kept := make([]*models.Restaurant, 0, len(records))
	for _, r := range records {
		if r.UnifiedPrice < f.ceiling {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}
