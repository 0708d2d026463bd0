package services

import (
	"fmt"

	"restaurant-explorer/models"
	"restaurant-explorer/reference"
)

// Enricher derives display fields that are stored on the canonical record.
type Enricher struct {
	tables *reference.Tables
}

// NewEnricher creates an Enricher over the given tables.
func NewEnricher(tables *reference.Tables) *Enricher {
	return &Enricher{tables: tables}
}

// Enrich returns a copy of r with CountryName resolved from CountryCode.
func (e *Enricher) Enrich(r *models.Restaurant) (*models.Restaurant, error) {
	name, err := e.tables.CountryName(r.CountryCode)
	if err != nil {
		return nil, &RecordError{
			Row:          r.Row,
			RestaurantID: r.RestaurantID,
			Err:          fmt.Errorf("%w: %w", ErrCountryNotFound, err),
		}
	}

	out := r.Clone()
	out.CountryName = name
	return out, nil
}
