package services

import (
	"errors"
	"fmt"
)

// Pipeline errors. Record-level failures are wrapped in a *RecordError.
var (
	ErrSchemaCollision    = errors.New("schema collision")
	ErrEmptyColumnLabel   = errors.New("column label normalizes to an empty name")
	ErrMissingColumn      = errors.New("required column missing")
	ErrInvalidField       = errors.New("invalid field value")
	ErrCurrencyResolution = errors.New("currency resolution failed")
	ErrRateNotFound       = errors.New("exchange rate not found")
	ErrInvalidRate        = errors.New("exchange rate must be finite and positive")
	ErrCountryNotFound    = errors.New("country not found")
	ErrNoData             = errors.New("no data for this selection")
)

// RecordError ties a record-level failure to the record that caused it.
// Row is the position of the record in the cleaned record set.
type RecordError struct {
	Row          int
	RestaurantID int64
	Err          error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (restaurant_id %d): %v", e.Row, e.RestaurantID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
