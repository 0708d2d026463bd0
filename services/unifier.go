package services

import (
	"fmt"
	"math"

	"restaurant-explorer/models"
	"restaurant-explorer/reference"
)

// CurrencyUnifier expresses each record's average cost for two in the
// reference currency.
type CurrencyUnifier struct {
	tables *reference.Tables
	rates  models.ExchangeRates
}

// NewCurrencyUnifier creates a unifier over the given tables and rates.
func NewCurrencyUnifier(tables *reference.Tables, rates models.ExchangeRates) *CurrencyUnifier {
	return &CurrencyUnifier{tables: tables, rates: rates}
}

// Rate resolves the exchange rate that applies to a country code.
func (u *CurrencyUnifier) Rate(countryCode int) (float64, error) {
	currency, err := u.tables.CurrencyCode(countryCode)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCurrencyResolution, err)
	}

	rate, ok := u.rates.Lookup(currency)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrRateNotFound, currency)
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: %s=%v", ErrInvalidRate, currency, rate)
	}
	return rate, nil
}

// Unify returns a copy of r with UnifiedPrice set to
// round(average_cost_for_two / rate, 2).
func (u *CurrencyUnifier) Unify(r *models.Restaurant) (*models.Restaurant, error) {
	rate, err := u.Rate(r.CountryCode)
	if err != nil {
		return nil, &RecordError{Row: r.Row, RestaurantID: r.RestaurantID, Err: err}
	}

	out := r.Clone()
	out.UnifiedPrice = RoundTo(r.AverageCostForTwo/rate, 2)
	return out, nil
}

// RoundTo rounds to the given number of decimals, exact ties going to the
// even neighbour (0.125 -> 0.12).
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*p) / p
}
