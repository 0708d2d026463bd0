package models

// ExchangeRates maps a currency code ("USD", "BRL") to the number of local
// units per one reference-currency unit. It is read-only once loaded.
type ExchangeRates map[string]float64

// Lookup returns the rate for code and whether it is present.
func (r ExchangeRates) Lookup(code string) (float64, bool) {
	rate, ok := r[code]
	return rate, ok
}
