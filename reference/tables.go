package reference

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKeyNotFound is returned when a lookup key is outside a closed table.
var ErrKeyNotFound = errors.New("reference: key not found")

// Price tier labels.
const (
	TierCheap     = "cheap"
	TierNormal    = "normal"
	TierExpensive = "expensive"
	TierGourmet   = "gourmet"
)

// Tables holds the immutable lookup tables shared by the pipeline and the
// insight service. Build it once with Default and pass it explicitly.
type Tables struct {
	countries  map[int]string
	currencies map[int]string
	colors     map[string]string
}

// Default returns the tables for the country codes present in the dataset.
func Default() *Tables {
	return &Tables{
		countries: map[int]string{
			1:   "India",
			14:  "Australia",
			30:  "Brazil",
			37:  "Canada",
			94:  "Indonesia",
			148: "New Zeland",
			162: "Philippines",
			166: "Qatar",
			184: "Singapure",
			189: "South Africa",
			191: "Sri Lanka",
			208: "Turkey",
			214: "United Arab Emirates",
			215: "England",
			216: "United States of America",
		},
		currencies: map[int]string{
			1:   "INR",
			14:  "AUD",
			30:  "BRL",
			37:  "CAD",
			94:  "IDR",
			148: "NZD",
			162: "PHP",
			166: "QAR",
			184: "SGD",
			189: "ZAR",
			191: "LKR",
			208: "TRY",
			214: "AED",
			215: "GBP",
			216: "USD",
		},
		colors: map[string]string{
			"3F7E00": "darkgreen",
			"5BA829": "green",
			"9ACD32": "lightgreen",
			"CDD614": "orange",
			"FFBA00": "red",
			"CBCBC8": "darkred",
			"FF7800": "darkred",
		},
	}
}

// CountryName resolves a numeric country code to its display name.
func (t *Tables) CountryName(code int) (string, error) {
	name, ok := t.countries[code]
	if !ok {
		return "", fmt.Errorf("%w: country code %d", ErrKeyNotFound, code)
	}
	return name, nil
}

// CurrencyCode resolves a numeric country code to its ISO currency code.
func (t *Tables) CurrencyCode(code int) (string, error) {
	cur, ok := t.currencies[code]
	if !ok {
		return "", fmt.Errorf("%w: currency for country code %d", ErrKeyNotFound, code)
	}
	return cur, nil
}

// ColorLabel maps a rating hex color ("5BA829", "#5ba829") to its label.
func (t *Tables) ColorLabel(hex string) (string, error) {
	key := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	label, ok := t.colors[key]
	if !ok {
		return "", fmt.Errorf("%w: rating color %q", ErrKeyNotFound, hex)
	}
	return label, nil
}

// PriceTier maps a price range ordinal to a tier label. Anything other than
// 1, 2 or 3 is gourmet, including zero and negative values.
func PriceTier(priceRange int) string {
	switch priceRange {
	case 1:
		return TierCheap
	case 2:
		return TierNormal
	case 3:
		return TierExpensive
	default:
		return TierGourmet
	}
}

// PriceTier is the method form of the package-level PriceTier.
func (t *Tables) PriceTier(priceRange int) string {
	return PriceTier(priceRange)
}

// Countries returns a copy of the country name table.
func (t *Tables) Countries() map[int]string {
	return copyMap(t.countries)
}

// Currencies returns a copy of the currency code table.
func (t *Tables) Currencies() map[int]string {
	return copyMap(t.currencies)
}

// Colors returns a copy of the rating color table.
func (t *Tables) Colors() map[string]string {
	return copyMap(t.colors)
}

func copyMap[K comparable](m map[K]string) map[K]string {
	out := make(map[K]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
