package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"restaurant-explorer/models"
)

var requiredColumns = []string{
	models.ColCountryCode,
	models.ColAverageCostForTwo,
	models.ColCuisines,
}

// Decoder turns rows of a cleaned table into typed restaurants.
type Decoder struct {
	index   map[string]int
	unknown []string
}

// NewDecoder prepares a decoder for the given canonical header.
func NewDecoder(header []string) (*Decoder, error) {
	known := make(map[string]struct{}, len(models.CanonicalColumns))
	for _, col := range models.CanonicalColumns {
		known[col] = struct{}{}
	}

	d := &Decoder{index: make(map[string]int, len(header))}
	for i, h := range header {
		d.index[h] = i
		if _, ok := known[h]; !ok {
			d.unknown = append(d.unknown, h)
		}
	}

	for _, col := range requiredColumns {
		if _, ok := d.index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return d, nil
}

// Unknown lists header columns that do not map to a Restaurant field.
func (d *Decoder) Unknown() []string {
	return d.unknown
}

// Decode converts one row. row is the position used in error reports.
func (d *Decoder) Decode(row int, cells []string) (*models.Restaurant, error) {
	p := &rowParser{index: d.index, cells: cells}

	r := &models.Restaurant{
		Row:               row,
		RestaurantID:      p.integer(models.ColRestaurantID),
		RestaurantName:    p.text(models.ColRestaurantName),
		CountryCode:       int(p.integer(models.ColCountryCode)),
		City:              p.text(models.ColCity),
		Address:           p.text(models.ColAddress),
		Locality:          p.text(models.ColLocality),
		LocalityVerbose:   p.text(models.ColLocalityVerbose),
		Longitude:         p.number(models.ColLongitude),
		Latitude:          p.number(models.ColLatitude),
		Cuisines:          p.text(models.ColCuisines),
		AverageCostForTwo: p.number(models.ColAverageCostForTwo),
		Currency:          p.text(models.ColCurrency),
		HasTableBooking:   int(p.integer(models.ColHasTableBooking)),
		HasOnlineDelivery: int(p.integer(models.ColHasOnlineDelivery)),
		IsDeliveringNow:   int(p.integer(models.ColIsDeliveringNow)),
		PriceRange:        int(p.integer(models.ColPriceRange)),
		AggregateRating:   p.number(models.ColAggregateRating),
		RatingColor:       p.text(models.ColRatingColor),
		RatingText:        p.text(models.ColRatingText),
		Votes:             p.integer(models.ColVotes),
	}

	if p.err == nil && strings.TrimSpace(p.raw(models.ColCountryCode)) == "" {
		p.err = fmt.Errorf("%w: %s is empty", ErrInvalidField, models.ColCountryCode)
	}
	if p.err == nil && strings.TrimSpace(p.raw(models.ColAverageCostForTwo)) == "" {
		p.err = fmt.Errorf("%w: %s is empty", ErrInvalidField, models.ColAverageCostForTwo)
	}
	if p.err != nil {
		return nil, &RecordError{Row: row, RestaurantID: r.RestaurantID, Err: p.err}
	}
	return r, nil
}

// rowParser keeps the first parse error so Decode reads as a flat list.
type rowParser struct {
	index map[string]int
	cells []string
	err   error
}

func (p *rowParser) raw(col string) string {
	i, ok := p.index[col]
	if !ok || i >= len(p.cells) {
		return ""
	}
	return p.cells[i]
}

func (p *rowParser) text(col string) string {
	return strings.TrimSpace(p.raw(col))
}

func (p *rowParser) number(col string) float64 {
	s := p.text(col)
	if s == "" || p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.err = fmt.Errorf("%w: %s=%q", ErrInvalidField, col, s)
		return 0
	}
	return v
}

// integer accepts integral floats ("30.0") as written by spreadsheet exports.
func (p *rowParser) integer(col string) int64 {
	s := p.text(col)
	if s == "" || p.err != nil {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		p.err = fmt.Errorf("%w: %s=%q", ErrInvalidField, col, s)
		return 0
	}
	return int64(f)
}
