package models

import "time"

// Canonical column labels, in export order.
const (
	ColRestaurantID      = "restaurant_id"
	ColRestaurantName    = "restaurant_name"
	ColCountryCode       = "country_code"
	ColCity              = "city"
	ColAddress           = "address"
	ColLocality          = "locality"
	ColLocalityVerbose   = "locality_verbose"
	ColLongitude         = "longitude"
	ColLatitude          = "latitude"
	ColCuisines          = "cuisines"
	ColAverageCostForTwo = "average_cost_for_two"
	ColCurrency          = "currency"
	ColHasTableBooking   = "has_table_booking"
	ColHasOnlineDelivery = "has_online_delivery"
	ColIsDeliveringNow   = "is_delivering_now"
	ColSwitchToOrderMenu = "switch_to_order_menu"
	ColPriceRange        = "price_range"
	ColAggregateRating   = "aggregate_rating"
	ColRatingColor       = "rating_color"
	ColRatingText        = "rating_text"
	ColVotes             = "votes"
	ColUnifiedPrice      = "unified_price"
	ColCountryName       = "country_name"
)

// CanonicalColumns lists the columns of an exported Restaurant.
var CanonicalColumns = []string{
	ColRestaurantID, ColRestaurantName, ColCountryCode, ColCity, ColAddress,
	ColLocality, ColLocalityVerbose, ColLongitude, ColLatitude, ColCuisines,
	ColAverageCostForTwo, ColCurrency, ColHasTableBooking, ColHasOnlineDelivery,
	ColIsDeliveringNow, ColPriceRange, ColAggregateRating, ColRatingColor,
	ColRatingText, ColVotes, ColUnifiedPrice, ColCountryName,
}

// Restaurant is a cleaned, single-cuisine record enriched with a unified
// price and a country name.
type Restaurant struct {
	Row               int
	RestaurantID      int64
	RestaurantName    string
	CountryCode       int
	City              string
	Address           string
	Locality          string
	LocalityVerbose   string
	Longitude         float64
	Latitude          float64
	Cuisines          string
	AverageCostForTwo float64
	Currency          string
	HasTableBooking   int
	HasOnlineDelivery int
	IsDeliveringNow   int
	PriceRange        int
	AggregateRating   float64
	RatingColor       string
	RatingText        string
	Votes             int64
	UnifiedPrice      float64
	CountryName       string
}

// Clone returns an independent copy of the record.
func (r *Restaurant) Clone() *Restaurant {
	c := *r
	return &c
}

// LoadStats counts what each stage kept and dropped during one load.
type LoadStats struct {
	RawRows           int
	DroppedNoCuisine  int
	DroppedDuplicates int
	SkippedInvalid    int
	DroppedOutliers   int
	Canonical         int
}

// Dataset is the canonical record set produced by one pipeline run.
type Dataset struct {
	RunID    string
	LoadedAt time.Time
	Records  []*Restaurant
	Stats    LoadStats
}

// Snapshot is a record set handed to an export backend.
type Snapshot struct {
	RunID     string
	CreatedAt time.Time
	Records   []*Restaurant
}
