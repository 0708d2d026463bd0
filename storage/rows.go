package storage

import (
	"strconv"

	"restaurant-explorer/models"
)

// recordRow renders a restaurant in models.CanonicalColumns order.
func recordRow(r *models.Restaurant) []string {
	return []string{
		strconv.FormatInt(r.RestaurantID, 10),
		r.RestaurantName,
		strconv.Itoa(r.CountryCode),
		r.City,
		r.Address,
		r.Locality,
		r.LocalityVerbose,
		formatFloat(r.Longitude),
		formatFloat(r.Latitude),
		r.Cuisines,
		formatFloat(r.AverageCostForTwo),
		r.Currency,
		strconv.Itoa(r.HasTableBooking),
		strconv.Itoa(r.HasOnlineDelivery),
		strconv.Itoa(r.IsDeliveringNow),
		strconv.Itoa(r.PriceRange),
		formatFloat(r.AggregateRating),
		r.RatingColor,
		r.RatingText,
		strconv.FormatInt(r.Votes, 10),
		formatFloat(r.UnifiedPrice),
		r.CountryName,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
