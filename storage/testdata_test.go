package storage

import (
	"time"

	"restaurant-explorer/models"
)

func sampleSnapshot() *models.Snapshot {
	return &models.Snapshot{
		RunID:     "5b7c2f0e-8a61-4d0b-9c4e-2d1f3a4b5c6d",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Records: []*models.Restaurant{
			{
				RestaurantID: 6600060, RestaurantName: "Sushi, Bar & Co", CountryCode: 30,
				City: "Rio de Janeiro", Address: "Rua \"A\", 10", Locality: "Leblon",
				LocalityVerbose: "Leblon, Rio de Janeiro", Longitude: -43.22, Latitude: -22.98,
				Cuisines: "Japanese", AverageCostForTwo: 150, Currency: "Brazilian Real(R$)",
				HasTableBooking: 1, PriceRange: 4, AggregateRating: 4.9, RatingColor: "3F7E00",
				RatingText: "Excelente", Votes: 312, UnifiedPrice: 30, CountryName: "Brazil",
			},
			{
				RestaurantID: 18, RestaurantName: "Grill House", CountryCode: 216,
				City: "Dallas", Cuisines: "American", AverageCostForTwo: 25.5,
				Currency: "Dollar($)", PriceRange: 2, AggregateRating: 3.4, RatingColor: "CDD614",
				RatingText: "Average", Votes: 0, UnifiedPrice: 25.5,
				CountryName: "United States of America",
			},
		},
	}
}
