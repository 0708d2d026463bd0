package models

// Overview holds the headline metrics of the main page.
type Overview struct {
	Restaurants int
	Countries   int
	Cities      int
	TotalVotes  int64
	VotesLabel  string
	Cuisines    int
}

// CountryStat aggregates the restaurants of one country.
type CountryStat struct {
	Country      string
	Restaurants  int
	Cities       int
	AverageVotes float64
	AveragePrice float64
}

// CityStat is a (country, city) bucket with a single count.
type CityStat struct {
	Country string
	City    string
	Count   int
}

// CuisineRating is the mean aggregate rating of one cuisine.
type CuisineRating struct {
	Cuisine       string
	AverageRating float64
}

// CuisineChampion is the best rated restaurant of a featured cuisine.
// Restaurant is nil when the selection holds no record of that cuisine.
type CuisineChampion struct {
	Cuisine    string
	Restaurant *Restaurant
}

// RestaurantView decorates a record with labels derived on demand.
type RestaurantView struct {
	*Restaurant
	PriceTier  string
	ColorLabel string
}

// InsightReport holds the aggregates computed over a filtered record set.
type InsightReport struct {
	Overview Overview

	Countries []CountryStat

	TopCitiesByRestaurants []CityStat
	TopCitiesHighRated     []CityStat
	TopCitiesLowRated      []CityStat
	TopCitiesByCuisines    []CityStat

	Champions      []CuisineChampion
	TopRestaurants []RestaurantView
	BestCuisines   []CuisineRating
	WorstCuisines  []CuisineRating
}
