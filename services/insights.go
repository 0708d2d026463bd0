package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"restaurant-explorer/models"
	"restaurant-explorer/reference"
	"restaurant-explorer/utils"
)

const topCities = 10

// Rating thresholds of the city view.
const (
	highRating = 4.0
	lowRating  = 2.5
)

// DefaultFeaturedCuisines are the cuisines whose best restaurant is shown.
var DefaultFeaturedCuisines = []string{"Italian", "American", "Arabian", "Japanese", "Brazilian"}

// DefaultWorstExcluded are left out of the worst-rated cuisine ranking.
var DefaultWorstExcluded = []string{"Drinks Only", "Mineira"}

// InsightOptions selects what the report ranks.
type InsightOptions struct {
	// TopN bounds the restaurant and cuisine rankings.
	TopN int
	// Cuisines narrows the top restaurant table. Empty keeps all.
	Cuisines      []string
	Featured      []string
	WorstExcluded []string
	// All is the unfiltered canonical set. Champions and cuisine means are
	// ranked over it; nil falls back to the records passed to Generate.
	All []*models.Restaurant
}

// DefaultInsightOptions returns the dashboard defaults: top 10 and the featured cuisines.
func DefaultInsightOptions() InsightOptions {
	return InsightOptions{
		TopN:          10,
		Featured:      DefaultFeaturedCuisines,
		WorstExcluded: DefaultWorstExcluded,
	}
}

type InsightService struct {
	tables *reference.Tables
	logger *utils.Logger
}

func NewInsightService(tables *reference.Tables, logger *utils.Logger) *InsightService {
	return &InsightService{tables: tables, logger: logger}
}

// Generate aggregates a (country filtered) record set. Cuisine champions and
// cuisine means come from opts.All when set.
func (s *InsightService) Generate(records []*models.Restaurant, opts InsightOptions) (*models.InsightReport, error) {
	report := &models.InsightReport{
		Overview: overview(records),
	}

	catalog := opts.All
	if catalog == nil {
		catalog = records
	}
	if len(records) == 0 && len(catalog) == 0 {
		return report, nil
	}

	report.Countries = countryStats(records)

	report.TopCitiesByRestaurants = topCityCounts(records, func(*models.Restaurant) bool { return true })
	report.TopCitiesHighRated = topCityCounts(records, func(r *models.Restaurant) bool {
		return r.AggregateRating > highRating
	})
	report.TopCitiesLowRated = topCityCounts(records, func(r *models.Restaurant) bool {
		return r.Votes != 0 && r.AggregateRating < lowRating
	})
	report.TopCitiesByCuisines = topCitiesByCuisineVariety(records)

	for _, cuisine := range opts.Featured {
		best, err := BestOfCuisine(catalog, cuisine)
		if err != nil && !errors.Is(err, ErrNoData) {
			return nil, err
		}
		if best == nil {
			s.logger.Debug("[insights] No %s restaurant in dataset", cuisine)
		}
		report.Champions = append(report.Champions, models.CuisineChampion{Cuisine: cuisine, Restaurant: best})
	}

	top, err := s.topRestaurants(Filter{Cuisines: opts.Cuisines}.Apply(records), opts.TopN)
	if err != nil {
		return nil, err
	}
	report.TopRestaurants = top

	means := cuisineRatings(catalog, nil)
	sort.SliceStable(means, func(i, j int) bool {
		return means[i].AverageRating > means[j].AverageRating
	})
	report.BestCuisines = head(means, opts.TopN)

	worst := cuisineRatings(catalog, toSet(opts.WorstExcluded))
	sort.SliceStable(worst, func(i, j int) bool {
		return worst[i].AverageRating < worst[j].AverageRating
	})
	report.WorstCuisines = head(worst, opts.TopN)

	s.logger.Info("[insights] Report over %d restaurants in %d countries",
		report.Overview.Restaurants, report.Overview.Countries)
	return report, nil
}

// BestOfCuisine returns the highest rated restaurant of a cuisine, the lowest
// restaurant id winning ties. An empty subset yields ErrNoData instead of an
// indexing failure.
func BestOfCuisine(records []*models.Restaurant, cuisine string) (*models.Restaurant, error) {
	var best *models.Restaurant
	for _, r := range records {
		if r.Cuisines != cuisine {
			continue
		}
		if best == nil ||
			r.AggregateRating > best.AggregateRating ||
			(r.AggregateRating == best.AggregateRating && r.RestaurantID < best.RestaurantID) {
			best = r
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: cuisine %q", ErrNoData, cuisine)
	}
	return best, nil
}

// FormatVotes renders a vote count with Brazilian digit grouping.
func FormatVotes(votes int64) string {
	return message.NewPrinter(language.BrazilianPortuguese).Sprintf("%d", votes)
}

func overview(records []*models.Restaurant) models.Overview {
	countries := make(map[int]struct{})
	cities := make(map[string]struct{})
	cuisines := make(map[string]struct{})

	ov := models.Overview{Restaurants: len(records)}
	for _, r := range records {
		countries[r.CountryCode] = struct{}{}
		cities[r.City] = struct{}{}
		cuisines[r.Cuisines] = struct{}{}
		ov.TotalVotes += r.Votes
	}
	ov.Countries = len(countries)
	ov.Cities = len(cities)
	ov.Cuisines = len(cuisines)
	ov.VotesLabel = FormatVotes(ov.TotalVotes)
	return ov
}

func countryStats(records []*models.Restaurant) []models.CountryStat {
	type acc struct {
		count  int
		cities map[string]struct{}
		votes  int64
		price  float64
	}
	groups := make(map[string]*acc)

	for _, r := range records {
		g, ok := groups[r.CountryName]
		if !ok {
			g = &acc{cities: make(map[string]struct{})}
			groups[r.CountryName] = g
		}
		g.count++
		g.cities[r.City] = struct{}{}
		g.votes += r.Votes
		g.price += r.UnifiedPrice
	}

	stats := make([]models.CountryStat, 0, len(groups))
	for name, g := range groups {
		stats = append(stats, models.CountryStat{
			Country:      name,
			Restaurants:  g.count,
			Cities:       len(g.cities),
			AverageVotes: float64(g.votes) / float64(g.count),
			AveragePrice: g.price / float64(g.count),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Country < stats[j].Country })
	return stats
}

type cityKey struct {
	country string
	city    string
}

func topCityCounts(records []*models.Restaurant, keep func(*models.Restaurant) bool) []models.CityStat {
	counts := make(map[cityKey]int)
	for _, r := range records {
		if keep(r) {
			counts[cityKey{r.CountryName, r.City}]++
		}
	}
	return rankCities(counts)
}

func topCitiesByCuisineVariety(records []*models.Restaurant) []models.CityStat {
	variety := make(map[cityKey]map[string]struct{})
	for _, r := range records {
		k := cityKey{r.CountryName, r.City}
		if variety[k] == nil {
			variety[k] = make(map[string]struct{})
		}
		variety[k][r.Cuisines] = struct{}{}
	}

	counts := make(map[cityKey]int, len(variety))
	for k, set := range variety {
		counts[k] = len(set)
	}
	return rankCities(counts)
}

// rankCities sorts by count descending, then by country and city so equal
// counts come out in a stable order.
func rankCities(counts map[cityKey]int) []models.CityStat {
	stats := make([]models.CityStat, 0, len(counts))
	for k, n := range counts {
		stats = append(stats, models.CityStat{Country: k.country, City: k.city, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		if stats[i].Country != stats[j].Country {
			return stats[i].Country < stats[j].Country
		}
		return stats[i].City < stats[j].City
	})
	return head(stats, topCities)
}

// cuisineRatings returns the mean rating of every cuisine, rounded to two
// decimals and ordered by cuisine name.
func cuisineRatings(records []*models.Restaurant, exclude map[string]struct{}) []models.CuisineRating {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		if _, skip := exclude[r.Cuisines]; skip {
			continue
		}
		sums[r.Cuisines] += r.AggregateRating
		counts[r.Cuisines]++
	}

	out := make([]models.CuisineRating, 0, len(sums))
	for cuisine, sum := range sums {
		out = append(out, models.CuisineRating{
			Cuisine:       cuisine,
			AverageRating: RoundTo(sum/float64(counts[cuisine]), 2),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cuisine < out[j].Cuisine })
	return out
}

func (s *InsightService) topRestaurants(records []*models.Restaurant, n int) ([]models.RestaurantView, error) {
	sorted := append([]*models.Restaurant(nil), records...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].AggregateRating != sorted[j].AggregateRating {
			return sorted[i].AggregateRating > sorted[j].AggregateRating
		}
		return sorted[i].RestaurantID < sorted[j].RestaurantID
	})
	sorted = head(sorted, n)

	views := make([]models.RestaurantView, 0, len(sorted))
	for _, r := range sorted {
		label, err := s.tables.ColorLabel(r.RatingColor)
		if err != nil {
			return nil, fmt.Errorf("restaurant %d: %w", r.RestaurantID, err)
		}
		views = append(views, models.RestaurantView{
			Restaurant: r,
			PriceTier:  s.tables.PriceTier(r.PriceRange),
			ColorLabel: label,
		})
	}
	return views, nil
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🍽  FOME ZERO · RESTAURANT INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Restaurants        : \033[1m%d\033[0m\n", r.Overview.Restaurants)
	fmt.Printf("  Countries selected : \033[1m%d\033[0m\n", r.Overview.Countries)
	fmt.Printf("  Cities             : \033[1m%d\033[0m\n", r.Overview.Cities)
	fmt.Printf("  Total votes        : \033[1m%s\033[0m\n", r.Overview.VotesLabel)
	fmt.Printf("  Distinct cuisines  : \033[1m%d\033[0m\n", r.Overview.Cuisines)
	fmt.Println()

	if r.Overview.Restaurants == 0 {
		fmt.Printf("  No restaurants match the current selection\n")
		fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
		return
	}

	// Countries
	fmt.Printf("\033[1;33m  Countries\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %s %8s %7s %10s %12s\n", pad("Country", 24), "Rest.", "Cities", "Avg votes", "Avg price")
	for _, c := range r.Countries {
		fmt.Printf("  %s %8d %7d %10.1f %12s\n",
			pad(c.Country, 24), c.Restaurants, c.Cities, c.AverageVotes, fmt.Sprintf("$%.2f", c.AveragePrice))
	}
	fmt.Println()

	printCities("Top 10 Cities by Restaurants", r.TopCitiesByRestaurants, thin)
	printCities("Cities with Most Restaurants Rated Above 4", r.TopCitiesHighRated, thin)
	printCities("Cities with Most Restaurants Rated Below 2.5", r.TopCitiesLowRated, thin)
	printCities("Top 10 Cities by Distinct Cuisines", r.TopCitiesByCuisines, thin)

	// Featured cuisines
	fmt.Printf("\033[1;33m  Best Restaurants of the Main Cuisines\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, c := range r.Champions {
		if c.Restaurant == nil {
			fmt.Printf("  %s no data for this selection\n", pad(c.Cuisine, 12))
			continue
		}
		fmt.Printf("  %s %s \033[1;32m%.1f/5\033[0m\n",
			pad(c.Cuisine, 12), pad(c.Restaurant.RestaurantName, 40), c.Restaurant.AggregateRating)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Top %d Restaurants\033[0m\n", len(r.TopRestaurants))
	fmt.Printf("  %s\n", thin)
	if len(r.TopRestaurants) == 0 {
		fmt.Printf("  No restaurants for the selected cuisines\n")
	}
	for i, v := range r.TopRestaurants {
		fmt.Printf("  \033[1m%2d.\033[0m %s %s %s %10s %-9s %-10s \033[1;32m%.1f ★\033[0m\n",
			i+1, pad(v.RestaurantName, 28), pad(v.City, 14), pad(v.Cuisines, 14),
			fmt.Sprintf("$%.2f", v.UnifiedPrice), v.PriceTier, v.ColorLabel, v.AggregateRating)
	}
	fmt.Println()

	printCuisines("Best Rated Cuisines", r.BestCuisines, thin)
	printCuisines("Worst Rated Cuisines", r.WorstCuisines, thin)

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func printCities(title string, stats []models.CityStat, thin string) {
	fmt.Printf("\033[1;33m  %s\033[0m\n", title)
	fmt.Printf("  %s\n", thin)
	if len(stats) == 0 {
		fmt.Printf("  No data for this selection\n")
	}
	for _, c := range stats {
		bar := strings.Repeat("█", barWidth(c.Count, stats[0].Count))
		fmt.Printf("  %s %s %s (%d)\n", pad(c.City, 22), pad(c.Country, 20), bar, c.Count)
	}
	fmt.Println()
}

func printCuisines(title string, ratings []models.CuisineRating, thin string) {
	fmt.Printf("\033[1;33m  %s\033[0m\n", title)
	fmt.Printf("  %s\n", thin)
	for _, c := range ratings {
		fmt.Printf("  %s %.2f\n", pad(c.Cuisine, 30), c.AverageRating)
	}
	fmt.Println()
}

// barWidth scales a count to at most 20 cells.
func barWidth(n, max int) int {
	if max <= 20 {
		return n
	}
	return int(math.Ceil(float64(n) * 20 / float64(max)))
}

// pad truncates or fills s to exactly w terminal cells.
func pad(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "..."), w)
}

func head[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}
