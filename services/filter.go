package services

import "restaurant-explorer/models"

// Filter keeps records matching a country and cuisine selection. An empty
// selection matches everything.
type Filter struct {
	Countries []string
	Cuisines  []string
}

// Apply returns copies of the matching records, so callers may modify the
// result without touching the canonical set.
func (f Filter) Apply(records []*models.Restaurant) []*models.Restaurant {
	countries := toSet(f.Countries)
	cuisines := toSet(f.Cuisines)

	out := make([]*models.Restaurant, 0, len(records))
	for _, r := range records {
		if countries != nil {
			if _, ok := countries[r.CountryName]; !ok {
				continue
			}
		}
		if cuisines != nil {
			if _, ok := cuisines[r.Cuisines]; !ok {
				continue
			}
		}
		out = append(out, r.Clone())
	}
	return out
}

// DistinctCountries lists country names in order of first appearance.
func DistinctCountries(records []*models.Restaurant) []string {
	return distinct(records, func(r *models.Restaurant) string { return r.CountryName })
}

// DistinctCuisines lists cuisines in order of first appearance.
func DistinctCuisines(records []*models.Restaurant) []string {
	return distinct(records, func(r *models.Restaurant) string { return r.Cuisines })
}

func distinct(records []*models.Restaurant, key func(*models.Restaurant) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
