package services

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"restaurant-explorer/models"
	"restaurant-explorer/reference"
)

func newTestPipeline(opts PipelineOptions) *Pipeline {
	return NewPipeline(reference.Default(), newTestLogger(), opts)
}

func rawZomato(rows ...[]string) *models.RawTable {
	return &models.RawTable{
		Header: []string{
			"Restaurant ID", "Restaurant Name", "Country Code", "City", "Cuisines",
			"Average Cost for two", "Switch to order menu", "Aggregate rating", "Votes",
		},
		Rows: rows,
	}
}

func TestPipelineBrazilianRecord(t *testing.T) {
	p := newTestPipeline(PipelineOptions{})
	raw := &models.RawTable{
		Header: []string{"Country Code", "Average Cost for two", "Cuisines"},
		Rows:   [][]string{{"30", "100", "Brazilian, Grill"}},
	}

	ds, err := p.Run(raw, models.ExchangeRates{"BRL": 5.0})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ds.Records) != 1 {
		t.Fatalf("records: got %d, want 1", len(ds.Records))
	}
	r := ds.Records[0]
	if r.UnifiedPrice != 20.0 {
		t.Errorf("UnifiedPrice: got %v, want 20", r.UnifiedPrice)
	}
	if r.Cuisines != "Brazilian" {
		t.Errorf("Cuisines: got %q, want Brazilian", r.Cuisines)
	}
	if r.CountryName != "Brazil" {
		t.Errorf("CountryName: got %q, want Brazil", r.CountryName)
	}
	if ds.RunID == "" {
		t.Error("RunID should be set")
	}
}

func TestPipelineUnknownCountryFailsRun(t *testing.T) {
	p := newTestPipeline(PipelineOptions{})
	raw := rawZomato(
		[]string{"1", "A", "30", "Rio", "Brazilian", "100", "No", "4.5", "10"},
		[]string{"2", "B", "9999", "Nowhere", "Grill", "100", "No", "3.0", "5"},
	)

	ds, err := p.Run(raw, models.ExchangeRates{"BRL": 5.0})
	if ds != nil {
		t.Errorf("expected no dataset on failure, got %d records", len(ds.Records))
	}
	if !errors.Is(err, ErrCurrencyResolution) && !errors.Is(err, ErrCountryNotFound) {
		t.Fatalf("expected currency/country error, got %v", err)
	}
	var recErr *RecordError
	if !errors.As(err, &recErr) || recErr.RestaurantID != 2 {
		t.Errorf("expected RecordError for restaurant 2, got %v", err)
	}
}

func TestPipelineSkipInvalidRecords(t *testing.T) {
	p := newTestPipeline(PipelineOptions{SkipInvalid: true})
	raw := rawZomato(
		[]string{"1", "A", "30", "Rio", "Brazilian", "100", "No", "4.5", "10"},
		[]string{"2", "B", "9999", "Nowhere", "Grill", "100", "No", "3.0", "5"},
		[]string{"3", "C", "166", "Doha", "Arabian", "100", "No", "3.0", "5"},
		[]string{"4", "D", "30", "Rio", "Grill", "abc", "No", "3.0", "5"},
	)

	ds, err := p.Run(raw, models.ExchangeRates{"BRL": 5.0})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ds.Records) != 1 || ds.Records[0].RestaurantID != 1 {
		t.Fatalf("expected only restaurant 1 to survive, got %d records", len(ds.Records))
	}
	if ds.Stats.SkippedInvalid != 3 {
		t.Errorf("SkippedInvalid: got %d, want 3", ds.Stats.SkippedInvalid)
	}
}

func TestPipelineMissingRateFailsRun(t *testing.T) {
	p := newTestPipeline(PipelineOptions{})
	raw := rawZomato([]string{"1", "A", "216", "NYC", "American", "50", "No", "4.0", "10"})

	_, err := p.Run(raw, models.ExchangeRates{})
	if !errors.Is(err, ErrRateNotFound) {
		t.Errorf("expected ErrRateNotFound, got %v", err)
	}
}

func TestPipelineCollapsesDuplicates(t *testing.T) {
	p := newTestPipeline(PipelineOptions{})
	row := []string{"7", "Dup", "30", "Rio", "Brazilian, Grill", "100", "No", "4.0", "10"}
	raw := rawZomato(row, append([]string(nil), row...))

	ds, err := p.Run(raw, models.ExchangeRates{"BRL": 5.0})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ds.Records) != 1 {
		t.Errorf("records: got %d, want 1", len(ds.Records))
	}
	if ds.Stats.DroppedDuplicates != 1 {
		t.Errorf("DroppedDuplicates: got %d, want 1", ds.Stats.DroppedDuplicates)
	}
}

func TestPipelineDropsOutliers(t *testing.T) {
	p := newTestPipeline(PipelineOptions{})
	raw := rawZomato(
		[]string{"1", "Cheap", "216", "NYC", "American", "50", "No", "4.0", "10"},
		[]string{"2", "Absurd", "216", "NYC", "American", "160000", "No", "4.0", "10"},
		[]string{"3", "Worse", "216", "NYC", "American", "25000017", "No", "4.0", "10"},
	)

	ds, err := p.Run(raw, models.ExchangeRates{"USD": 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ds.Records) != 1 || ds.Records[0].RestaurantID != 1 {
		t.Errorf("expected only restaurant 1, got %d records", len(ds.Records))
	}
	if ds.Stats.DroppedOutliers != 2 {
		t.Errorf("DroppedOutliers: got %d, want 2", ds.Stats.DroppedOutliers)
	}
}

func TestPipelineSchemaCollision(t *testing.T) {
	p := newTestPipeline(PipelineOptions{})
	raw := &models.RawTable{Header: []string{"City", "city", "Cuisines"}}

	if _, err := p.Run(raw, models.ExchangeRates{}); !errors.Is(err, ErrSchemaCollision) {
		t.Errorf("expected ErrSchemaCollision, got %v", err)
	}
}

func TestPipelineInvariants(t *testing.T) {
	rows := [][]string{
		{"1", "A", "30", "Rio", "Brazilian, Grill", "120", "No", "4.5", "10"},
		{"2", "B", "215", "London", "", "40", "No", "3.9", "20"},
		{"3", "C", "215", "London", "British,Pub Food", "40", "No", "3.9", "20"},
		{"3", "C", "215", "London", "British,Pub Food", "40", "No", "3.9", "20"},
		{"4", "D", "1", "Delhi", " North Indian , Mughlai", "800", "No", "4.1", "300"},
		{"5", "E", "216", "Austin", "Tex-Mex", "60", "No", "3.1", "0"},
		{"6", "F", "166", "Doha", "Arabian", "220", "No", "4.2", "31"},
	}
	rates := models.ExchangeRates{"BRL": 5.0, "GBP": 0.79, "INR": 83.2, "USD": 1, "QAR": 3.64}

	for _, workers := range []int{1, 4} {
		p := newTestPipeline(PipelineOptions{Workers: workers})
		ds, err := p.Run(rawZomato(rows...), rates)
		if err != nil {
			t.Fatalf("workers=%d Run: %v", workers, err)
		}

		var ids []int64
		seen := make(map[models.Restaurant]bool)
		tables := reference.Default()
		for _, r := range ds.Records {
			ids = append(ids, r.RestaurantID)
			if r.Cuisines == "" || strings.Contains(r.Cuisines, ",") {
				t.Errorf("record %d has cuisine %q", r.RestaurantID, r.Cuisines)
			}
			if r.UnifiedPrice >= UnifiedPriceCeiling {
				t.Errorf("record %d above ceiling", r.RestaurantID)
			}
			cur, _ := tables.CurrencyCode(r.CountryCode)
			if want := RoundTo(r.AverageCostForTwo/rates[cur], 2); r.UnifiedPrice != want {
				t.Errorf("record %d UnifiedPrice %v; want %v", r.RestaurantID, r.UnifiedPrice, want)
			}
			key := *r
			key.Row = 0
			if seen[key] {
				t.Errorf("duplicate record %d", r.RestaurantID)
			}
			seen[key] = true
		}

		if want := []int64{1, 3, 4, 5, 6}; !reflect.DeepEqual(ids, want) {
			t.Errorf("workers=%d ids: got %v, want %v", workers, ids, want)
		}
	}
}

func TestPipelineDoesNotMutateRawTable(t *testing.T) {
	p := newTestPipeline(PipelineOptions{})
	raw := rawZomato([]string{"1", "A", "30", "Rio", "Brazilian, Grill", "120", "No", "4.5", "10"})
	before := raw.Clone()

	if _, err := p.Run(raw, models.ExchangeRates{"BRL": 5.0}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(raw, before) {
		t.Error("Run modified the raw table")
	}
}

func TestPipelineErrorIsEarliestRecord(t *testing.T) {
	p := newTestPipeline(PipelineOptions{Workers: 8})
	var rows [][]string
	for i := 0; i < 50; i++ {
		code := "30"
		if i == 17 || i == 40 {
			code = "9999"
		}
		rows = append(rows, []string{strconv.Itoa(i), "X", code, "Rio", "Brazilian", "10", "No", "4.0", "1"})
	}

	_, err := p.Run(rawZomato(rows...), models.ExchangeRates{"BRL": 5.0})
	var recErr *RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("expected RecordError, got %v", err)
	}
	if recErr.RestaurantID != 17 {
		t.Errorf("expected earliest failing restaurant 17, got %d", recErr.RestaurantID)
	}
}
