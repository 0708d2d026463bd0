package config

import (
	"errors"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATASET_PATH", "RATES_PATH", "TOP_N", "WORKERS", "COUNTRIES", "CUISINES", "SKIP_INVALID_RECORDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.DatasetPath != "./dataset/zomato.csv" {
		t.Errorf("DatasetPath: got %q", cfg.DatasetPath)
	}
	if cfg.TopN != 10 {
		t.Errorf("TopN: got %d, want 10", cfg.TopN)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers: got %d, want 1", cfg.Workers)
	}
	if cfg.SkipInvalidRecords {
		t.Error("SkipInvalidRecords should default to false")
	}
	if !reflect.DeepEqual(cfg.Countries, DefaultCountries) {
		t.Errorf("Countries: got %v, want %v", cfg.Countries, DefaultCountries)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COUNTRIES", " India , Brazil,,")
	t.Setenv("CUISINES", "*")
	t.Setenv("TOP_N", "5")
	t.Setenv("SKIP_INVALID_RECORDS", "true")
	t.Setenv("WORKERS", "not-a-number")

	cfg := Load()

	if !reflect.DeepEqual(cfg.Countries, []string{"India", "Brazil"}) {
		t.Errorf("Countries: got %v", cfg.Countries)
	}
	if cfg.Cuisines != nil {
		t.Errorf("Cuisines: got %v, want nil for *", cfg.Cuisines)
	}
	if cfg.TopN != 5 {
		t.Errorf("TopN: got %d, want 5", cfg.TopN)
	}
	if !cfg.SkipInvalidRecords {
		t.Error("SkipInvalidRecords should be true")
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers should fall back to 1 on bad input, got %d", cfg.Workers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
		want error
	}{
		{"missing dataset", func(c *Config) { c.DatasetPath = "" }, ErrMissingDatasetPath},
		{"missing rates", func(c *Config) { c.RatesPath = "" }, ErrMissingRatesPath},
		{"top n too large", func(c *Config) { c.TopN = 21 }, ErrInvalidTopN},
		{"negative top n", func(c *Config) { c.TopN = -1 }, ErrInvalidTopN},
		{"no workers", func(c *Config) { c.Workers = 0 }, ErrInvalidWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DatasetPath: "d.csv", RatesPath: "r.json", TopN: 10, Workers: 1}
			tt.mod(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v; want %v", err, tt.want)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5433", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "restaurants", PostgresSSLMode: "disable",
	}
	want := "host=db port=5433 user=u password=p dbname=restaurants sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q; want %q", got, want)
	}
}
