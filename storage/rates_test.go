package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"restaurant-explorer/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRateCacheLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "taxas.json", `{"USD": 1, "brl": 5.0, " inr ": 83.25}`},
		{"yaml", "taxas.yaml", "USD: 1\nbrl: 5.0\n' inr ': 83.25\n"},
	}
	want := models.ExchangeRates{"USD": 1, "BRL": 5.0, "INR": 83.25}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRateCache(writeFile(t, tt.file, tt.content)).LoadRates()
			if err != nil {
				t.Fatalf("LoadRates: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("LoadRates() = %v; want %v", got, want)
			}
		})
	}
}

func TestRateCacheErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")
	if _, err := NewRateCache(missing).LoadRates(); !errors.Is(err, ErrRateCacheMissing) {
		t.Errorf("missing file: got %v, want ErrRateCacheMissing", err)
	}

	empty := writeFile(t, "empty.json", "{}")
	if _, err := NewRateCache(empty).LoadRates(); !errors.Is(err, ErrRateCacheEmpty) {
		t.Errorf("empty cache: got %v, want ErrRateCacheEmpty", err)
	}

	clash := writeFile(t, "clash.json", `{"usd": 1, "USD": 2}`)
	if _, err := NewRateCache(clash).LoadRates(); !errors.Is(err, ErrRateCacheClash) {
		t.Errorf("case-folded duplicate: got %v, want ErrRateCacheClash", err)
	}

	broken := writeFile(t, "broken.json", `{"USD": "one"}`)
	if _, err := NewRateCache(broken).LoadRates(); err == nil {
		t.Error("non-numeric rate should fail to parse")
	}
}

func TestRateCacheSaveRoundTrip(t *testing.T) {
	rates := models.ExchangeRates{"USD": 1, "GBP": 0.79, "IDR": 15650.5}

	for _, name := range []string{"out/taxas.json", "out/taxas.yml"} {
		t.Run(name, func(t *testing.T) {
			cache := NewRateCache(filepath.Join(t.TempDir(), name))
			if err := cache.Save(rates); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := cache.LoadRates()
			if err != nil {
				t.Fatalf("LoadRates: %v", err)
			}
			if !reflect.DeepEqual(got, rates) {
				t.Errorf("round trip = %v; want %v", got, rates)
			}
		})
	}
}
