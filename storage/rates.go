package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"restaurant-explorer/models"
)

// Rate cache errors. A missing or empty cache is a fatal precondition.
var (
	ErrRateCacheMissing = errors.New("rates: exchange-rate cache file not found")
	ErrRateCacheEmpty   = errors.New("rates: exchange-rate cache holds no rates")
	ErrRateCacheClash   = errors.New("rates: currency code listed more than once")
)

// RateCache reads the persisted exchange-rate table. The file is a flat
// key/value document, JSON ({"USD": 1, "BRL": 5.02}) or YAML (BRL: 5.02).
type RateCache struct {
	path string
}

// NewRateCache creates a cache backed by the file at path.
func NewRateCache(path string) *RateCache {
	return &RateCache{path: path}
}

// LoadRates reads and decodes the cache file. Currency codes are trimmed
// and upper-cased.
func (c *RateCache) LoadRates() (models.ExchangeRates, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrRateCacheMissing, c.path)
	}
	if err != nil {
		return nil, fmt.Errorf("rates: read %q: %w", c.path, err)
	}

	// YAML is a superset of JSON, so one decoder serves both formats.
	var raw map[string]float64
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("rates: parse %q: %w", c.path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRateCacheEmpty, c.path)
	}

	rates := make(models.ExchangeRates, len(raw))
	for code, rate := range raw {
		key := strings.ToUpper(strings.TrimSpace(code))
		if _, dup := rates[key]; dup {
			return nil, fmt.Errorf("%w: %s in %s", ErrRateCacheClash, key, c.path)
		}
		rates[key] = rate
	}
	return rates, nil
}

// Save writes rates back to the cache file, as JSON when the file name ends
// in .json and as YAML otherwise.
func (c *RateCache) Save(rates models.ExchangeRates) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(c.path), ".json") {
		data, err = json.MarshalIndent(map[string]float64(rates), "", "  ")
	} else {
		data, err = yaml.Marshal(map[string]float64(rates))
	}
	if err != nil {
		return fmt.Errorf("rates: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("rates: create dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("rates: write %q: %w", c.path, err)
	}
	return nil
}
