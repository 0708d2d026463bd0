package services

import (
	"fmt"

	"restaurant-explorer/models"
	"restaurant-explorer/utils"
)

// RateSource supplies the exchange-rate table for one load.
type RateSource interface {
	LoadRates() (models.ExchangeRates, error)
}

// DatasetSource supplies the raw dataset for one load.
type DatasetSource interface {
	ReadDataset() (*models.RawTable, error)
}

// Loader reads both inputs and runs the pipeline. Every call to Load reads
// the inputs again; nothing is shared between loads.
type Loader struct {
	rates    RateSource
	dataset  DatasetSource
	pipeline *Pipeline
	logger   *utils.Logger
}

// NewLoader wires the two input sources to a pipeline.
func NewLoader(rates RateSource, dataset DatasetSource, pipeline *Pipeline, logger *utils.Logger) *Loader {
	return &Loader{rates: rates, dataset: dataset, pipeline: pipeline, logger: logger}
}

// Load produces a fresh canonical dataset.
func (l *Loader) Load() (*models.Dataset, error) {
	rates, err := l.rates.LoadRates()
	if err != nil {
		return nil, fmt.Errorf("load exchange rates: %w", err)
	}
	l.logger.Debug("[loader] %d exchange rates loaded", len(rates))

	raw, err := l.dataset.ReadDataset()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	return l.pipeline.Run(raw, rates)
}
