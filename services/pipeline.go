package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"restaurant-explorer/models"
	"restaurant-explorer/reference"
	"restaurant-explorer/utils"
)

// PipelineOptions tunes a Pipeline.
type PipelineOptions struct {
	// Workers bounds the goroutines used for per-record derivation.
	Workers int
	// SkipInvalid drops records that fail decoding, currency resolution or
	// enrichment instead of failing the whole run.
	SkipInvalid bool
}

// Pipeline turns a raw table into the canonical record set:
// normalize → clean → decode → unify → enrich → outlier cut.
type Pipeline struct {
	tables     *reference.Tables
	logger     *utils.Logger
	opts       PipelineOptions
	normalizer *SchemaNormalizer
	cleaner    *Cleaner
	outliers   *OutlierFilter
}

// NewPipeline creates a Pipeline over the given reference tables.
func NewPipeline(tables *reference.Tables, logger *utils.Logger, opts PipelineOptions) *Pipeline {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Pipeline{
		tables:     tables,
		logger:     logger,
		opts:       opts,
		normalizer: NewSchemaNormalizer(),
		cleaner:    NewCleaner(logger),
		outliers:   NewOutlierFilter(),
	}
}

// Run executes every stage once. Either the full canonical set is returned
// or an error and no records.
func (p *Pipeline) Run(raw *models.RawTable, rates models.ExchangeRates) (*models.Dataset, error) {
	runID := uuid.NewString()
	started := time.Now()
	stats := models.LoadStats{RawRows: len(raw.Rows)}

	p.logger.Info("[pipeline] Run %s starting: %d raw rows, %d columns", runID, len(raw.Rows), len(raw.Header))

	header, err := p.normalizer.Normalize(raw.Header)
	if err != nil {
		return nil, fmt.Errorf("normalize schema: %w", err)
	}
	normalized := &models.RawTable{Header: header, Rows: raw.Rows}

	cleaned, cleanStats, err := p.cleaner.Clean(normalized)
	if err != nil {
		return nil, fmt.Errorf("clean records: %w", err)
	}
	stats.DroppedNoCuisine = cleanStats.NoCuisine
	stats.DroppedDuplicates = cleanStats.Duplicates

	records, skipped, err := p.decode(cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	stats.SkippedInvalid += skipped

	unifier := NewCurrencyUnifier(p.tables, rates)
	records, skipped, err = p.mapRecords("unify", records, unifier.Unify)
	if err != nil {
		return nil, fmt.Errorf("unify prices: %w", err)
	}
	stats.SkippedInvalid += skipped

	enricher := NewEnricher(p.tables)
	records, skipped, err = p.mapRecords("enrich", records, enricher.Enrich)
	if err != nil {
		return nil, fmt.Errorf("enrich records: %w", err)
	}
	stats.SkippedInvalid += skipped

	records, stats.DroppedOutliers = p.outliers.Apply(records)
	stats.Canonical = len(records)

	p.logger.Info("[pipeline] Run %s done in %v: %d canonical records (skipped %d, outliers %d)",
		runID, time.Since(started).Round(time.Millisecond), stats.Canonical, stats.SkippedInvalid, stats.DroppedOutliers)

	return &models.Dataset{
		RunID:    runID,
		LoadedAt: started,
		Records:  records,
		Stats:    stats,
	}, nil
}

func (p *Pipeline) decode(table *models.RawTable) ([]*models.Restaurant, int, error) {
	decoder, err := NewDecoder(table.Header)
	if err != nil {
		return nil, 0, err
	}
	if unknown := decoder.Unknown(); len(unknown) > 0 {
		p.logger.Warn("[pipeline] Ignoring unknown columns: %s", strings.Join(unknown, ", "))
	}

	records := make([]*models.Restaurant, 0, len(table.Rows))
	skipped := 0
	for i, row := range table.Rows {
		r, err := decoder.Decode(i, row)
		if err != nil {
			if !p.opts.SkipInvalid {
				return nil, 0, err
			}
			p.logger.Warn("[pipeline] Skipping invalid record: %v", err)
			skipped++
			continue
		}
		records = append(records, r)
	}
	return records, skipped, nil
}

// mapRecords applies fn to every record. Records are independent, so the
// work may be spread over a worker pool; results keep input order and the
// reported error is always the one of the earliest failing record.
func (p *Pipeline) mapRecords(stage string, in []*models.Restaurant, fn func(*models.Restaurant) (*models.Restaurant, error)) ([]*models.Restaurant, int, error) {
	results := make([]*models.Restaurant, len(in))
	errs := make([]error, len(in))

	if p.opts.Workers == 1 {
		for i, r := range in {
			results[i], errs[i] = fn(r)
		}
	} else {
		pool := utils.NewWorkerPool(p.opts.Workers)
		p.logger.Debug("[pipeline] %s: %d records over %d workers", stage, len(in), pool.Size())
		for i, r := range in {
			pool.Submit(func() {
				results[i], errs[i] = fn(r)
			})
		}
		pool.Wait()
	}

	out := make([]*models.Restaurant, 0, len(in))
	skipped := 0
	for i, err := range errs {
		if err == nil {
			out = append(out, results[i])
			continue
		}
		if !p.opts.SkipInvalid || !isRecordError(err) {
			return nil, 0, err
		}
		p.logger.Warn("[pipeline] %s: skipping record: %v", stage, err)
		skipped++
	}
	return out, skipped, nil
}

func isRecordError(err error) bool {
	var recErr *RecordError
	return errors.As(err, &recErr)
}
