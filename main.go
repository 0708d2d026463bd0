package main

import (
	"fmt"
	"os"
	"time"

	"restaurant-explorer/config"
	"restaurant-explorer/models"
	"restaurant-explorer/reference"
	"restaurant-explorer/services"
	"restaurant-explorer/storage"
	"restaurant-explorer/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	logger.Info("=== Restaurant Explorer starting ===")
	logger.Info("Config: dataset %s | rates %s | workers %d | skip invalid %t",
		cfg.DatasetPath, cfg.RatesPath, cfg.Workers, cfg.SkipInvalidRecords)

	tables := reference.Default()
	pipeline := services.NewPipeline(tables, logger, services.PipelineOptions{
		Workers:     cfg.Workers,
		SkipInvalid: cfg.SkipInvalidRecords,
	})
	loader := services.NewLoader(
		storage.NewRateCache(cfg.RatesPath),
		storage.NewCSVDatasetReader(cfg.DatasetPath),
		pipeline,
		logger,
	)

	dataset, err := loader.Load()
	if err != nil {
		logger.Error("Load failed: %v", err)
		os.Exit(1)
	}
	st := dataset.Stats
	logger.Info("Loaded %d canonical records from %d raw rows (no cuisine %d, duplicates %d, skipped %d, outliers %d)",
		st.Canonical, st.RawRows, st.DroppedNoCuisine, st.DroppedDuplicates, st.SkippedInvalid, st.DroppedOutliers)

	selected := services.Filter{Countries: cfg.Countries}.Apply(dataset.Records)
	if len(selected) == 0 {
		logger.Warn("No records match countries %v", cfg.Countries)
	}

	snap := &models.Snapshot{RunID: dataset.RunID, CreatedAt: time.Now(), Records: selected}
	exportSnapshot(cfg, snap, logger)

	opts := services.DefaultInsightOptions()
	opts.TopN = cfg.TopN
	opts.Cuisines = cfg.Cuisines
	opts.All = dataset.Records

	insightSvc := services.NewInsightService(tables, logger)
	report, err := insightSvc.Generate(selected, opts)
	if err != nil {
		logger.Error("Insight generation failed: %v", err)
		os.Exit(1)
	}
	insightSvc.Print(report)

	fmt.Printf("  Done. Run %s | CSV → %s\n\n", dataset.RunID, cfg.CSVOutputPath)
}

// exportSnapshot hands the snapshot to every configured backend. A failing
// backend is logged and the others still run.
func exportSnapshot(cfg *config.Config, snap *models.Snapshot, logger *utils.Logger) {
	type backend struct {
		name string
		open func() (storage.SnapshotWriter, error)
	}

	backends := []backend{{"csv", func() (storage.SnapshotWriter, error) {
		return storage.NewCSVWriter(cfg.CSVOutputPath)
	}}}
	if cfg.ParquetOutputPath != "" {
		backends = append(backends, backend{"parquet", func() (storage.SnapshotWriter, error) {
			return storage.NewParquetWriter(cfg.ParquetOutputPath)
		}})
	}
	if cfg.SQLitePath != "" {
		backends = append(backends, backend{"sqlite", func() (storage.SnapshotWriter, error) {
			return storage.NewSQLiteWriter(cfg.SQLitePath)
		}})
	}
	if cfg.ExportPostgres {
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 500 * time.Millisecond, Logger: logger}
		backends = append(backends, backend{"postgres", func() (storage.SnapshotWriter, error) {
			return storage.NewPostgresWriter(cfg.DSN(), retry)
		}})
	}

	for _, b := range backends {
		w, err := b.open()
		if err != nil {
			logger.Error("Export %s: %v", b.name, err)
			continue
		}
		if err := w.Write(snap); err != nil {
			logger.Error("Export %s: %v", b.name, err)
		} else {
			logger.Info("Exported %d records to %s", len(snap.Records), b.name)
		}
		if err := w.Close(); err != nil {
			logger.Warn("Close %s: %v", b.name, err)
		}
	}
}
