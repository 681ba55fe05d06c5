package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/config"
	"github.com/mosier/radflow/internal/ingest"
	"github.com/mosier/radflow/internal/roster"
	"github.com/mosier/radflow/internal/service"
	"github.com/mosier/radflow/internal/telemetry"
)

// NewPipeline wires a pipeline from configuration for one uploaded report
// file: logging is set up per cfg, the record source is picked from the file
// extension, and the roster index is built immediately — once — and reused by
// every subsequent Run on the returned pipeline.
func NewPipeline(ctx context.Context, cfg *config.Config, reportPath string, metrics *telemetry.Collector) (*Pipeline, error) {
	if err := common.SetupLogger(parseLevel(cfg.Logging.Level), cfg.Logging.Format); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	records, err := recordSource(reportPath, cfg.Ingest.Worksheet)
	if err != nil {
		return nil, err
	}

	ix, err := BuildIndex(ctx, rosterSource(cfg.Roster))
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Records:   records,
		Roster:    ix,
		Metrics:   metrics,
		Threshold: cfg.Reconcile.FuzzyThreshold,
	}, nil
}

// recordSource picks a reader for the uploaded report by file extension.
func recordSource(path, worksheet string) (service.RecordSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return &ingest.XLSXSource{Path: path, Sheet: worksheet}, nil
	case ".xls":
		return &ingest.XLSSource{Path: path, Sheet: worksheet}, nil
	case ".csv":
		return &ingest.CSVSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", filepath.Ext(path))
	}
}

// rosterSource selects the reference-data source from configuration. URL
// beats path (Validate rejects both being set); an unconfigured roster
// returns nil, which BuildIndex turns into an empty index.
func rosterSource(cfg config.RosterConfig) service.RosterSource {
	if cfg.URL != "" {
		return &roster.RemoteSource{
			URL:     cfg.URL,
			Timeout: cfg.FetchTimeout,
			Retry:   service.RetryOptions{MaxAttempts: cfg.RetryAttempts},
		}
	}
	if cfg.Path == "" {
		return nil
	}

	switch strings.ToLower(filepath.Ext(cfg.Path)) {
	case ".db", ".sqlite", ".sqlite3":
		return &roster.SQLiteSource{Path: cfg.Path, Table: cfg.Table}
	case ".xlsx", ".xlsm":
		return &roster.XLSXSource{Path: cfg.Path, Sheet: cfg.Worksheet}
	default:
		return &roster.CSVSource{Path: cfg.Path}
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
