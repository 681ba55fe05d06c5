package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/ingest"
	"github.com/mosier/radflow/internal/model"
	"github.com/mosier/radflow/internal/roster"
	"github.com/mosier/radflow/internal/service"
	"github.com/mosier/radflow/internal/telemetry"
)

// Pipeline runs uploaded reports through the whole sequence: read, type,
// reconcile. The roster index is an explicit argument, built once per session
// with BuildIndex and shared read-only by every Run; rebuilding it is a
// deliberate caller decision, never an implicit side effect of a run.
type Pipeline struct {
	Records   service.RecordSource
	Roster    *roster.Index // nil runs without enrichment
	Metrics   *telemetry.Collector
	Threshold int
}

// Result is what one pipeline run hands to the presentation layer.
type Result struct {
	Records      []model.ReconciledRecord
	Report       model.ReconciliationReport
	DroppedDates int
}

// BuildIndex loads the roster source into an immutable index. A load failure
// is non-fatal by contract: it is logged and an empty index is returned, so
// runs proceed with every record unmatched. Errors other than roster-load
// failures (including context cancellation) do abort.
func BuildIndex(ctx context.Context, source service.RosterSource) (*roster.Index, error) {
	if source == nil {
		return roster.NewIndex(nil), nil
	}

	entries, err := source.Load(ctx)
	if err != nil {
		var loadErr *common.RosterLoadError
		if errors.As(err, &loadErr) {
			common.LogWarn("Roster unavailable, proceeding without enrichment", common.Fields{
				"source": loadErr.Source,
				"error":  loadErr.Err,
			})
			return roster.NewIndex(nil), nil
		}
		return nil, err
	}

	ix := roster.NewIndex(entries)
	slog.Info("Roster loaded", "entries", ix.Len())
	return ix, nil
}

// Run executes the pipeline once against the already-built index. Schema
// errors abort the file; row-level problems are counted and surfaced on the
// result, never silently discarded.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	table, err := p.Records.ReadTable(ctx)
	if err != nil {
		return Result{}, err
	}

	loaded, err := ingest.BuildRecords(ctx, table)
	if err != nil {
		return Result{}, err
	}
	p.Metrics.ObserveIngest(len(loaded.Records), loaded.DroppedDates)

	eng := New(p.Roster, WithThreshold(p.Threshold), WithMetrics(p.Metrics))
	records, report := eng.Reconcile(ctx, loaded.Records)

	slog.Info("Pipeline run complete",
		"run_id", report.RunID,
		"records", len(records),
		"dropped_dates", loaded.DroppedDates,
		"exact", report.Exact,
		"fuzzy", report.Fuzzy,
		"unmatched", report.Unmatched)

	return Result{
		Records:      records,
		Report:       report,
		DroppedDates: loaded.DroppedDates,
	}, nil
}
