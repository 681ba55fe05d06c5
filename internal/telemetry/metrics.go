// Package telemetry exposes Prometheus counters for pipeline runs. A nil
// *Collector is valid and records nothing, so the pipeline stays pure when
// metrics are not wanted.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mosier/radflow/internal/model"
)

// Collector holds the pipeline's counters.
type Collector struct {
	rowsIngested prometheus.Counter
	rowsDropped  prometheus.Counter
	matches      *prometheus.CounterVec
}

// NewCollector creates the pipeline counters and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		rowsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "radflow",
			Subsystem: "ingest",
			Name:      "rows_total",
			Help:      "Rows successfully typed into canonical records.",
		}),
		rowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "radflow",
			Subsystem: "ingest",
			Name:      "rows_dropped_total",
			Help:      "Rows dropped for an unparsable date.",
		}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radflow",
			Subsystem: "reconcile",
			Name:      "matches_total",
			Help:      "Identity reconciliation outcomes by kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(c.rowsIngested, c.rowsDropped, c.matches)

	return c
}

// ObserveIngest records one table load.
func (c *Collector) ObserveIngest(kept, dropped int) {
	if c == nil {
		return
	}
	c.rowsIngested.Add(float64(kept))
	c.rowsDropped.Add(float64(dropped))
}

// ObserveMatch records one reconciliation outcome.
func (c *Collector) ObserveMatch(kind model.MatchKind) {
	if c == nil {
		return
	}
	c.matches.WithLabelValues(string(kind)).Inc()
}
