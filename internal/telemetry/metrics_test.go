package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/mosier/radflow/internal/model"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.ObserveIngest(10, 2)
	c.ObserveMatch(model.MatchExact)
	c.ObserveMatch(model.MatchExact)
	c.ObserveMatch(model.MatchUnmatched)

	assert.Equal(t, 10.0, testutil.ToFloat64(c.rowsIngested))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.rowsDropped))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.matches.WithLabelValues("exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.matches.WithLabelValues("unmatched")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.matches.WithLabelValues("fuzzy")))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.ObserveIngest(1, 1)
		c.ObserveMatch(model.MatchFuzzy)
	})
}
