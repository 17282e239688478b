package pcache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheStatsGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "pcache_stats",
	Help: "Lifetime hits/misses of process-level caches",
}, []string{"name", "metric"})

// RecordStats exports the cache's ristretto metrics under name.
func RecordStats(name string, p PCache) {
	m := p.Cache.Metrics
	cacheStatsGauge.WithLabelValues(name, "hits").Set(float64(m.Hits()))
	cacheStatsGauge.WithLabelValues(name, "misses").Set(float64(m.Misses()))
	cacheStatsGauge.WithLabelValues(name, "ratio").Set(m.Ratio())
	cacheStatsGauge.WithLabelValues(name, "sets_dropped").Set(float64(m.SetsDropped()))
	cacheStatsGauge.WithLabelValues(name, "sets_rejected").Set(float64(m.SetsRejected()))
	cacheStatsGauge.WithLabelValues(name, "cost_added").Set(float64(m.CostAdded()))
	cacheStatsGauge.WithLabelValues(name, "cost_evicted").Set(float64(m.CostEvicted()))
}
