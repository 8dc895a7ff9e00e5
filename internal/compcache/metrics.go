package compcache

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes a Cache's hit/miss/size counters as Prometheus gauges and
// counters, for processes that want to register them against their own
// registry (e.g. the demo CLI's /metrics endpoint).
type Metrics struct {
	Hits   prometheus.Counter
	Misses prometheus.Counter
	Size   prometheus.Gauge

	lastHits   int64
	lastMisses int64
}

// NewMetrics builds a Metrics set labeled by name (e.g. the cache
// directory, so multiple engines registered against one registry stay
// distinguishable) and registers them against reg.
func NewMetrics(reg prometheus.Registerer, name string) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "compilation_cache_hits_total",
			Help:        "Number of Get calls against the compilation cache that found an entry.",
			ConstLabels: prometheus.Labels{"cache": name},
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "compilation_cache_misses_total",
			Help:        "Number of Get calls against the compilation cache that found nothing.",
			ConstLabels: prometheus.Labels{"cache": name},
		}),
		Size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "compilation_cache_entries",
			Help:        "Current number of entries held by the compilation cache.",
			ConstLabels: prometheus.Labels{"cache": name},
		}),
	}
	reg.MustRegister(m.Hits, m.Misses, m.Size)
	return m
}

// Sample snapshots c's monotonic hit/miss counters into m as deltas (a
// Prometheus Counter may only increase) and sets Size to c's current entry
// count. Callers on a hot read/write path should call this periodically
// rather than on every Cache operation, to avoid taking c's lock more
// often than necessary.
func (m *Metrics) Sample(c *Cache) {
	hits, misses := c.Hits(), c.Misses()
	if d := hits - m.lastHits; d > 0 {
		m.Hits.Add(float64(d))
		m.lastHits = hits
	}
	if d := misses - m.lastMisses; d > 0 {
		m.Misses.Add(float64(d))
		m.lastMisses = misses
	}
	m.Size.Set(float64(c.Size()))
}
