package buildcache

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes a BuildCache's size and clean-operation counters for
// registration against a Prometheus registry.
type Metrics struct {
	Entries       prometheus.Gauge
	ExpiredEvicts prometheus.Counter
	TargetEvicts  prometheus.Counter
}

// NewMetrics builds and registers a Metrics set labeled by name.
func NewMetrics(reg prometheus.Registerer, name string) *Metrics {
	m := &Metrics{
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "build_cache_entries",
			Help:        "Current number of entries held by the build cache's replacement policy.",
			ConstLabels: prometheus.Labels{"cache": name},
		}),
		ExpiredEvicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "build_cache_expired_evictions_total",
			Help:        "Number of entries removed by CleanExpiredCache.",
			ConstLabels: prometheus.Labels{"cache": name},
		}),
		TargetEvicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "build_cache_target_evictions_total",
			Help:        "Number of entries removed by CleanTargetCache.",
			ConstLabels: prometheus.Labels{"cache": name},
		}),
	}
	reg.MustRegister(m.Entries, m.ExpiredEvicts, m.TargetEvicts)
	return m
}

// Sample sets Entries to bc's current size.
func (m *Metrics) Sample(bc *BuildCache) {
	m.Entries.Set(float64(bc.Size()))
}
