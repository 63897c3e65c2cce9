package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed implementation of Metrics.
type Service struct {
	FixtureFetches       prometheus.Counter
	FixtureCacheHits     prometheus.Counter
	FixtureFetchFailures prometheus.Counter
	Seeds                prometheus.Counter
	SeedFailures         prometheus.Counter
	StoreWriteFailures   prometheus.Counter
	NotifSent            prometheus.Counter
	NotifFailed          prometheus.Counter
	StartupTimeSeconds   prometheus.Gauge
}
