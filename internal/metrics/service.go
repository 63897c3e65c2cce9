package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		FixtureFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_fixture_fetches_total",
			Help: "The total number of fixture fetches that hit the network.",
		}),
		FixtureCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_fixture_cache_hits_total",
			Help: "The total number of fixture fetches served from the in-memory cache.",
		}),
		FixtureFetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_fixture_fetch_failures_total",
			Help: "The total number of fixture fetches that failed.",
		}),
		Seeds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_seeds_total",
			Help: "The total number of entity keys seeded into the store.",
		}),
		SeedFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_seed_failures_total",
			Help: "The total number of seeding attempts that exhausted every source.",
		}),
		StoreWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_store_write_failures_total",
			Help: "The total number of failed key-value store writes.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_notifications_sent_total",
			Help: "The total number of ops notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_notifications_failed_total",
			Help: "The total number of ops notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtside_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.FixtureFetches,
		s.FixtureCacheHits,
		s.FixtureFetchFailures,
		s.Seeds,
		s.SeedFailures,
		s.StoreWriteFailures,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncFixtureFetches() {
	s.FixtureFetches.Inc()
}

func (s *Service) IncFixtureCacheHits() {
	s.FixtureCacheHits.Inc()
}

func (s *Service) IncFixtureFetchFailures() {
	s.FixtureFetchFailures.Inc()
}

func (s *Service) IncSeeds() {
	s.Seeds.Inc()
}

func (s *Service) IncSeedFailures() {
	s.SeedFailures.Inc()
}

func (s *Service) IncStoreWriteFailures() {
	s.StoreWriteFailures.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
