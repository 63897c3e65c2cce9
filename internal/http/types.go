package http

import (
	"net/http"

	"courtside/internal/catalog"
	"courtside/internal/config"
	"courtside/internal/metrics"
	"courtside/internal/notifier"
	"courtside/internal/session"
	"courtside/internal/signal"
	"courtside/internal/store"
	"courtside/internal/syncer"
)

type Server struct {
	KV             store.KV
	Catalog        *catalog.Catalog
	Syncer         syncer.Syncer
	Session        *session.Manager
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Bus            signal.Bus
	Router         *http.ServeMux
}
