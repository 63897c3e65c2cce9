package http

import (
	"net/http"

	"courtside/internal/catalog"
	"courtside/internal/config"
	"courtside/internal/http/handlers"
	"courtside/internal/metrics"
	"courtside/internal/notifier"
	"courtside/internal/session"
	"courtside/internal/signal"
	"courtside/internal/store"
	"courtside/internal/syncer"
)

func NewServer(kv store.KV, cat *catalog.Catalog, sync syncer.Syncer, sessions *session.Manager, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, bus signal.Bus) *Server {
	server := &Server{
		KV:             kv,
		Catalog:        cat,
		Syncer:         sync,
		Session:        sessions,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Bus:            bus,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(handlers.ClearStoreHandler(s.KV), paramsMiddleware))
	s.Router.Handle("/seed", Chain(handlers.SeedHandler(s.Syncer), paramsMiddleware))
	s.Router.Handle("/coaches", Chain(handlers.CoachesHandler(s.Catalog, s.Notifier), paramsMiddleware))
	s.Router.Handle("/grounds", Chain(handlers.GroundsHandler(s.Catalog, s.Notifier), paramsMiddleware))
	s.Router.Handle("/products", Chain(handlers.ProductsHandler(s.Catalog, s.Notifier), paramsMiddleware))
	s.Router.Handle("/users", Chain(handlers.EntityHandler(s.Catalog.Users, s.Notifier, nil), paramsMiddleware))
	s.Router.Handle("/ground-bookings", Chain(handlers.BookingsHandler(s.Catalog, s.Catalog.GroundBookings, s.Notifier), paramsMiddleware))
	s.Router.Handle("/coach-bookings", Chain(handlers.BookingsHandler(s.Catalog, s.Catalog.CoachBookings, s.Notifier), paramsMiddleware))
	s.Router.Handle("/applications", Chain(handlers.EntityHandler(s.Catalog.Applications, s.Notifier, nil), paramsMiddleware))
	s.Router.Handle("/activity", Chain(handlers.EntityHandler(s.Catalog.Activity, s.Notifier, nil), paramsMiddleware))
	s.Router.Handle("/news", Chain(handlers.NewsHandler(s.Catalog, s.Notifier), paramsMiddleware))
	s.Router.Handle("/news/view", Chain(handlers.NewsViewHandler(s.Catalog), paramsMiddleware))
	s.Router.Handle("/session/login", Chain(handlers.LoginHandler(s.Session), paramsMiddleware))
	s.Router.Handle("/session/logout", Chain(handlers.LogoutHandler(s.Session), paramsMiddleware))
	s.Router.Handle("/session/current", Chain(handlers.CurrentUserHandler(s.Session), paramsMiddleware))
	s.Router.Handle("/cart", Chain(handlers.CartHandler(s.Session), paramsMiddleware))
	s.Router.Handle("/pubsub/session-refresh", Chain(handlers.SessionRefreshHandler(s.Session, s.Bus), paramsMiddleware))
	if s.Cfg.Fixtures.Dir != "" {
		s.Router.Handle("/fixtures/", http.StripPrefix("/fixtures/", http.FileServer(http.Dir(s.Cfg.Fixtures.Dir))))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
