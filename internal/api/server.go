package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/ri-utilization/internal/api/handler"
	mw "github.com/edvin/ri-utilization/internal/api/middleware"
)

type Server struct {
	router      chi.Router
	logger      zerolog.Logger
	bridge      handler.Runner
	registry    *prometheus.Registry
	httpMetrics *mw.HTTPMetrics
	serveMetric bool
}

// NewServer builds the HTTP trigger API. When serveMetrics is true the
// collectors in reg are also exposed on /metrics.
func NewServer(logger zerolog.Logger, bridge handler.Runner, reg *prometheus.Registry, serveMetrics bool) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		logger:      logger.With().Str("component", "api").Logger(),
		bridge:      bridge,
		registry:    reg,
		httpMetrics: mw.NewHTTPMetrics(reg),
		serveMetric: serveMetrics,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.httpMetrics.Middleware)
}

func (s *Server) setupRoutes() {
	if s.serveMetric {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	s.router.Get("/healthz", s.handleHealthz)

	s.router.Route("/v1", func(r chi.Router) {
		invocation := handler.NewInvocation(s.bridge)
		r.Post("/invocations", invocation.Create)
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
