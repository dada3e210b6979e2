package api

import (
	"net/http"

	"ancine-api/internal/logging"
	"ancine-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the middleware settings the router needs.
type RouterConfig struct {
	CORS      middleware.CORSConfig
	RateLimit middleware.RateLimitConfig
}

// NewRouter assembles the chi router with the middleware chain and every
// endpoint family. Static routes register before the generic table wildcard;
// chi resolves them first regardless of order.
func NewRouter(s *Server, logger *logging.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimit))

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/pesquisa", s.handleSalaSearch)
		r.Get("/estatisticas/salas_por_uf", s.handleSalasPorUF)

		r.Get("/obras/pesquisa", s.handleObraSearch)
		r.Get("/obras/estatisticas/por_tipo", s.handleObrasPorTipo)

		r.Get("/lancamentos/pesquisa", s.handleLancamentoSearch)

		r.Route("/producao/filmagem-estrangeira", func(r chi.Router) {
			r.Get("/", s.handleFilmagem)
			r.Get("/stats", s.handleFilmagemStats)
			r.Get("/pais/{pais}", s.handleFilmagemByPais)
		})

		r.Get("/{table}", s.handleGenericTable)
	})

	return r
}
