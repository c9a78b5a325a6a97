package chi

import (
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stranalyzer/internal/config"
	"github.com/kailas-cloud/stranalyzer/internal/metrics"
)

// RouterOptions configures the middleware stack around the API routes.
type RouterOptions struct {
	CORS    config.CORSConfig
	Metrics config.MetricsConfig
	// Gatherer backs the metrics endpoint. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// NewRouter mounts the server's routes behind recovery, request id, logging,
// CORS and metrics middleware.
func NewRouter(s *Server, logger *zap.Logger, opts RouterOptions) http.Handler {
	r := chirouter.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEvent(logger))
	if opts.CORS.Enabled() {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORS.AllowedOrigins,
			AllowedMethods: opts.CORS.AllowedMethods,
			AllowedHeaders: opts.CORS.AllowedHeaders,
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         opts.CORS.MaxAgeSec,
		}))
	}
	r.Use(metrics.Middleware())
	r.Use(routeOnEscapedPath)

	r.Route("/strings", func(r chirouter.Router) {
		r.Post("/", s.CreateString)
		r.Get("/", s.ListStrings)
		r.Get("/filter-by-natural-language", s.FilterByNaturalLanguage)
		r.Get("/{value}", s.GetString)
		r.Delete("/{value}", s.DeleteString)
	})
	r.Get("/health", s.HealthCheck)

	if opts.Metrics.Enabled {
		gatherer := opts.Gatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		r.Method(http.MethodGet, opts.Metrics.Path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})

	return r
}
