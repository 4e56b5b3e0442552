package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shopfabrik/slugd/internal/build"
	"github.com/shopfabrik/slugd/internal/metrics"
	"github.com/shopfabrik/slugd/internal/store"
	"github.com/shopfabrik/slugd/internal/urls"
)

// Deps holds all dependencies required to build the router.
type Deps struct {
	URLService *urls.Service
	Languages  *store.LanguageStore
	Products   *store.ProductStore
	Tenants    *store.TenantStore
	Log        *zap.Logger
}

// NewRouter builds the full HTTP surface: the JSON API under /api/v1 and
// the Prometheus endpoint at /metrics.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger(deps.Log))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jsonContentType)

		r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, StatusResponse{
				Version: build.Version,
				Commit:  build.Commit,
				Branch:  build.Branch,
			})
		})

		registerURLRoutes(r, deps.URLService)
		registerLanguageRoutes(r, deps.Languages)
		registerProductRoutes(r, deps.Products)
		registerTenantRoutes(r, deps.Tenants, deps.Products)
	})

	return r
}

// jsonContentType sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// requestLogger logs one line per request and records the duration histogram.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			metrics.RequestDuration.
				WithLabelValues(r.Method, strconv.Itoa(rec.status)).
				Observe(elapsed.Seconds())
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", elapsed))
		})
	}
}

// actorFrom returns the audit actor for a mutating request. The service
// carries no authentication (it sits behind the storefront gateway), so the
// gateway forwards the acting identity in a header.
func actorFrom(r *http.Request) string {
	return r.Header.Get("X-Actor")
}
