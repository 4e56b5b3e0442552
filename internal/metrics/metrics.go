package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	URLsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slugd_urls_created_total",
		Help: "URL records successfully created.",
	})

	URLsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slugd_urls_deleted_total",
		Help: "URL records successfully deleted.",
	})

	SlugConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slugd_slug_conflicts_total",
		Help: "Create or update attempts rejected because the slug was taken in the language scope.",
	})

	DefaultsPromotedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slugd_defaults_promoted_total",
		Help: "Sibling URLs promoted to default after a default URL was deleted.",
	})

	SlugsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slugd_slugs_generated_total",
		Help: "Unique slugs produced by the generator.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slugd_http_request_duration_seconds",
		Help:    "Time from request receipt to response.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
	}, []string{"method", "status"})
)
