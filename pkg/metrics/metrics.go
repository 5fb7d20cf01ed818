// Package metrics holds the Prometheus collectors of the visit form. All
// collectors live on a private registry served at /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	dealerLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visitform_dealer_loads_total",
			Help: "Dealer list requests, partitioned by result (hit, miss, error).",
		},
		[]string{"result"},
	)

	submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visitform_submissions_total",
			Help: "Form submissions, partitioned by variant and status (success, invalid, failure).",
		},
		[]string{"variant", "status"},
	)

	writeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "visitform_backend_write_seconds",
			Help:    "Duration of backend writes in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
)

func init() {
	registry.MustRegister(dealerLoads, submissions, writeDuration)
}

const (
	LoadHit   = "hit"
	LoadMiss  = "miss"
	LoadError = "error"

	StatusSuccess = "success"
	StatusInvalid = "invalid"
	StatusFailure = "failure"
)

func DealerLoad(result string) {
	dealerLoads.WithLabelValues(result).Inc()
}

func Submission(variant, status string) {
	submissions.WithLabelValues(variant, status).Inc()
}

func ObserveWrite(backend string, d time.Duration) {
	writeDuration.WithLabelValues(backend).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
