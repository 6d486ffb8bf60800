package bind

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Metrics middleware.
type MetricsConfig struct {
	Namespace string                // default: "bind"
	Registry  prometheus.Registerer // default: prometheus.DefaultRegisterer
	Buckets   []float64             // default: prometheus.DefBuckets
}

// Metrics returns middleware recording a request counter and a
// duration histogram, labelled by method, path, and status. Expose
// them with promhttp.Handler on the registry you pass in.
func Metrics(cfg MetricsConfig) Middleware {
	if cfg.Namespace == "" {
		cfg.Namespace = "bind"
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	if cfg.Buckets == nil {
		cfg.Buckets = prometheus.DefBuckets
	}

	factory := promauto.With(cfg.Registry)

	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Name:      "requests_total",
		Help:      "Requests handled, by method, path, and status.",
	}, []string{"method", "path", "status"})

	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request handling duration in seconds.",
		Buckets:   cfg.Buckets,
	}, []string{"method", "path"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			requests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
			duration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
		})
	}
}
