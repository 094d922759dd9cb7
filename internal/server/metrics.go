package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iwvelando/fitness-forecast/pkg/fitness"
)

const metricsNamespace = "fitness_forecast"

// Metrics holds the server's Prometheus instruments.
type Metrics struct {
	CounterRequests        *prometheus.CounterVec
	CounterRecommendations *prometheus.CounterVec
	GaugeInFlight          prometheus.Gauge
	HistRequestDuration    *prometheus.HistogramVec
}

// NewRegistry returns a registry carrying the build info, Go runtime and
// process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewMetrics registers the server instruments with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "The total number of handled requests",
		}, []string{"route", "method", "status"}),
		CounterRecommendations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "recommendations_total",
			Help:      "The total number of recommendations produced, by kind",
		}, []string{"kind"}),
		GaugeInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Current number of requests being served",
		}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of requests in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"route", "method"}),
	}
}

// ObserveRecommendations counts the recommendations of one result.
func (m *Metrics) ObserveRecommendations(recs []fitness.Recommendation) {
	for _, rec := range recs {
		m.CounterRecommendations.WithLabelValues(string(rec.Kind)).Inc()
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// middleware records request counts and durations labelled by route template,
// or "unmatched" for requests no route accepted.
func (m *Metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.GaugeInFlight.Inc()
		defer m.GaugeInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.CounterRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.HistRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
