package service

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP surface
// and the schedule generator.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	generationRuns  prometheus.Counter
	nodesVisited    prometheus.Histogram
	candidatesBuilt prometheus.Histogram
	generationTime  prometheus.Histogram
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_generation_runs_total",
		Help: "Total schedule generation runs",
	})

	nodesVisited := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_generation_nodes_visited",
		Help:    "Search nodes visited per generation run",
		Buckets: prometheus.ExponentialBuckets(10, 4, 8),
	})

	candidatesBuilt := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_generation_candidates",
		Help:    "Conflict-free candidates produced per generation run",
		Buckets: prometheus.ExponentialBuckets(1, 2, 9),
	})

	generationTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_generation_duration_seconds",
		Help:    "Wall time of a generation run",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generationRuns, nodesVisited, candidatesBuilt, generationTime, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		generationRuns:  generationRuns,
		nodesVisited:    nodesVisited,
		candidatesBuilt: candidatesBuilt,
		generationTime:  generationTime,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveGeneration records one schedule generation run.
func (m *MetricsService) ObserveGeneration(nodesVisited, candidates int, duration time.Duration) {
	if m == nil {
		return
	}
	m.generationRuns.Inc()
	m.nodesVisited.Observe(float64(nodesVisited))
	m.candidatesBuilt.Observe(float64(candidates))
	m.generationTime.Observe(duration.Seconds())
}
