package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the host and
// the solver core.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	solveDuration   prometheus.Histogram
	solveTotal      prometheus.Counter
	schedulesFound  prometheus.Counter
	catalogSections prometheus.Gauge
	catalogCourses  prometheus.Gauge
	rowsDropped     prometheus.Counter
}

// NewMetricsService registers the core Prometheus collectors.
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

	solveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solve_duration_seconds",
		Help:    "Duration of schedule solve calls",
		Buckets: prometheus.DefBuckets,
	})

	solveTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solves_total",
		Help: "Total number of solve calls",
	})

	schedulesFound := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedules_found_total",
		Help: "Total schedules returned across solve calls",
	})

	catalogSections := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_sections",
		Help: "Offerings currently loaded in the catalog",
	})

	catalogCourses := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_courses",
		Help: "Distinct course keys currently loaded in the catalog",
	})

	rowsDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_rows_dropped_total",
		Help: "Rows dropped or merged away during normalization",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, solveDuration, solveTotal,
		schedulesFound, catalogSections, catalogCourses, rowsDropped, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		solveDuration:   solveDuration,
		solveTotal:      solveTotal,
		schedulesFound:  schedulesFound,
		catalogSections: catalogSections,
		catalogCourses:  catalogCourses,
		rowsDropped:     rowsDropped,
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
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveSolve records one solve call.
func (m *MetricsService) ObserveSolve(duration time.Duration, schedules int) {
	if m == nil {
		return
	}
	m.solveTotal.Inc()
	m.solveDuration.Observe(duration.Seconds())
	m.schedulesFound.Add(float64(schedules))
}

// SetCatalogSize tracks the loaded catalog dimensions.
func (m *MetricsService) SetCatalogSize(sections, courses int) {
	if m == nil {
		return
	}
	m.catalogSections.Set(float64(sections))
	m.catalogCourses.Set(float64(courses))
}

// AddDroppedRows counts rows that normalization dropped or merged into
// another offering.
func (m *MetricsService) AddDroppedRows(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.rowsDropped.Add(float64(count))
}
