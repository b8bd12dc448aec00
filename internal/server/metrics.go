package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const metricsNamespace = "earlypension"

// Outcome label values
const (
	outcomeSuccess      = "success"
	outcomeInvalidInput = "invalid_input"
	outcomeError        = "error"
)

// DefaultDurationBuckets covers sub-millisecond comparisons up to slow clients
var DefaultDurationBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}

// Metrics holds the service's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	ComparisonsTotal *prometheus.CounterVec
	CrossoverTotal   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.ComparisonsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "comparisons_total",
		Help:      "Comparison requests by outcome",
	}, []string{"outcome"})

	m.CrossoverTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "crossover_total",
		Help:      "Successful comparisons by whether a crossover age was found",
	}, []string{"found"})

	m.RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   DefaultDurationBuckets,
	}, []string{"method", "path", "status_code"})

	m.registry.MustRegister(m.ComparisonsTotal, m.CrossoverTotal, m.RequestDuration)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}
