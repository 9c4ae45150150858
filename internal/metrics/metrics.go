package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rustyeddy/tickcalc/risk"
)

// Outcome labels for Calculations.
const (
	OutcomeOK                = "ok"
	OutcomeInvalidInput      = "invalid_input"
	OutcomeNotFound          = "not_found"
	OutcomeInvalidInstrument = "invalid_instrument"
	OutcomeError             = "error"
)

// Metrics groups the collectors exported by the HTTP adapter. Each instance
// owns its registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	Calculations    *prometheus.CounterVec
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tickcalc_calculations_total",
			Help: "Calculations by instrument symbol and outcome",
		}, []string{"symbol", "outcome"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tickcalc_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tickcalc_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.Registry.MustRegister(
		m.Calculations,
		m.Requests,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Outcome maps a calculator error to its metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, risk.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, risk.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, risk.ErrInvalidInstrument):
		return OutcomeInvalidInstrument
	}
	return OutcomeError
}

// ObserveCalculation counts one calculation. symbol may be empty when the
// instrument was never resolved.
func (m *Metrics) ObserveCalculation(symbol string, err error) {
	if symbol == "" {
		symbol = "unknown"
	}
	m.Calculations.WithLabelValues(symbol, Outcome(err)).Inc()
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
