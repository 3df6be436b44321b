package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the estimate service.
// Every method is safe on a nil receiver so tests can pass nil.
type Metrics struct {
	EstimateTransitions   *prometheus.CounterVec
	PricebookCalculations *prometheus.CounterVec
	ReviewOutcomes        *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
}

// New creates and registers the collectors on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EstimateTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldservice_estimate_transitions_total",
			Help: "Estimate lifecycle transitions applied, by transition name",
		}, []string{"transition"}),
		PricebookCalculations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldservice_pricebook_calculations_total",
			Help: "Pricebook calculations, labelled by whether the minimum charge applied",
		}, []string{"minimum_applied"}),
		ReviewOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldservice_estimate_reviews_total",
			Help: "AI estimate review requests by outcome",
		}, []string{"outcome"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fieldservice_http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

func (m *Metrics) ObserveTransition(name string) {
	if m == nil {
		return
	}
	m.EstimateTransitions.WithLabelValues(name).Inc()
}

func (m *Metrics) ObservePricebookCalculation(appliedMinimum bool) {
	if m == nil {
		return
	}
	m.PricebookCalculations.WithLabelValues(strconv.FormatBool(appliedMinimum)).Inc()
}

func (m *Metrics) ObserveReview(outcome string) {
	if m == nil {
		return
	}
	m.ReviewOutcomes.WithLabelValues(outcome).Inc()
}

// Middleware records request latency. Unmatched routes share one label so
// arbitrary paths cannot blow up cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
