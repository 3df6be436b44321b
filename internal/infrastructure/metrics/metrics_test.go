package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTransition("send")
		m.ObservePricebookCalculation(true)
		m.ObserveReview("ok")
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCounters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.ObserveTransition("send")
	m.ObserveTransition("send")
	m.ObserveTransition("accept")
	m.ObservePricebookCalculation(true)
	m.ObserveReview("failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EstimateTransitions.WithLabelValues("send")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EstimateTransitions.WithLabelValues("accept")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PricebookCalculations.WithLabelValues("true")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PricebookCalculations.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReviewOutcomes.WithLabelValues("failed")))
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/estimates/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/api/estimates/a", "/api/estimates/b", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequestDuration))
	families, err := reg.Gather()
	require.NoError(t, err)

	routes := map[string]uint64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "route" {
					routes[lp.GetValue()] = metric.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	assert.Equal(t, uint64(2), routes["/api/estimates/:id"])
	assert.Equal(t, uint64(1), routes["unmatched"])
}
