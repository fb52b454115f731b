package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "users_api"

var (
	reqTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route template, method and status code.",
	}, []string{"route", "method", "code"})

	reqDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route template and method.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method"})

	reqInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_in_flight",
		Help:      "Requests currently being served.",
	})
)

func init() { prometheus.MustRegister(reqTotal, reqDuration, reqInFlight) }

// Metrics labels by route template, so /users/1 and /users/2 share a series.
// Requests that match no route are folded into "unmatched".
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqInFlight.Inc()
		defer reqInFlight.Dec()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		reqTotal.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		reqDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
