package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbonbazar_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carbonbazar_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	purchasesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carbonbazar_purchases_total",
			Help: "Completed credit purchases.",
		},
	)

	purchasedCreditsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carbonbazar_purchased_credits_total",
			Help: "Total credits bought across all purchases.",
		},
	)
)

// Metrics records request counts and latency per route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

// CountPurchase records one completed purchase of the given size.
func CountPurchase(credits int64) {
	purchasesTotal.Inc()
	purchasedCreditsTotal.Add(float64(credits))
}
