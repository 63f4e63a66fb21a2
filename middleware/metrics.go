package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"shopverse/metrics"
)

// RequestMetrics records per-route request latency. The label is the route
// template, not the raw path, so IDs do not explode the cardinality.
func RequestMetrics(m *metrics.OrderMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := float64(time.Since(start)) / float64(time.Millisecond)
		m.RequestLatencyMS.WithLabelValues(route).Observe(elapsed)
	}
}
