package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schedulepro/schedule-pro-api/internal/service"
)

// Metrics captures request metrics using the provided service. Unmatched
// routes share one label so probing random paths cannot grow the metric
// cardinality, and the scrape endpoint does not observe itself.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
