package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/stilbar/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts and latency.  The route template is used as
// the path label so parameterized routes do not explode cardinality.
func Metrics(m *prometheus.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
