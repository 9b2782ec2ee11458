package middlewares

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Piyush-sahoo/Vobiz-X-Pipecat/internal/infrastructure/metrics"
)

// Metrics records per-request counters labelled by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		metrics.RecordRequest(c.Request.Method, endpoint, status)
	}
}
