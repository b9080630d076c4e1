package middleware

import (
	"time"

	"github.com/bloghub-dev/bloghub/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records method, matched route and status for every
// request. Unmatched routes fall back to the raw path.
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		route := ctx.FullPath()

		if route == "" {
			route = ctx.Request.URL.Path
		}

		collector.RecordRequest(ctx.Request.Method, route, ctx.Writer.Status(), time.Since(start))
	}
}
