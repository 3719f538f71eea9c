package config

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PerformanceLogger logs every request with its latency and warns on slow ones.
func PerformanceLogger(log *zap.Logger, slow time.Duration) gin.HandlerFunc {
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
		}
		log.Info("[PERF]", fields...)

		if latency > slow {
			log.Warn("SLOW REQUEST", fields...)
		}
	}
}
