package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

// RequestLogger logs every request with method, path, status and latency
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= 500 {
			event = logger.Error()
		} else if c.Writer.Status() >= 400 {
			event = logger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Str("clientIP", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}
