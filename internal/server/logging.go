package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"prestigo/internal/auth"
	"prestigo/internal/logger"
)

// RequestLoggingMiddleware writes one structured line per request, tagged with the
// caller and booking session when the route has them.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", path,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if id, ok := auth.CallerID(c.Request.Context()); ok {
			args = append(args, "caller_id", id)
		}
		if sessionID := c.Param("sessionID"); sessionID != "" {
			args = append(args, "session_id", sessionID)
		}
		if slotID := c.Param("slotID"); slotID != "" {
			args = append(args, "slot_id", slotID)
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("HTTP request", args...)
		case status == 401 || status == 429:
			logger.Warn("HTTP request", args...)
		default:
			logger.Info("HTTP request", args...)
		}
	}
}
