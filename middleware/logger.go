package middleware

import (
	"net/http"
	"time"

	"github.com/ncobase/taskapi/logging/logger"
	"github.com/ncobase/taskapi/net/resp"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"method", method,
			"path", path,
			"status", status,
			"duration", time.Since(start).String(),
			"ip", c.ClientIP(),
		}
		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			log.Warn(ctx, "HTTP request", kv...)
		default:
			log.Info(ctx, "HTTP request", kv...)
		}
	}
}

// Recovery turns panics into a 500 envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error(c.Request.Context(), "panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		resp.Fail(c.Writer, resp.InternalServer("Server error"))
		c.Abort()
	})
}
