package middleware

import (
	"github.com/ncobase/taskapi/consts"
	"github.com/ncobase/taskapi/ctxutil"
	"github.com/ncobase/taskapi/logging/observes"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// Trace ensures every request carries a trace id, reusing the incoming
// X-Trace-ID header when present, and echoes it in the response.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.GetHeader(consts.TraceIDHeader); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)

		c.Request = c.Request.WithContext(ctx)
		c.Set(consts.TraceIDKey, traceID)
		c.Header(consts.TraceIDHeader, traceID)
		c.Next()
	}
}

// Tracing opens a handler span around each request.
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := observes.StartSpan(c.Request.Context(), observes.LayerHandler, c.Request.Method+" "+route,
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String(consts.TraceIDKey, ctxutil.GetTraceID(c.Request.Context())),
		)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
		var err error
		if last := c.Errors.Last(); last != nil {
			err = last.Err
		}
		span.End(err)
	}
}
