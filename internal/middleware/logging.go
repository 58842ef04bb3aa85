package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger writes one line per request at info, warn or error by status class
// and wraps the request in a sentry transaction. Panics are recovered,
// reported to sentry and answered with 500.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		r := c.Request
		ctx := r.Context()

		hub := sentry.GetHubFromContext(ctx)
		if hub == nil {
			hub = sentry.CurrentHub().Clone()
			ctx = sentry.SetHubOnContext(ctx, hub)
		}
		transaction := sentry.StartTransaction(ctx,
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			sentry.WithOpName("http.server"),
			sentry.ContinueFromRequest(r),
			sentry.WithTransactionSource(sentry.SourceURL),
		)
		defer transaction.Finish()
		c.Request = r.WithContext(transaction.Context())
		hub.Scope().SetRequest(c.Request)

		fields := func(status int) []zap.Field {
			out := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if id := RequestIDFrom(c); id != "" {
				out = append(out, zap.String("request_id", id))
			}
			return out
		}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			transaction.Status = sentry.SpanStatusInternalError
			hub.RecoverWithContext(c.Request.Context(), rec)
			logger.Error("panic recovered", append(fields(http.StatusInternalServerError), zap.Any("panic", rec))...)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}()

		c.Next()

		status := c.Writer.Status()
		transaction.Status = sentry.HTTPtoSpanStatus(status)
		for _, err := range c.Errors {
			hub.CaptureException(err.Err)
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request completed", append(fields(status), zap.Strings("errors", c.Errors.Errors()))...)
		case status >= http.StatusBadRequest:
			logger.Warn("request completed", fields(status)...)
		default:
			logger.Info("request completed", fields(status)...)
		}
	}
}
