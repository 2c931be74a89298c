package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/shared/apperr"
)

// Recovery turns a handler panic into an ordinary 500. The panic value and
// goroutine stack go to the log only; the shopper sees the generic message.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		attrs := []slog.Attr{
			slog.String("request_id", GetRequestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Any("panic", recovered),
			slog.String("stack", string(debug.Stack())),
		}
		l.LogAttrs(c.Request.Context(), slog.LevelError, "panic_recovered", attrs...)

		Fail(c, apperr.Wrap(fmt.Errorf("recovered panic in %s: %v", c.FullPath(), recovered)))
	})
}
