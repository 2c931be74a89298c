package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/shared/apperr"
	"lunor.shop/app/pkg/view"
	"lunor.shop/app/templates/pages"
)

// WantsJSON reports whether the client asked for JSON or hit the /api tree.
func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the last error recorded with Fail, unless the handler
// already wrote a response.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		publicMsg := apperr.PublicMessage(err)
		rid := GetRequestID(c)

		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		l.LogAttrs(c.Request.Context(), level, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		if WantsJSON(c) {
			payload := gin.H{
				"error":      publicMsg,
				"request_id": rid,
			}
			if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
				payload["fields"] = ae.Fields
			}
			c.AbortWithStatusJSON(status, payload)
			return
		}

		c.Abort()
		c.Status(status)
		c.Header("Content-Type", "text/html; charset=utf-8")
		page := PageData(c, "")
		if rerr := pages.Error(page, view.ErrorPage{Status: status, Message: publicMsg, RequestID: rid}).
			Render(c.Request.Context(), c.Writer); rerr != nil {
			l.Error("error_page_render_failed", slog.String("request_id", rid), slog.Any("err", rerr))
		}
	}
}
