package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in a later handler into a 500. The panic value and
// stack are logged with the request id; the client sees the console 500 page
// if it asked for HTML, an error toast for htmx requests, and the JSON
// envelope otherwise.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.ErrorContext(c.Request.Context(), "panic recovered",
				slog.Any("panic", rec),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("stack", string(debug.Stack())),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			if acceptsHTML(c) && !IsHTMX(c) {
				c.Abort()
				renderErrorPage(c)
				return
			}
			abortWithError(c, http.StatusInternalServerError, statusMessage(http.StatusInternalServerError))
		}()
		c.Next()
	}
}

// renderErrorPage shows errors/500.html with the request id for support
// requests. Plain text is the fallback when no renderer is configured.
func renderErrorPage(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("500 Internal Server Error"))
		}
	}()
	c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{
		"RequestID": GetRequestID(c),
		"CSRFToken": GetCSRFToken(c),
	})
}
