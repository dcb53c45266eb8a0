package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/hrdesk/internal/middleware"
	"github.com/simp-lee/hrdesk/internal/module/crud"
	"github.com/simp-lee/hrdesk/internal/pkg"
)

var errorTemplates = map[int]string{
	http.StatusBadRequest:          "errors/400.html",
	http.StatusNotFound:            "errors/404.html",
	http.StatusInternalServerError: "errors/500.html",
}

// errorPages answers requests no resource module handled. Browsers get the
// console error page inside the shared layout; message only reaches API
// clients, the templates carry their own wording.
type errorPages struct {
	layout *crud.Layout
}

func (p errorPages) render(c *gin.Context, code int, message string) {
	accept := strings.ToLower(c.GetHeader("Accept"))
	// */* also counts as HTML, so an explicit JSON preference wins first.
	wantsJSON := strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
	if wantsJSON || !acceptsHTML(c) {
		c.JSON(code, pkg.Response{Code: code, Message: message})
		return
	}
	p.renderHTML(c, code)
}

// renderHTML falls back to errors/500.html for unmapped codes and to plain
// text when the template cannot be executed.
func (p errorPages) renderHTML(c *gin.Context, code int) {
	defer func() {
		if r := recover(); r != nil {
			c.Data(code, "text/plain; charset=utf-8",
				[]byte(fmt.Sprintf("%d %s", code, defaultStatusText(code))))
		}
	}()

	tmpl, ok := errorTemplates[code]
	if !ok {
		tmpl = errorTemplates[http.StatusInternalServerError]
	}
	c.HTML(code, tmpl, gin.H{
		"Layout":    p.layout,
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}

// noRoute serves 404s; paths under /api/ always get JSON.
func (p errorPages) noRoute(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") {
		c.JSON(http.StatusNotFound, pkg.Response{Code: http.StatusNotFound, Message: "not found"})
		return
	}
	p.render(c, http.StatusNotFound, "not found")
}

// acceptsHTML matches text/html, */* and an empty Accept header.
func acceptsHTML(c *gin.Context) bool {
	accept := strings.ToLower(c.GetHeader("Accept"))
	return strings.Contains(accept, "text/html") ||
		strings.Contains(accept, "*/*") ||
		strings.TrimSpace(accept) == ""
}

func defaultStatusText(code int) string {
	switch code {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusMethodNotAllowed,
		http.StatusInternalServerError, http.StatusServiceUnavailable:
		return http.StatusText(code)
	default:
		return "Error"
	}
}
