package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/hrdesk/internal/pkg"
)

// Toast kinds understood by the console script.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// ShowToast asks the console to display message through an HX-Trigger
// showToast event.
func ShowToast(c *gin.Context, message, kind string) {
	trigger, _ := json.Marshal(map[string]any{
		"showToast": map[string]string{"message": message, "type": kind},
	})
	c.Header("HX-Trigger", string(trigger))
}

// abortWithError stops the chain. htmx requests get an error toast and keep
// the current page; other clients get the JSON envelope.
func abortWithError(c *gin.Context, status int, message string) {
	c.Abort()
	if IsHTMX(c) {
		c.Header("HX-Reswap", "none")
		ShowToast(c, message, ToastError)
		c.String(status, message)
		return
	}
	c.JSON(status, pkg.Response{Code: status, Message: message})
}

// acceptsHTML reports whether the client explicitly asked for HTML.
func acceptsHTML(c *gin.Context) bool {
	return strings.Contains(strings.ToLower(c.GetHeader("Accept")), "text/html")
}

func statusMessage(status int) string {
	return strings.ToLower(http.StatusText(status))
}
