package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/simp-lee/logger"
)

func setupRequestIDRouter(cfg RequestIDConfig) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDWithConfig(cfg))
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	r.GET("/ctx", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c.Request.Context())+"|"+
			findAttrValue(logger.FromContext(c.Request.Context()), "request_id"))
	})
	return r
}

func findAttrValue(attrs []slog.Attr, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value.String()
		}
	}
	return ""
}

func getID(r *gin.Engine, path, upstream string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if upstream != "" {
		req.Header.Set(requestIDHeader, upstream)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	w := getID(setupRequestIDRouter(RequestIDConfig{}), "/id", "")

	id := w.Body.String()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("request id %q is not a UUID: %v", id, err)
	}
	if got := w.Header().Get(requestIDHeader); got != id {
		t.Errorf("header = %q, want %q", got, id)
	}
}

func TestRequestID_UpstreamIgnoredByDefault(t *testing.T) {
	w := getID(setupRequestIDRouter(RequestIDConfig{}), "/id", "proxy-123")
	if w.Body.String() == "proxy-123" {
		t.Fatal("upstream id reused without TrustUpstream")
	}
}

func TestRequestID_TrustedUpstream(t *testing.T) {
	tests := []struct {
		name     string
		upstream string
		reused   bool
	}{
		{"plain", "proxy-123", true},
		{"64 chars", strings.Repeat("a", 64), true},
		{"65 chars", strings.Repeat("a", 65), false},
		{"underscore", "bad_id", false},
		{"spaces", "bad id", false},
	}
	r := setupRequestIDRouter(RequestIDConfig{TrustUpstream: true})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getID(r, "/id", tt.upstream).Body.String()
			if (got == tt.upstream) != tt.reused {
				t.Fatalf("id = %q, reused = %v, want %v", got, got == tt.upstream, tt.reused)
			}
			if !tt.reused {
				if _, err := uuid.Parse(got); err != nil {
					t.Fatalf("replacement id %q is not a UUID", got)
				}
			}
		})
	}
}

func TestRequestID_StoredInGoContext(t *testing.T) {
	w := getID(setupRequestIDRouter(RequestIDConfig{TrustUpstream: true}), "/ctx", "ctx-test-456")

	if got := w.Body.String(); got != "ctx-test-456|ctx-test-456" {
		t.Errorf("context ids = %q", got)
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	r := setupRequestIDRouter(RequestIDConfig{})
	seen := make(map[string]bool)
	for range 100 {
		id := getID(r, "/id", "").Body.String()
		if seen[id] {
			t.Fatalf("duplicate request ID: %q", id)
		}
		seen[id] = true
	}
}

func TestRequestID_OutsideRequest(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := GetRequestID(c); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
	if got := RequestIDFromContext(t.Context()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
}
