package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	csrfCookieName = "_csrf_token"
	csrfFormField  = "_csrf_token"
	csrfHeaderName = "X-CSRF-Token"
	csrfContextKey = "CSRFToken"
	csrfNonceBytes = 32
)

// CSRF protects the console pages with a signed double-submit cookie.
//
// A token is hex(nonce) + "." + base64url(HMAC-SHA256(nonce, secret)). Safe
// requests get a token cookie (readable by the page, SameSite=Strict, Secure
// in release mode) unless they already carry a valid one, and the token is
// exposed to templates through GetCSRFToken. Unsafe requests must repeat the
// cookie token in the _csrf_token form field or the X-CSRF-Token header, which
// the console script adds to every htmx request. Failures answer 403.
//
// The JSON API is registered outside this middleware.
func CSRF(secret string) gin.HandlerFunc {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return func(c *gin.Context) {
			abortWithError(c, http.StatusInternalServerError, "csrf secret is not configured")
		}
	}
	g := csrfGuard{secret: []byte(secret), secure: gin.Mode() == gin.ReleaseMode}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			g.issue(c)
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			g.verify(c)
		default:
			c.Next()
		}
	}
}

type csrfGuard struct {
	secret []byte
	secure bool
}

func (g csrfGuard) issue(c *gin.Context) {
	token, err := c.Cookie(csrfCookieName)
	if err != nil || !g.valid(token) {
		if token, err = g.generate(); err != nil {
			abortWithError(c, http.StatusInternalServerError, "failed to generate csrf token")
			return
		}
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     csrfCookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: false,
			Secure:   g.secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
	c.Set(csrfContextKey, token)
	c.Next()
}

func (g csrfGuard) verify(c *gin.Context) {
	cookieToken, err := c.Cookie(csrfCookieName)
	if err != nil || cookieToken == "" {
		abortWithError(c, http.StatusForbidden, "csrf token missing, reload the page")
		return
	}
	requestToken := c.PostForm(csrfFormField)
	if requestToken == "" {
		requestToken = c.GetHeader(csrfHeaderName)
	}
	if requestToken == "" {
		abortWithError(c, http.StatusForbidden, "csrf token missing, reload the page")
		return
	}
	if !g.valid(cookieToken) || !tokensMatch(cookieToken, requestToken) {
		abortWithError(c, http.StatusForbidden, "csrf token invalid, reload the page")
		return
	}
	c.Set(csrfContextKey, cookieToken)
	c.Next()
}

func (g csrfGuard) generate() (string, error) {
	nonce := make([]byte, csrfNonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	n := hex.EncodeToString(nonce)
	return n + "." + g.sign(n), nil
}

func (g csrfGuard) sign(nonce string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(nonce))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// valid reports whether token is well formed and signed with the secret.
func (g csrfGuard) valid(token string) bool {
	nonce, sig, ok := strings.Cut(token, ".")
	if !ok || nonce == "" || sig == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(sig), []byte(g.sign(nonce))) == 1
}

func tokensMatch(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// GetCSRFToken returns the token CSRF stored for this request, or "".
func GetCSRFToken(c *gin.Context) string {
	if token, ok := c.Get(csrfContextKey); ok {
		if s, ok := token.(string); ok {
			return s
		}
	}
	return ""
}
