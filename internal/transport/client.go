// Package transport is the HTTP client the live data sources use to reach a
// remote HR backend.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"

	"github.com/simp-lee/hrdesk/internal/domain"
)

const (
	DefaultBasePath = "/api/v1"
	DefaultTimeout  = 10 * time.Second
)

type (
	Client struct {
		baseURL *url.URL
		token   string
		headers http.Header
		http    *retryablehttp.Client
	}

	// Config provides configuration details to the transport.
	Config struct {
		// URL of the remote backend, e.g. https://hr.example.com.
		BaseURL string
		// Path prefix the API is served on. Defaults to /api/v1.
		BasePath string
		// Optional bearer token sent on every request.
		Token string
		// Headers that will be added to every request.
		Headers http.Header
		// Per-attempt timeout. Defaults to 10s.
		Timeout time.Duration
		// Number of retries on transient failures. Zero disables retries.
		RetryMax int
		// Override default http transport.
		Transport http.RoundTripper
		// Logger for retry attempts.
		Logger *slog.Logger
	}
)

// New builds a client for cfg.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("transport: missing base url")
	}
	if cfg.BasePath == "" {
		cfg.BasePath = DefaultBasePath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("transport: invalid base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("transport: unsupported scheme %q", baseURL.Scheme)
	}
	baseURL.Path = path.Join(baseURL.Path, cfg.BasePath)
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	headers := make(http.Header)
	maps.Copy(headers, cfg.Headers)
	headers.Set("User-Agent", "hrdesk")

	c := &Client{
		baseURL: baseURL,
		token:   cfg.Token,
		headers: headers,
	}
	c.http = &retryablehttp.Client{
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
		HTTPClient:   &http.Client{Transport: cfg.Transport, Timeout: cfg.Timeout},
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		RetryMax:     cfg.RetryMax,
		Logger:       cfg.Logger, // *slog.Logger satisfies retryablehttp.LeveledLogger
	}
	if cfg.RetryMax > 0 {
		logger := cfg.Logger
		c.http.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
			retry, retryErr := retryablehttp.ErrorPropagatedRetryPolicy(ctx, resp, err)
			if retry {
				if retryErr != nil {
					err = retryErr
				}
				if resp != nil && resp.Request != nil {
					logger.WarnContext(ctx, "retrying request", "url", resp.Request.URL.String(), "status", resp.StatusCode, "error", err)
				} else {
					logger.WarnContext(ctx, "retrying request", "error", err)
				}
			}
			return retry, retryErr
		}
	} else {
		c.http.CheckRetry = func(_ context.Context, _ *http.Response, err error) (bool, error) {
			return false, err
		}
	}
	return c, nil
}

// Host returns the remote host:port.
func (c *Client) Host() string {
	return c.baseURL.Host
}

// Get decodes the JSON body of GET path into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues DELETE path and discards any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do sends a request and decodes a 2xx JSON response into out when out is
// non-nil.
//
// path is resolved relative to the base URL; a leading slash is ignored so
// "/employees" and "employees" are equivalent. Non-2xx responses and
// network failures are returned as *domain.AppError: 404 as NotFound, other
// 4xx as Validation, everything else as Transport.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(method, path, body)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "building request", err)
	}
	req = req.WithContext(ctx)

	resp, err := c.http.Do(req)
	if err != nil {
		// If the context has been canceled its error is more useful.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return domain.NewAppError(domain.CodeTransport, "backend unreachable", err)
	}
	defer resp.Body.Close()

	if err := checkResponseCode(resp); err != nil {
		return err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewAppError(domain.CodeTransport, "decoding response", err)
	}
	return nil
}

func (c *Client) newRequest(method, p string, v any) (*retryablehttp.Request, error) {
	u, err := c.baseURL.Parse(strings.TrimPrefix(p, "/"))
	if err != nil {
		return nil, err
	}

	var body any
	if v != nil {
		if body, err = json.Marshal(v); err != nil {
			return nil, err
		}
	}

	req, err := retryablehttp.NewRequest(method, u.String(), body)
	if err != nil {
		return nil, err
	}

	maps.Copy(req.Header, c.headers)
	req.Header.Set("Accept", "application/json")
	if v != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// checkResponseCode maps a non-2xx response onto the error taxonomy.
func checkResponseCode(r *http.Response) error {
	if r.StatusCode >= 200 && r.StatusCode <= 299 {
		return nil
	}

	msg := tryUnmarshalErrorMessage(r.Body)
	if msg == "" {
		msg = r.Status
	}
	cause := fmt.Errorf("%s %s: %s", r.Request.Method, r.Request.URL.Path, r.Status)

	switch {
	case r.StatusCode == http.StatusNotFound:
		return domain.NewAppError(domain.CodeNotFound, msg, cause)
	case r.StatusCode >= 400 && r.StatusCode <= 499:
		return domain.NewAppError(domain.CodeValidation, msg, cause)
	default:
		return domain.NewAppError(domain.CodeTransport, msg, cause)
	}
}

// tryUnmarshalErrorMessage reads the message of a {code, message, data}
// error envelope. It returns "" when the body is not one.
func tryUnmarshalErrorMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}
