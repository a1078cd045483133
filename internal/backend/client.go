// Package backend is the single chokepoint for calls to the dispatch API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-dashboard/internal/config"
	"github.com/spec-kit/dispatch-dashboard/internal/credentials"
	"github.com/spec-kit/dispatch-dashboard/internal/observability"
)

// timedOutMessage is the stable error string consumers match on.
const timedOutMessage = "Request timed out"

// cookie names the backend may use for the session credential.
var sessionCookieNames = []string{"token", "auth_token"}

// Options tunes a single backend call.
type Options struct {
	Method  string
	Headers map[string]string
	Body    any
	Timeout time.Duration
}

// Client normalizes every outbound call into an Envelope. It owns the cookie
// jar holding any server-set session cookie and consults the fallback token
// store when no cookie is present.
type Client struct {
	baseURL    string
	http       *http.Client
	creds      *credentials.Store
	timeout    time.Duration
	maxTimeout time.Duration
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// New builds a client against cfg.BaseURL with a fresh cookie jar.
func New(cfg config.BackendConfig, creds *credentials.Store, logger *zap.Logger, metrics *observability.Metrics) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		http:       &http.Client{Jar: jar},
		creds:      creds,
		timeout:    cfg.Timeout(),
		maxTimeout: cfg.MaxTimeout(),
		logger:     logger,
		metrics:    metrics,
	}
}

// Token resolves the current credential: session cookie first, then the
// fallback store. The cookie is never overwritten by fallback values.
func (c *Client) Token() (string, bool) {
	if tok := c.cookieToken(); tok != "" {
		return tok, true
	}
	if c.creds != nil {
		if tok, ok := c.creds.Load(); ok {
			return tok, true
		}
	}
	return "", false
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts Options) Envelope {
	opts.Method = http.MethodGet
	return c.Do(ctx, path, opts)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, opts Options) Envelope {
	opts.Method = http.MethodPost
	opts.Body = body
	return c.Do(ctx, path, opts)
}

// Do performs the call and captures every failure path in the Envelope.
func (c *Client) Do(ctx context.Context, path string, opts Options) Envelope {
	req, cancel, env, ok := c.prepare(ctx, path, opts)
	if !ok {
		return env
	}
	defer cancel()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordBackendCall(path, req.Method, 0, time.Since(start))
		return c.transportFailure(req, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.metrics.RecordBackendCall(path, req.Method, resp.StatusCode, time.Since(start))

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(req, err)
	}

	data := decodeBody(text)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		env := Envelope{Success: false, Status: resp.StatusCode, Data: data, Error: errorMessage(data, resp)}
		c.logger.Warn("backend rejected request",
			zap.String("method", req.Method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("error", env.Error),
		)
		return env
	}

	return Envelope{Success: true, Status: resp.StatusCode, Data: data}
}

// Raw performs the call and hands back the open response for streaming
// payloads such as spreadsheet exports. The caller closes the body.
func (c *Client) Raw(ctx context.Context, path string, opts Options) (*http.Response, context.CancelFunc, error) {
	req, cancel, env, ok := c.prepare(ctx, path, opts)
	if !ok {
		return nil, nil, errors.New(env.Error)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		if isTimeout(err) {
			return nil, nil, errors.New(timedOutMessage)
		}
		return nil, nil, err
	}
	return resp, cancel, nil
}

func (c *Client) prepare(ctx context.Context, path string, opts Options) (*http.Request, context.CancelFunc, Envelope, bool) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	target := path
	if !strings.HasPrefix(path, "http") {
		target = c.baseURL + path
	}
	if _, err := url.ParseRequestURI(target); err != nil {
		return nil, nil, failure(0, "invalid request URL: "+target), false
	}

	timeout := c.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
		if timeout > c.maxTimeout {
			timeout = c.maxTimeout
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)

	var reader io.Reader
	hasBody := false
	contentType := ""
	switch body := opts.Body.(type) {
	case nil:
	case []byte:
		reader, hasBody = bytes.NewReader(body), true
	case string:
		reader, hasBody = strings.NewReader(body), true
	default:
		raw, err := json.Marshal(body)
		if err != nil {
			cancel()
			return nil, nil, failure(0, "encode request body: "+err.Error()), false
		}
		reader, hasBody = bytes.NewReader(raw), true
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		cancel()
		return nil, nil, failure(0, err.Error()), false
	}

	req.Header.Set("Accept", "application/json")
	if hasBody && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok, ok := c.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	return req, cancel, Envelope{}, true
}

func (c *Client) transportFailure(req *http.Request, err error) Envelope {
	message := err.Error()
	if isTimeout(err) {
		message = timedOutMessage
	}
	c.logger.Warn("backend call failed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("error", message),
	)
	return failure(0, message)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (c *Client) cookieToken() string {
	if c.http.Jar == nil || c.baseURL == "" {
		return ""
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.http.Jar.Cookies(u) {
		for _, name := range sessionCookieNames {
			if cookie.Name == name && cookie.Value != "" {
				return cookie.Value
			}
		}
	}
	return ""
}

// decodeBody parses text-first then attempts JSON; non-JSON bodies pass
// through as raw text.
func decodeBody(text []byte) any {
	if len(text) == 0 {
		return nil
	}
	var data any
	if err := json.Unmarshal(text, &data); err != nil {
		return string(text)
	}
	return data
}

// errorMessage picks the structured message field, the raw body, or the
// HTTP status text, in that order.
func errorMessage(data any, resp *http.Response) string {
	if m, ok := data.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := m["error"].(string); ok && msg != "" {
			return msg
		}
	}
	if s, ok := data.(string); ok && s != "" {
		return s
	}
	if status := http.StatusText(resp.StatusCode); status != "" {
		return status
	}
	return resp.Status
}
