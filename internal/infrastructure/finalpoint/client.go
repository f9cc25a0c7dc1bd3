package finalpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/finalpoint-client/internal/domain/user"
	"github.com/riskibarqy/finalpoint-client/internal/platform/id"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
	"github.com/riskibarqy/finalpoint-client/internal/platform/resilience"
	"github.com/riskibarqy/finalpoint-client/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "finalpoint-client"
	maxResponseBytes = 4 << 20
)

var errFinalPointTransient = crerr.New("finalpoint transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Session    user.SessionStore
	// OnUnauthorized runs for every 401 answering a request that carried a
	// token, after the session has been cleared.
	OnUnauthorized func(ctx context.Context)
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	UserAgent      string
	RequestIDs     id.Generator
}

// Client talks to the FinalPoint REST API. Every response is the envelope
// {success, data, message}; methods return the decoded data.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	session        user.SessionStore
	onUnauthorized func(ctx context.Context)
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	userAgent      string
	requestIDs     id.Generator
	flight         resilience.Flight[[]byte]
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// text is the server's explanation, whichever field carries it.
func (e envelope) text() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(e.Error)
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if err := validateBaseURL(baseURL); err != nil {
		return nil, err
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("finalpoint client requires a session store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	requestIDs := cfg.RequestIDs
	if requestIDs == nil {
		requestIDs = id.NewUUIDGenerator()
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		session:        cfg.Session,
		onUnauthorized: cfg.OnUnauthorized,
		logger:         logger.Named("finalpoint.client"),
		breaker:        resilience.NewBreakerFromConfig(cfg.CircuitBreaker),
		userAgent:      userAgent,
		requestIDs:     requestIDs,
	}, nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return crerr.New("finalpoint base url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return crerr.Wrap(err, "parse finalpoint base url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return crerr.Newf("finalpoint base url must use http or https, got %q", parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return crerr.New("finalpoint base url host is required")
	}
	return nil
}

// do sends one request and decodes the envelope data into target. found is
// false when the envelope carries no data.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, target any) (bool, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "finalpoint circuit breaker rejected request", "method", method, "path", path, "state", c.breaker.State())
		return false, &Error{
			Kind:   KindNetwork,
			Method: method,
			Path:   path,
			cause:  fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err),
		}
	}

	var payload []byte
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		payload = encoded
	}

	fullURL := buildURL(c.baseURL, path)
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	token := strings.TrimSpace(c.session.Token())
	call := func() ([]byte, error) {
		raw, err := c.execute(ctx, method, path, fullURL, payload, token)
		if err != nil && IsTransient(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return raw, err
	}

	var (
		raw []byte
		err error
	)
	if method == http.MethodGet {
		raw, err, _ = c.flight.Do(method+" "+fullURL+" "+hashToken(token), call)
	} else {
		raw, err = call()
	}
	if err != nil {
		return false, err
	}

	var decoded envelope
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return false, &Error{
			Kind:   KindServer,
			Method: method,
			Path:   path,
			Status: http.StatusOK,
			Body:   abbreviateBody(raw),
			cause:  crerr.Wrap(err, "decode envelope"),
		}
	}
	if !decoded.Success {
		return false, &Error{
			Kind:    KindServer,
			Method:  method,
			Path:    path,
			Status:  http.StatusOK,
			Message: decoded.text(),
			Body:    abbreviateBody(raw),
		}
	}
	if isNullData(decoded.Data) {
		return false, nil
	}
	if target == nil {
		return true, nil
	}
	if err := sonic.Unmarshal(decoded.Data, target); err != nil {
		return false, &Error{
			Kind:   KindServer,
			Method: method,
			Path:   path,
			Status: http.StatusOK,
			Body:   abbreviateBody(decoded.Data),
			cause:  crerr.Wrapf(err, "decode %s data", path),
		}
	}
	return true, nil
}

// getOptional is do for lookups where a 404 means "absent", not failure.
func (c *Client) getOptional(ctx context.Context, path string, query url.Values, target any) (bool, error) {
	found, err := c.do(ctx, http.MethodGet, path, query, nil, target)
	if err != nil {
		if crerr.Is(err, usecase.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return found, nil
}

func (c *Client) execute(ctx context.Context, method, path, fullURL string, payload []byte, token string) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("User-Agent", c.userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID, idErr := c.requestIDs.NewID(); idErr == nil {
		req.Header.Set("X-Request-Id", requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindNetwork
		if isTimeout(err) {
			kind = KindTimeout
		}
		c.logger.WarnContext(ctx, "finalpoint request failed",
			"method", method,
			"path", path,
			"kind", kind,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, &Error{
			Kind:   kind,
			Method: method,
			Path:   path,
			cause:  crerr.Mark(crerr.Wrapf(err, "send %s %s", method, path), errFinalPointTransient),
		}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	duration := time.Since(start)
	if readErr != nil {
		kind := KindNetwork
		if isTimeout(readErr) {
			kind = KindTimeout
		}
		return nil, &Error{
			Kind:   kind,
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			cause:  crerr.Mark(crerr.Wrap(readErr, "read response body"), errFinalPointTransient),
		}
	}

	c.logger.DebugContext(ctx, "finalpoint request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
		"bytes", len(raw),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		if token != "" {
			c.handleUnauthorized(ctx)
		}
		return nil, &Error{
			Kind:    KindAuth,
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: envelopeMessage(raw),
			Body:    abbreviateBody(raw),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "finalpoint non-2xx response",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"body", abbreviateBody(raw),
		)
		return nil, &Error{
			Kind:    KindServer,
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: envelopeMessage(raw),
			Body:    abbreviateBody(raw),
		}
	}

	return raw, nil
}

// handleUnauthorized tears the session down and hands navigation to the
// composition root.
func (c *Client) handleUnauthorized(ctx context.Context) {
	if err := c.session.Clear(); err != nil {
		c.logger.ErrorContext(ctx, "clear session after 401 failed", "error", err)
	}
	c.logger.InfoContext(ctx, "session cleared after unauthorized response")
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}
