package databricks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const (
	// maxRetries bounds the retry loop for idempotent requests.
	maxRetries           = 2
	retryInitialInterval = 250 * time.Millisecond
)

// API is the call surface the tool handlers depend on. *Client is the real
// implementation; tests substitute a recording fake.
type API interface {
	Request(ctx context.Context, method, path string, params map[string]string, body any) (map[string]any, error)
}

// Client performs authenticated requests against a Databricks workspace.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a Client for the given workspace host and API token.
// Every request is bounded by timeout.
func NewClient(host, token string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(host, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Request performs one API call and decodes the JSON response. Idempotent
// GETs are retried a bounded number of times on transport errors and 5xx
// responses; everything else fails on the first attempt.
func (c *Client) Request(ctx context.Context, method, path string, params map[string]string, body any) (map[string]any, error) {
	var result map[string]any

	attempt := func() error {
		res, err := c.do(ctx, method, path, params, body)
		if err != nil {
			if method == http.MethodGet && retryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		result = res
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval
	err := backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx))
	if err != nil {
		c.logger.Debug().Str("method", method).Str("path", path).Err(err).Msg("API request failed")
		return nil, err
	}
	return result, nil
}

// do performs a single HTTP exchange.
func (c *Client) do(ctx context.Context, method, path string, params map[string]string, body any) (map[string]any, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	if len(params) > 0 {
		q := req.URL.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("API request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp.StatusCode, data)
	}

	if len(data) == 0 {
		return map[string]any{}, nil
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result, nil
}

// classifyTransport maps an http.Client error onto TransportError, marking
// timeouts so callers can tell them from connection failures.
func classifyTransport(err error) error {
	var uerr *url.Error
	timeout := errors.Is(err, context.DeadlineExceeded)
	if errors.As(err, &uerr) && uerr.Timeout() {
		timeout = true
	}
	return &TransportError{Err: err, Timeout: timeout}
}

// decodeAPIError extracts the platform's error message from a non-2xx body.
// Databricks errors carry {"error_code": ..., "message": ...}; anything else
// is surfaced as raw text.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: string(body)}

	var parsed struct {
		ErrorCode string `json:"error_code"`
		Message   string `json:"message"`
		Error     string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "" && parsed.ErrorCode != "":
			apiErr.Message = parsed.ErrorCode + ": " + parsed.Message
		case parsed.Message != "":
			apiErr.Message = parsed.Message
		case parsed.Error != "":
			apiErr.Message = parsed.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// retryable reports whether an attempt failure is transient. Timeouts are
// not retried: the attempt already consumed the caller's time budget.
func retryable(err error) bool {
	var terr *TransportError
	if errors.As(err, &terr) {
		return !terr.Timeout
	}
	var aerr *APIError
	if errors.As(err, &aerr) {
		return aerr.Retryable()
	}
	return false
}
