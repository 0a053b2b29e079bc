package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"quiz-client/internal/credentials"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 10 * time.Second
)

// ErrUnavailable wraps transport-level failures so callers can distinguish
// "backend unreachable" from API rejections.
var ErrUnavailable = errors.New("quiz backend unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Client issues authenticated JSON requests against the quiz backend. Tokens
// come from the injected credential store on every request; a 401 response
// clears the store and fires the OnUnauthorized hook.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	creds          credentials.Store
	retry          RetryPolicy
	logger         *slog.Logger
	onUnauthorized func()
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithRetryPolicy(policy RetryPolicy) ClientOption {
	return func(c *Client) {
		if policy != nil {
			c.retry = policy
		}
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUnauthorizedHook registers a callback invoked after a 401 response has
// cleared the stored credentials (the terminal analogue of a sign-in redirect).
func WithUnauthorizedHook(hook func()) ClientOption {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

func NewClient(baseURL string, creds credentials.Store, opts ...ClientOption) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if creds == nil {
		creds = credentials.NewMemStore()
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		creds:      creds,
		retry:      NoRetry(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Detail  json.RawMessage `json:"detail"`
}

type errorBody struct {
	Error        string          `json:"error"`
	Message      string          `json:"message"`
	Detail       json.RawMessage `json:"detail"`
	AppException string          `json:"app_exception"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, out any) error {
	var encoded []byte
	if requestBody != nil {
		var err error
		encoded, err = json.Marshal(requestBody)
		if err != nil {
			return err
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += c.retry.Retries()
	}

	var lastErr error
	for try := 0; try < attempts; try++ {
		if try > 0 {
			if err := sleepCtx(ctx, c.retry.Backoff(try)); err != nil {
				return lastErr
			}
		}

		retryable, err := c.doOnce(ctx, method, path, encoded, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return lastErr
}

// doOnce reports whether the failure is worth retrying (transport errors and
// 5xx responses on idempotent calls) alongside the error itself.
func (c *Client) doOnce(ctx context.Context, method, path string, encoded []byte, out any) (bool, error) {
	var body io.Reader
	if encoded != nil {
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return false, err
	}
	if encoded != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("X-Request-ID", uuid.NewString())

	token, err := c.creds.Token()
	if err == nil && token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Warn("backend request failed", "method", method, "path", path, "error", err)
		return true, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer response.Body.Close()

	c.logger.Debug("backend request", "method", method, "path", path, "status", response.StatusCode)

	if response.StatusCode == http.StatusUnauthorized {
		_ = c.creds.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return false, c.apiError(response)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return response.StatusCode >= http.StatusInternalServerError, c.apiError(response)
	}

	if out == nil {
		return false, nil
	}

	var wrapped envelope
	if err := json.NewDecoder(response.Body).Decode(&wrapped); err != nil {
		return false, err
	}
	if len(wrapped.Data) == 0 || string(wrapped.Data) == "null" {
		return false, &APIError{StatusCode: response.StatusCode, Message: "empty response data"}
	}
	return false, json.Unmarshal(wrapped.Data, out)
}

func (c *Client) apiError(response *http.Response) error {
	apiErr := &APIError{StatusCode: response.StatusCode}

	var payload errorBody
	if err := json.NewDecoder(response.Body).Decode(&payload); err == nil {
		apiErr.Message = firstNonEmpty(
			payload.Error,
			payload.AppException,
			payload.Message,
			detailString(payload.Detail),
		)
	}
	if apiErr.Message == "" {
		apiErr.Message = response.Status
	}
	return apiErr
}

func detailString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
