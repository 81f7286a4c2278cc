package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/controlroom/internal/logging"
	"github.com/muurk/controlroom/internal/screen"
	"github.com/muurk/controlroom/internal/version"
)

const (
	// DefaultEndpoint is the path of the active-screen list on the feed host
	DefaultEndpoint = "/api/services/app/HienThiDieuKhienTrungTam/GetActiveDisplays"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default number of extra attempts for a failed poll
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the delay unit; attempt n waits n times this
	DefaultRetryDelay = 1 * time.Second

	// maxBodySize bounds a feed response
	maxBodySize = 4 << 20
)

// RequestObserver is told about every HTTP attempt
type RequestObserver interface {
	ObserveRequest(d time.Duration, err error)
}

// Result is one successful fetch
type Result struct {
	Screens  []screen.Screen
	Dropped  []error // entries skipped without failing the snapshot
	Attempts int
}

// Client fetches the active-screen list from the feed host
type Client struct {
	// BaseURL is the feed host (e.g., "http://10.0.0.5:8080")
	BaseURL string

	// Endpoint is appended to BaseURL
	Endpoint string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the number of extra attempts for a retryable failure
	MaxRetries int

	// RetryDelay is multiplied by the attempt number between attempts
	RetryDelay time.Duration

	// Headers are added to every request
	Headers map[string]string

	// Observer, when set, receives request timings
	Observer RequestObserver
}

// NewClient creates a feed client for baseURL with the default endpoint
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Endpoint:   DefaultEndpoint,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		Headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": version.UserAgent(),
		},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// URL returns the full feed URL
func (c *Client) URL() string {
	endpoint := c.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.BaseURL + endpoint
}

// Fetch retrieves and normalizes the current screen list. Retryable
// failures are retried with a linearly growing delay until MaxRetries
// is exhausted or ctx is done.
func (c *Client) Fetch(ctx context.Context) (*Result, error) {
	var lastErr error

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.RetryDelay * time.Duration(attempt)
			logging.Debug("Retrying feed request",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := sleep(ctx, delay); err != nil {
				return nil, ClassifyNetworkError(err, c.URL())
			}
		}

		entries, problems, err := c.fetchAttempt(ctx)
		if err == nil {
			screens, dropped := screen.Normalize(entries)
			for _, d := range dropped {
				problems = append(problems, NewInvalidEntryError(d))
			}
			if len(problems) > 0 {
				logging.Warn("Dropped invalid screen entries",
					zap.Int("dropped", len(problems)),
					zap.Error(problems[0]),
				)
			}
			return &Result{Screens: screens, Dropped: problems, Attempts: attempt + 1}, nil
		}

		lastErr = err
		if ctx.Err() != nil || !IsRetryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// fetchAttempt performs a single request
func (c *Client) fetchAttempt(ctx context.Context) (entries []screen.Entry, problems []error, err error) {
	start := time.Now()
	defer func() {
		if c.Observer != nil {
			c.Observer.ObserveRequest(time.Since(start), err)
		}
	}()

	feedURL := c.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, nil, &FeedError{Type: ErrTypeUnavailable, Message: "failed to create request", URL: feedURL, Err: err}
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, ClassifyNetworkError(err, feedURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, NewHTTPError(resp.StatusCode, feedURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, nil, ClassifyNetworkError(fmt.Errorf("failed to read response body: %w", err), feedURL)
	}

	return Decode(body)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsCanceled reports whether err came from a cancelled or expired context
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
