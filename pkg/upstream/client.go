// Package upstream provides the shared HTTP client used by every external
// travel API integration.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// UserAgent identifies this service to the upstream APIs.
	UserAgent = "travel-mcp/1.0"

	defaultTimeout = 30 * time.Second
	maxAttempts    = 2
	baseDelay      = time.Second
)

// Client wraps an http.Client with the retry policy shared by all upstream
// calls: client errors (4xx) are permanent, server errors (5xx) and network
// failures are retried with exponential backoff.
type Client struct {
	httpClient *http.Client
}

// New creates an upstream client with the default timeout
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// NewWithHTTPClient creates an upstream client around an existing http.Client
func NewWithHTTPClient(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

// GetJSON performs a GET request against rawURL with optional query
// parameters and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	target := rawURL
	if len(params) > 0 {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid upstream URL %q: %w", rawURL, err)
		}
		query := parsed.Query()
		for key, values := range params {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		parsed.RawQuery = query.Encode()
		target = parsed.String()
	}

	body, err := c.get(ctx, target)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := baseDelay * time.Duration(1<<(attempt-1))
			log.Warn("Retrying upstream request", "url", target, "attempt", attempt+1, "delay", delay)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, retryable, err := c.doOnce(ctx, target)
		if err == nil {
			return body, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("upstream request failed after %d attempts: %w", maxAttempts, lastErr)
}

// doOnce issues a single request. The boolean reports whether the failure is
// worth retrying.
func (c *Client) doOnce(ctx context.Context, target string) ([]byte, bool, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build request: %w", err)
	}

	request.Header.Set("User-Agent", UserAgent)
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		// Network and timeout errors are temporary
		return nil, true, fmt.Errorf("request to %s failed: %w", target, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response from %s: %w", target, err)
	}

	if response.StatusCode >= 400 && response.StatusCode < 500 {
		return nil, false, fmt.Errorf("client error %d from %s", response.StatusCode, target)
	}

	if response.StatusCode >= 500 {
		return nil, true, fmt.Errorf("server error %d from %s", response.StatusCode, target)
	}

	return body, false, nil
}
