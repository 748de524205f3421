// Package renderer is the HTTP client for the external resume-to-PDF
// rendering service.
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client for requests to the PDF rendering service
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	userAgent  string
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:    logger,
		userAgent: "Interview-Tracker/1.0",
	}
}

// Render posts a resume document and returns the rendered PDF bytes. The
// credential is threaded per call rather than held on the client; every
// outbound request carries the auth of the request that triggered it.
func (c *Client) Render(ctx context.Context, authKey string, resumeJSON []byte) ([]byte, error) {
	return c.doRequest(ctx, http.MethodPost, "/resume/pdf", authKey, resumeJSON)
}

// Ping probes the rendering service root. Any 2xx counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/", "", nil)
	return err
}

// doRequest for HTTP reqs with retries
func (c *Client) doRequest(ctx context.Context, method, path, authKey string, body []byte) ([]byte, error) {
	fullURL := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			c.logger.Debug("retrying request",
				zap.String("url", fullURL),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/pdf")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if authKey != "" {
			req.Header.Set("X-Auth-Key", authKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response body: %w", err)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.logger.Debug("successful request",
				zap.String("url", fullURL),
				zap.Int("status", resp.StatusCode),
			)
			return respBody, nil
		}

		c.logger.Error("renderer API error",
			zap.String("url", fullURL),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)

		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			c.logger.Warn("rate limit hit, backing off")
			lastErr = fmt.Errorf("rate limit exceeded")
			continue
		case http.StatusBadRequest:
			return nil, fmt.Errorf("bad request: %s", string(respBody))
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("renderer rejected credentials")
		case http.StatusNotFound:
			return nil, fmt.Errorf("not found")
		default:
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
	}

	return nil, fmt.Errorf("request failed after retries: %w", lastErr)
}
