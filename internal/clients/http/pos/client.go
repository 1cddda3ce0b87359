// Package pos is an HTTP client for the point-of-sale order ingestion API.
package pos

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
)

// OrdersPath is the ingestion endpoint, relative to the base URL.
const OrdersPath = "/orders"

// ErrRejected is returned for 4xx answers; the same body will be refused again.
var ErrRejected = errors.New("pos API rejected order")

// Client posts serialized orders to the POS.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// SubmitOption configures SubmitOrder behavior.
type SubmitOption func(*submitOptions)

type submitOptions struct {
	idempotencyKey string
}

// WithIdempotencyKey sets the Idempotency-Key header for the request.
func WithIdempotencyKey(key string) SubmitOption {
	return func(opts *submitOptions) {
		opts.idempotencyKey = strings.TrimSpace(key)
	}
}

// Error is the error body returned by the POS.
type Error struct {
	Code    *int32  `json:"code,omitempty"`
	Message *string `json:"message,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// NewClient instantiates the POS client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("pos base URL is required")
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid pos base URL %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		endpoint:   strings.TrimRight(base.String(), "/") + OrdersPath,
		httpClient: httpClient,
	}, nil
}

// SubmitOrder posts the compact order JSON.
func (c *Client) SubmitOrder(ctx context.Context, body []byte, optFns ...SubmitOption) error {
	if c == nil || c.httpClient == nil {
		return errors.New("pos client not configured")
	}
	if len(body) == 0 {
		return errors.New("pos order body is required")
	}
	var opts submitOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build pos request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call pos API: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	status := resp.StatusCode
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusConflict:
		// Same idempotency key already accepted.
		return nil
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrRejected, errorMessage(respBody, resp.Status))
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("pos API error: %s", errorMessage(respBody, resp.Status))
	default:
		return fmt.Errorf("pos API unexpected status: %s", resp.Status)
	}
}

func errorMessage(raw []byte, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	var body Error
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}
	if body.Message != nil {
		if msg := strings.TrimSpace(*body.Message); msg != "" {
			return msg
		}
	}
	if body.Status != nil {
		if msg := strings.TrimSpace(*body.Status); msg != "" {
			return msg
		}
	}
	return fallback
}
