package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultEndpoint is Brevo's transactional email API.
const DefaultEndpoint = "https://api.brevo.com/v3/smtp/email"

// maxErrorBody caps how much of a failed response body is kept for logging.
const maxErrorBody = 64 << 10

// Address is a mailbox in Brevo's {name, email} shape
type Address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Message is the transactional email sent to the provider
type Message struct {
	Sender      Address   `json:"sender"`
	To          []Address `json:"to"`
	ReplyTo     *Address  `json:"replyTo,omitempty"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
}

// Sender delivers a message through a transactional email provider.
type Sender interface {
	Send(ctx context.Context, apiKey string, msg *Message) error
}

// APIError is returned when the provider answered with a non-2xx status.
// Any other error from Send is a transport failure.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("brevo API error (status %d): %s", e.StatusCode, e.Body)
}

// BrevoClient sends email via the Brevo HTTP API
type BrevoClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter // nil means unpaced
}

// Option customizes a BrevoClient at construction time.
type Option func(*BrevoClient)

// WithEndpoint overrides the API URL. Empty values are ignored.
func WithEndpoint(endpoint string) Option {
	return func(c *BrevoClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *BrevoClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit paces outbound calls to stay under the account's API quota.
func WithRateLimit(l *rate.Limiter) Option {
	return func(c *BrevoClient) {
		c.limiter = l
	}
}

// NewBrevoClient creates a client with a 30 second request timeout.
func NewBrevoClient(opts ...Option) *BrevoClient {
	c := &BrevoClient{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Send posts msg to Brevo exactly once. There are no retries.
func (c *BrevoClient) Send(ctx context.Context, apiKey string, msg *Message) error {
	if msg == nil {
		return fmt.Errorf("brevo: message is required")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
