package trimlight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/trimlight/internal/auth"
	"github.com/dokzlo13/trimlight/internal/errs"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://trimlight.ledhue.com/trimlight"

// DefaultTimeout bounds a single request when no HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

const resourcePrefix = "/v1/oauth/resources"

// Client talks to the Trimlight cloud API.
// Every request is signed with fresh headers; nothing is cached between calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
	signer     *auth.Signer
	now        func() time.Time
}

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	clock      func() time.Time
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) {
		o.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the HTTP client. WithTimeout is ignored when set.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithClock overrides the time source used for signing and for the device date.
func WithClock(now func() time.Time) Option {
	return func(o *clientOptions) {
		o.clock = now
	}
}

// NewClient creates a client for the given credentials.
func NewClient(creds auth.Credentials, opts ...Option) *Client {
	o := clientOptions{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:    o.baseURL,
		httpClient: hc,
		signer:     auth.NewSigner(creds, o.clock),
		now:        o.clock,
	}
}

// BaseURL returns the API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close closes idle connections
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) url(endpoint string) string {
	return c.baseURL + resourcePrefix + endpoint
}

// deviceRequest is the body shape shared by all device-scoped endpoints.
type deviceRequest struct {
	DeviceID string `json:"deviceId"`
	Payload  any    `json:"payload"`
}

// do sends body as JSON to endpoint and decodes the envelope payload into out.
// A non-zero envelope code is returned as *errs.Error. out may be nil.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) (*Result, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.signer.Sign().Apply(req.Header)

	requestID := uuid.NewString()
	start := time.Now()
	logger := log.With().
		Str("request_id", requestID).
		Str("method", method).
		Str("endpoint", endpoint).
		Logger()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug().Err(err).Dur("duration", time.Since(start)).Msg("Request failed")
		return nil, fmt.Errorf("request %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	okStatus := resp.StatusCode >= 200 && resp.StatusCode <= 299

	// Bodies without a code (gateway pages, proxy errors) are not envelopes.
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Code == nil {
		logger.Debug().Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("Response is not an envelope")
		if !okStatus {
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return nil, fmt.Errorf("failed to decode response: missing code")
	}
	code := *env.Code

	logger.Debug().
		Int("status", resp.StatusCode).
		Int("code", code).
		Dur("duration", time.Since(start)).
		Msg("Request completed")

	if code != 0 {
		return nil, &errs.Error{Code: code, Message: env.Desc}
	}

	if out != nil && len(env.Payload) > 0 && !bytes.Equal(env.Payload, []byte("null")) {
		if err := json.Unmarshal(env.Payload, out); err != nil {
			return nil, fmt.Errorf("failed to decode payload: %w", err)
		}
	}

	return &Result{Code: code, Desc: env.Desc}, nil
}

// post sends a device-scoped mutation.
func (c *Client) post(ctx context.Context, endpoint, deviceID string, payload any) (*Result, error) {
	return c.do(ctx, http.MethodPost, endpoint, deviceRequest{DeviceID: deviceID, Payload: payload}, nil)
}
