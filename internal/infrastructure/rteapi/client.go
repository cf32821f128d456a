// Package rteapi is the HTTP client for the RTE tracking gateway. It owns the
// session token and performs the token exchange, tracking and receipt queries.
package rteapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rtetrack/tracking-desk/internal/api/metrics"
	"github.com/rtetrack/tracking-desk/internal/core/domain"
)

const (
	defaultTimeout = 20 * time.Second

	tokenPath    = "/token"
	trackingPath = "/api/v1/tracking"
	receiptPath  = "/api/v1/deliveryreceipt"

	// maxErrorBody caps how much of a failed response is copied into the error.
	maxErrorBody = 512
)

// Config captures what the client needs to reach the gateway.
type Config struct {
	BaseURL   string
	AuthType  string
	GrantType string
	Username  string
	Password  string
	Timeout   time.Duration
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// Client talks to the RTE gateway. It is safe for concurrent use.
type Client struct {
	baseURL string
	form    url.Values
	http    *http.Client
	timeout time.Duration
	log     zerolog.Logger

	mu    sync.RWMutex
	token string
	group singleflight.Group
}

// NewClient builds a Client. A default timeout is applied when none is provided.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		form: url.Values{
			"auth_type":  {cfg.AuthType},
			"grant_type": {cfg.GrantType},
			"username":   {cfg.Username},
			"password":   {cfg.Password},
		},
		http:    hc,
		timeout: timeout,
		log:     log,
	}
}

// Token returns the held session token, or "" before the first successful exchange.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// HasToken reports whether the client has left the NoToken state.
func (c *Client) HasToken() bool {
	return c.Token() != ""
}

// FetchTracking returns the trajectory history for a tax id / invoice pair.
func (c *Client) FetchTracking(ctx context.Context, taxID, invoiceNumber string) (*domain.TrackingResult, error) {
	var out domain.TrackingResult
	if err := c.query(ctx, "tracking", trackingPath, taxID, invoiceNumber, &out); err != nil {
		return nil, fmt.Errorf("fetch tracking: %w", err)
	}
	return &out, nil
}

// FetchReceipt returns the delivery receipt for a tax id / invoice pair.
func (c *Client) FetchReceipt(ctx context.Context, taxID, invoiceNumber string) (*domain.ReceiptResult, error) {
	var out domain.ReceiptResult
	if err := c.query(ctx, "receipt", receiptPath, taxID, invoiceNumber, &out); err != nil {
		return nil, fmt.Errorf("fetch receipt: %w", err)
	}
	return &out, nil
}

// query runs an authenticated GET keyed by the two identifiers and decodes the body into out.
func (c *Client) query(ctx context.Context, endpoint, path, taxID, invoiceNumber string, out any) error {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrQuery, err)
	}
	q := u.Query()
	q.Set("TaxIdRegistration", taxID)
	q.Set("InvoiceNumber", invoiceNumber)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrQuery, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	return c.do(req, endpoint, domain.ErrQuery, out)
}

// do sends req, records metrics and decodes a 2xx JSON body into out. Failures are
// wrapped with kind so callers can classify them with errors.Is.
func (c *Client) do(req *http.Request, endpoint string, kind error, out any) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	log := c.log.With().Str("endpoint", endpoint).Str("request_id", requestID).Logger()

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		log.Warn().Err(err).Msg("gateway request failed")
		return fmt.Errorf("%w: %v", kind, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "http_error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warn().Int("status", resp.StatusCode).Msg("gateway returned non-success status")
		return fmt.Errorf("%w: unexpected status %d: %s", kind, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "decode_error").Inc()
		return fmt.Errorf("%w: failed to decode response: %v", kind, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	log.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("gateway request ok")
	return nil
}
