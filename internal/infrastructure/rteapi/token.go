package rteapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rtetrack/tracking-desk/internal/api/metrics"
	"github.com/rtetrack/tracking-desk/internal/core/domain"
)

// tokenFlight is the single-flight key shared by every token exchange.
const tokenFlight = "token"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// AcquireToken performs the password-grant exchange and stores the resulting
// token. Overlapping callers share a single in-flight request.
func (c *Client) AcquireToken(ctx context.Context) (string, error) {
	return c.joinExchange(ctx, false)
}

// ensureToken returns the held token, acquiring one when the client has none.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	if token := c.Token(); token != "" {
		return token, nil
	}
	return c.joinExchange(ctx, true)
}

// joinExchange waits for the shared exchange or for ctx, whichever ends first.
// The exchange itself does not inherit ctx cancellation, so a caller giving up
// never fails the callers that joined it; the client timeout bounds it instead.
func (c *Client) joinExchange(ctx context.Context, reuse bool) (string, error) {
	ch := c.group.DoChan(tokenFlight, func() (any, error) {
		// A flight that finished between the caller's check and DoChan already stored it.
		if token := c.Token(); reuse && token != "" {
			return token, nil
		}
		xctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.exchange(xctx)
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("acquire token: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			c.log.Debug().Msg("joined in-flight token exchange")
		}
		return res.Val.(string), nil
	}
}

func (c *Client) exchange(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(c.form.Encode()))
	if err != nil {
		return "", fmt.Errorf("acquire token: %w: %v", domain.ErrAuthentication, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp tokenResponse
	if err := c.do(req, "token", domain.ErrAuthentication, &resp); err != nil {
		metrics.TokenAcquisitionsTotal.WithLabelValues("failure").Inc()
		return "", fmt.Errorf("acquire token: %w", err)
	}
	if resp.AccessToken == "" {
		metrics.TokenAcquisitionsTotal.WithLabelValues("failure").Inc()
		return "", fmt.Errorf("acquire token: %w: empty access_token", domain.ErrAuthentication)
	}

	c.mu.Lock()
	c.token = resp.AccessToken
	c.mu.Unlock()

	metrics.TokenAcquisitionsTotal.WithLabelValues("success").Inc()
	c.logClaims(resp.AccessToken)
	return resp.AccessToken, nil
}

// logClaims logs sub/exp when the opaque token happens to be a JWT. The signature
// is not verified and expiry is never acted upon.
func (c *Client) logClaims(token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		c.log.Debug().Msg("session token acquired")
		return
	}

	ev := c.log.Debug()
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		ev = ev.Str("sub", sub)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ev = ev.Time("exp", exp.Time)
	}
	ev.Msg("session token acquired")
}
