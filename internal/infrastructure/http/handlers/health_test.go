package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubTokens struct {
	has      bool
	err      error
	acquired int
}

func (s *stubTokens) HasToken() bool { return s.has }

func (s *stubTokens) AcquireToken(context.Context) (string, error) {
	s.acquired++
	if s.err != nil {
		return "", s.err
	}
	s.has = true
	return "tok", nil
}

func serveReadiness(t *testing.T, tokens *stubTokens) (*httptest.ResponseRecorder, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewGatewayHealthHandler(tokens).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, resp
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_HeldTokenSkipsExchange(t *testing.T) {
	tokens := &stubTokens{has: true}
	rec, resp := serveReadiness(t, tokens)

	if rec.Code != http.StatusOK || resp.Session != "has_token" {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}
	if tokens.acquired != 0 {
		t.Errorf("expected no token exchange")
	}
}

func TestReadiness_AcquiresToken(t *testing.T) {
	tokens := &stubTokens{}
	rec, resp := serveReadiness(t, tokens)

	if rec.Code != http.StatusOK || resp.Session != "has_token" {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}
	if tokens.acquired != 1 {
		t.Errorf("expected one token exchange, got %d", tokens.acquired)
	}
}

func TestReadiness_GatewayDown(t *testing.T) {
	tokens := &stubTokens{err: errors.New("connection refused")}
	rec, resp := serveReadiness(t, tokens)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if resp.Status != "degraded" || resp.Session != "no_token" {
		t.Errorf("unexpected body: %+v", resp)
	}
	if resp.Dependencies["rte_gateway"].Error != "connection refused" {
		t.Errorf("expected gateway error in body, got %+v", resp.Dependencies)
	}
}
