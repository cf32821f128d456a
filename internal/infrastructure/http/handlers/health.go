package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health: liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// TokenSource is the part of the gateway client readiness depends on.
type TokenSource interface {
	HasToken() bool
	AcquireToken(ctx context.Context) (string, error)
}

// GatewayHealthHandler handles GET /health/ready: readiness probe.
// The form is ready once a session token is held or can be obtained.
type GatewayHealthHandler struct {
	tokens  TokenSource
	timeout time.Duration
}

func NewGatewayHealthHandler(tokens TokenSource) *GatewayHealthHandler {
	return &GatewayHealthHandler{tokens: tokens, timeout: 5 * time.Second}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Session      string                      `json:"session"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *GatewayHealthHandler) Readiness(c echo.Context) error {
	deps := make(map[string]dependencyStatus)
	healthy := true

	if h.tokens.HasToken() {
		deps["rte_gateway"] = dependencyStatus{Status: "ok"}
	} else {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		defer cancel()

		if _, err := h.tokens.AcquireToken(ctx); err != nil {
			deps["rte_gateway"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["rte_gateway"] = dependencyStatus{Status: "ok"}
		}
	}

	session := "no_token"
	if h.tokens.HasToken() {
		session = "has_token"
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Session:      session,
		Dependencies: deps,
	})
}
