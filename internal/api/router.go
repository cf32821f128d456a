package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/rtetrack/tracking-desk/docs"
	"github.com/rtetrack/tracking-desk/internal/api/handler"
	"github.com/rtetrack/tracking-desk/internal/api/middleware"
	"github.com/rtetrack/tracking-desk/internal/core/ports"
	"github.com/rtetrack/tracking-desk/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Service ports.TrackingService
	Tokens  handlers.TokenSource
	Log     zerolog.Logger

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = handler.NewRenderer()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(middleware.LocalOnly())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "rtetrack_ui",
		Registerer: deps.Registerer,
	}))

	// --- Form ---
	form := handler.NewFormHandler(deps.Service, deps.Log)
	e.GET("/", form.Index)
	e.POST("/tracking", form.Tracking)
	e.POST("/receipt", form.Receipt)
	e.POST("/charge", form.Charge)

	// --- JSON API ---
	tracking := handler.NewTrackingHandler(deps.Service)
	v1 := e.Group("/v1")
	v1.POST("/tracking", tracking.Tracking)
	v1.POST("/receipt", tracking.Receipt)
	v1.POST("/charge", tracking.Charge)

	// --- Health probes ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewGatewayHealthHandler(deps.Tokens).Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
