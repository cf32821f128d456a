package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
	"github.com/rtetrack/tracking-desk/internal/core/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

const indexTemplate = "index.html"

// Renderer renders the embedded HTML templates for echo.
type Renderer struct {
	t *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{t: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

// pageData is everything the form page shows.
type pageData struct {
	TaxID         string
	InvoiceNumber string
	Result        string
	Notice        string
	IsError       bool
	ChargeShown   bool
}

// FormHandler serves the local tracking form. Every action re-renders the page;
// notices replace the blocking alerts of a browser client.
type FormHandler struct {
	service ports.TrackingService
	log     zerolog.Logger
}

func NewFormHandler(service ports.TrackingService, log zerolog.Logger) *FormHandler {
	return &FormHandler{service: service, log: log}
}

// Index handles GET /.
func (h *FormHandler) Index(c echo.Context) error {
	return h.render(c, http.StatusOK, pageData{})
}

// Tracking handles POST /tracking.
func (h *FormHandler) Tracking(c echo.Context) error {
	req, page := h.bind(c)

	out, err := h.service.RunTrackingQuery(c.Request().Context(), req.input())
	if err != nil {
		return h.renderError(c, page, err)
	}

	page.Result = out.Report
	page.ChargeShown = out.ChargeButton == domain.ChargeShown
	return h.render(c, http.StatusOK, page)
}

// Receipt handles POST /receipt. Image receipts are sent as an attachment.
func (h *FormHandler) Receipt(c echo.Context) error {
	req, page := h.bind(c)

	out, err := h.service.RunReceiptDownload(c.Request().Context(), req.input())
	if err != nil {
		return h.renderError(c, page, err)
	}

	if d := out.Download; d != nil {
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", d.FileName))
		return c.Blob(http.StatusOK, d.ContentType, d.Data)
	}
	page.Notice = out.Message()
	return h.render(c, http.StatusOK, page)
}

// Charge handles POST /charge.
func (h *FormHandler) Charge(c echo.Context) error {
	req, page := h.bind(c)

	msg, err := h.service.ChargeDelivery(c.Request().Context(), req.input())
	if err != nil {
		return h.renderError(c, page, err)
	}
	page.Notice = msg
	return h.render(c, http.StatusOK, page)
}

// bind reads the form fields. Validation is left to the service so the page can
// show its message.
func (h *FormHandler) bind(c echo.Context) (queryRequest, pageData) {
	req := queryRequest{TaxID: c.FormValue("cnpj"), InvoiceNumber: c.FormValue("nf")}
	req.normalize()
	return req, pageData{
		TaxID:         req.TaxID,
		InvoiceNumber: req.InvoiceNumber,
		ChargeShown:   h.service.ChargeButton() == domain.ChargeShown,
	}
}

func (h *FormHandler) renderError(c echo.Context, page pageData, err error) error {
	status, msg, known := Describe(err)
	switch {
	case !known:
		h.log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	case status >= http.StatusInternalServerError:
		h.log.Warn().Err(err).Str("path", c.Path()).Msg("gateway error")
	}
	page.Notice = msg
	page.IsError = true
	page.ChargeShown = h.service.ChargeButton() == domain.ChargeShown
	return h.render(c, status, page)
}

func (h *FormHandler) render(c echo.Context, status int, page pageData) error {
	return c.Render(status, indexTemplate, page)
}
