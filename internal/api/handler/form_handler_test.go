package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
	"github.com/rtetrack/tracking-desk/internal/core/ports"
)

func newFormContext(method, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Renderer = NewRenderer()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func formInput(cnpj, nf string) url.Values {
	return url.Values{"cnpj": {cnpj}, "nf": {nf}}
}

func TestFormHandler_Index(t *testing.T) {
	c, rec := newFormContext(http.MethodGet, "/", nil)

	if err := NewFormHandler(&stubTrackingService{}, zerolog.Nop()).Index(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, want := range []string{`id="btnTracking"`, `id="btnReceipt"`, `name="cnpj"`, `name="nf"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %s", want)
		}
	}
	if strings.Contains(body, "btnCobrar") {
		t.Fatal("charge button must be hidden initially")
	}
}

func TestFormHandler_Tracking_LateShowsChargeButton(t *testing.T) {
	stub := &stubTrackingService{
		trackingFn: func(ctx context.Context, in domain.FormInput) (*ports.TrackingOutcome, error) {
			return &ports.TrackingOutcome{Report: "📍 Etapa 1: Coletado", Late: true, ChargeButton: domain.ChargeShown}, nil
		},
	}
	c, rec := newFormContext(http.MethodPost, "/tracking", formInput("123", "9"))

	if err := NewFormHandler(stub, zerolog.Nop()).Tracking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Etapa 1: Coletado") {
		t.Fatalf("report not rendered: %s", body)
	}
	if !strings.Contains(body, "Cobrar Entrega") {
		t.Fatal("expected charge button to be rendered")
	}
	if !strings.Contains(body, `value="123"`) {
		t.Fatal("expected inputs to be preserved")
	}
}

func TestFormHandler_Tracking_ValidationNotice(t *testing.T) {
	stub := &stubTrackingService{
		trackingFn: func(ctx context.Context, in domain.FormInput) (*ports.TrackingOutcome, error) {
			if in.TaxID != "" {
				t.Fatalf("expected trimmed empty tax id, got %q", in.TaxID)
			}
			return nil, domain.ErrValidation
		},
	}
	c, rec := newFormContext(http.MethodPost, "/tracking", formInput("   ", "1"))

	if err := NewFormHandler(stub, zerolog.Nop()).Tracking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Por favor, preencha o CNPJ e o Número da NF.") {
		t.Fatalf("validation notice missing: %s", rec.Body.String())
	}
}

func TestFormHandler_Tracking_QueryErrorHidesButton(t *testing.T) {
	stub := &stubTrackingService{
		trackingFn: func(ctx context.Context, in domain.FormInput) (*ports.TrackingOutcome, error) {
			return nil, fmt.Errorf("%w: unexpected status 503: upstream detail", domain.ErrQuery)
		},
		button: domain.ChargeHidden,
	}
	c, rec := newFormContext(http.MethodPost, "/tracking", formInput("1", "2"))

	if err := NewFormHandler(stub, zerolog.Nop()).Tracking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(body, "Erro na consulta: Falha na consulta") || strings.Contains(body, "btnCobrar") {
		t.Fatalf("unexpected page: %s", body)
	}
	if strings.Contains(body, "upstream detail") {
		t.Fatalf("unexpected page: %s", body)
	}
}

func TestFormHandler_Receipt_Download(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G'}
	stub := &stubTrackingService{
		receiptFn: func(ctx context.Context, in domain.FormInput) (*ports.ReceiptOutcome, error) {
			return &ports.ReceiptOutcome{Download: &ports.ReceiptDownload{
				FileName:    "comprovante_1_2_20261017T120000000Z.png",
				ContentType: "image/png",
				Data:        data,
			}}, nil
		},
	}
	c, rec := newFormContext(http.MethodPost, "/receipt", formInput("1", "2"))

	if err := NewFormHandler(stub, zerolog.Nop()).Receipt(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != "image/png" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, "comprovante_1_2_20261017T120000000Z.png") {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != string(data) {
		t.Fatal("unexpected body")
	}
}

func TestFormHandler_Receipt_URLNotice(t *testing.T) {
	stub := &stubTrackingService{
		receiptFn: func(ctx context.Context, in domain.FormInput) (*ports.ReceiptOutcome, error) {
			return &ports.ReceiptOutcome{URL: "https://example.com/r.pdf"}, nil
		},
	}
	c, rec := newFormContext(http.MethodPost, "/receipt", formInput("1", "2"))

	if err := NewFormHandler(stub, zerolog.Nop()).Receipt(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Comprovante disponível: https://example.com/r.pdf") {
		t.Fatalf("url notice missing: %s", rec.Body.String())
	}
}

func TestFormHandler_Charge_Unavailable(t *testing.T) {
	stub := &stubTrackingService{
		chargeFn: func(ctx context.Context, in domain.FormInput) (string, error) {
			return "", fmt.Errorf("%w: email indisponível", domain.ErrChargeUnavailable)
		},
		button: domain.ChargeShown,
	}
	c, rec := newFormContext(http.MethodPost, "/charge", formInput("1", "2"))

	if err := NewFormHandler(stub, zerolog.Nop()).Charge(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(body, "email indisponível") || !strings.Contains(body, "btnCobrar") {
		t.Fatalf("unexpected page: %s", body)
	}
}

func TestFormHandler_UnknownErrorIsHidden(t *testing.T) {
	stub := &stubTrackingService{
		trackingFn: func(ctx context.Context, in domain.FormInput) (*ports.TrackingOutcome, error) {
			return nil, errors.New("secret detail")
		},
	}
	c, rec := newFormContext(http.MethodPost, "/tracking", formInput("1", "2"))

	if err := NewFormHandler(stub, zerolog.Nop()).Tracking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "secret detail") {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}
