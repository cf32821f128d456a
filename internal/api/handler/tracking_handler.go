package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rtetrack/tracking-desk/internal/core/ports"
)

// TrackingHandler exposes the tracking actions as a JSON API.
type TrackingHandler struct {
	service ports.TrackingService
}

func NewTrackingHandler(service ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// bindQuery binds, trims and validates a queryRequest.
func bindQuery(c echo.Context) (queryRequest, error) {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return req, nil
}

// Tracking handles POST /v1/tracking.
//
// @Summary      Query the trajectory history of a shipment
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        body  body      queryRequest  true  "CNPJ and invoice number"
// @Success      200   {object}  trackingResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/tracking [post]
func (h *TrackingHandler) Tracking(c echo.Context) error {
	req, err := bindQuery(c)
	if err != nil {
		return err
	}

	out, err := h.service.RunTrackingQuery(c.Request().Context(), req.input())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, trackingResponse{
		Report:       out.Report,
		Late:         out.Late,
		ChargeButton: string(out.ChargeButton),
	})
}

// Receipt handles POST /v1/receipt.
//
// @Summary      Fetch the delivery receipt of a shipment
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        body  body      queryRequest  true  "CNPJ and invoice number"
// @Success      200   {object}  receiptResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/receipt [post]
func (h *TrackingHandler) Receipt(c echo.Context) error {
	req, err := bindQuery(c)
	if err != nil {
		return err
	}

	out, err := h.service.RunReceiptDownload(c.Request().Context(), req.input())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toReceiptResponse(out))
}

// Charge handles POST /v1/charge.
//
// @Summary      Charge the carrier for a late delivery
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        body  body      queryRequest  true  "CNPJ and invoice number"
// @Success      200   {object}  chargeResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/charge [post]
func (h *TrackingHandler) Charge(c echo.Context) error {
	req, err := bindQuery(c)
	if err != nil {
		return err
	}

	msg, err := h.service.ChargeDelivery(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chargeResponse{Message: msg})
}

func toReceiptResponse(out *ports.ReceiptOutcome) receiptResponse {
	switch {
	case out.URL != "":
		return receiptResponse{Kind: "url", URL: out.URL, Message: out.Message()}
	case out.Download != nil:
		return receiptResponse{
			Kind:     "download",
			FileName: out.Download.FileName,
			Image:    base64.StdEncoding.EncodeToString(out.Download.Data),
		}
	default:
		return receiptResponse{Kind: "not_found", Message: out.Message()}
	}
}
