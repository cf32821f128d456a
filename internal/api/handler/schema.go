package handler

import (
	"strings"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
)

// queryRequest is bound from either the HTML form or a JSON body.
type queryRequest struct {
	TaxID         string `json:"cnpj" form:"cnpj" validate:"required"`
	InvoiceNumber string `json:"nf"   form:"nf"   validate:"required"`
}

// normalize trims both identifiers so whitespace-only input fails "required".
func (r *queryRequest) normalize() {
	r.TaxID = strings.TrimSpace(r.TaxID)
	r.InvoiceNumber = strings.TrimSpace(r.InvoiceNumber)
}

func (r queryRequest) input() domain.FormInput {
	return domain.FormInput{TaxID: r.TaxID, InvoiceNumber: r.InvoiceNumber}
}

type trackingResponse struct {
	Report       string `json:"report"`
	Late         bool   `json:"late"`
	ChargeButton string `json:"charge_button"`
}

// receiptResponse.Kind is "url", "download" or "not_found".
type receiptResponse struct {
	Kind     string `json:"kind"`
	URL      string `json:"url,omitempty"`
	FileName string `json:"file_name,omitempty"`
	// Image is the base64 encoded PNG for downloads.
	Image   string `json:"image,omitempty"`
	Message string `json:"message,omitempty"`
}

type chargeResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
