package domain

// Event is a single step of a shipment trajectory as reported by the RTE gateway.
type Event struct {
	Description string `json:"Description,omitempty"`
}

// TrackingResult is the body of GET /api/v1/tracking.
type TrackingResult struct {
	Events []Event `json:"Events,omitempty"`
	// ExpectedDeliveryDate is formatted as DD/MM/YYYY.
	ExpectedDeliveryDate string `json:"ExpectedDeliveryDate,omitempty"`
}

// Descriptions returns the non-empty event descriptions in order.
func (r TrackingResult) Descriptions() []string {
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		if e.Description != "" {
			out = append(out, e.Description)
		}
	}
	return out
}

// ReceiptResult is the body of GET /api/v1/deliveryreceipt. Both fields are optional.
type ReceiptResult struct {
	ReceiptURL string `json:"ReceiptUrl,omitempty"`
	// Image is a base64 encoded PNG.
	Image string `json:"Image,omitempty"`
}

// FormInput is the (tax id, invoice number) pair every query is keyed by.
type FormInput struct {
	TaxID         string
	InvoiceNumber string
}
