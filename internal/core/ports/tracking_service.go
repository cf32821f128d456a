package ports

import (
	"context"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
)

// TrackingOutcome is what a tracking query hands back to the presentation layer.
type TrackingOutcome struct {
	Report       string
	Late         bool
	ChargeButton domain.ChargeButtonState
}

// ReceiptDownload is a synthesised file ready to be saved or streamed.
type ReceiptDownload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ReceiptOutcome carries exactly one of URL, Download or NotFound.
type ReceiptOutcome struct {
	URL      string
	Download *ReceiptDownload
	NotFound bool
}

// Message renders the outcome as the text shown to the user. Downloads have none.
func (o ReceiptOutcome) Message() string {
	switch {
	case o.URL != "":
		return "Comprovante disponível: " + o.URL
	case o.NotFound:
		return "Nenhum comprovante encontrado."
	default:
		return ""
	}
}

// TrackingService is the use-case surface consumed by the CLI, the form UI and batch mode.
type TrackingService interface {
	RunTrackingQuery(ctx context.Context, in domain.FormInput) (*TrackingOutcome, error)
	RunReceiptDownload(ctx context.Context, in domain.FormInput) (*ReceiptOutcome, error)
	ChargeDelivery(ctx context.Context, in domain.FormInput) (string, error)
	ChargeButton() domain.ChargeButtonState
}
