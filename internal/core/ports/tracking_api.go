package ports

import (
	"context"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
)

// TrackingAPI is the remote RTE gateway as seen by the service layer.
type TrackingAPI interface {
	FetchTracking(ctx context.Context, taxID, invoiceNumber string) (*domain.TrackingResult, error)
	FetchReceipt(ctx context.Context, taxID, invoiceNumber string) (*domain.ReceiptResult, error)
}
