package ports

import (
	"context"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
)

// ChargeNotifier dispatches a charge request for a late delivery to the carrier.
// It returns a message suitable for display to the user.
type ChargeNotifier interface {
	NotifyLateDelivery(ctx context.Context, in domain.FormInput) (string, error)
}
