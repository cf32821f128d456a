// Package notify holds ChargeNotifier implementations.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
)

// UnavailableMessage explains to the user why the charge was not sent.
const UnavailableMessage = "Funcionalidade de email não disponível neste ambiente. Use o Outlook no desktop."

// Unavailable is the ChargeNotifier used until a real dispatch channel exists.
// Every call is refused with domain.ErrChargeUnavailable.
type Unavailable struct {
	log zerolog.Logger
}

func NewUnavailable(log zerolog.Logger) *Unavailable {
	return &Unavailable{log: log}
}

func (n *Unavailable) NotifyLateDelivery(_ context.Context, in domain.FormInput) (string, error) {
	n.log.Info().Str("tax_id", in.TaxID).Str("invoice", in.InvoiceNumber).Msg("charge requested but no notifier is configured")
	return "", fmt.Errorf("%w: %s", domain.ErrChargeUnavailable, UnavailableMessage)
}
