package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
)

func TestUnavailable_AlwaysRefuses(t *testing.T) {
	n := NewUnavailable(zerolog.Nop())

	msg, err := n.NotifyLateDelivery(context.Background(), domain.FormInput{TaxID: "1", InvoiceNumber: "2"})
	if !errors.Is(err, domain.ErrChargeUnavailable) {
		t.Fatalf("expected ErrChargeUnavailable, got: %v", err)
	}
	if msg != "" {
		t.Errorf("expected empty message, got %q", msg)
	}
	if !strings.Contains(err.Error(), UnavailableMessage) {
		t.Errorf("expected the user explanation in the error, got %q", err.Error())
	}
}
