package handler

import (
	"context"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
	"github.com/rtetrack/tracking-desk/internal/core/ports"
)

type stubTrackingService struct {
	trackingFn func(ctx context.Context, in domain.FormInput) (*ports.TrackingOutcome, error)
	receiptFn  func(ctx context.Context, in domain.FormInput) (*ports.ReceiptOutcome, error)
	chargeFn   func(ctx context.Context, in domain.FormInput) (string, error)
	button     domain.ChargeButtonState
}

func (s *stubTrackingService) RunTrackingQuery(ctx context.Context, in domain.FormInput) (*ports.TrackingOutcome, error) {
	return s.trackingFn(ctx, in)
}

func (s *stubTrackingService) RunReceiptDownload(ctx context.Context, in domain.FormInput) (*ports.ReceiptOutcome, error) {
	return s.receiptFn(ctx, in)
}

func (s *stubTrackingService) ChargeDelivery(ctx context.Context, in domain.FormInput) (string, error) {
	return s.chargeFn(ctx, in)
}

func (s *stubTrackingService) ChargeButton() domain.ChargeButtonState {
	if s.button == "" {
		return domain.ChargeHidden
	}
	return s.button
}
