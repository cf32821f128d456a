package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rtetrack/tracking-desk/internal/api/metrics"
	"github.com/rtetrack/tracking-desk/internal/core/domain"
	"github.com/rtetrack/tracking-desk/internal/core/ports"
)

const (
	reportHeader        = "🛤 Histórico de Transporte:\n\n"
	noEventsPlaceholder = "Nenhuma informação de trajeto disponível."
	expectedDateLayout  = "2/1/2006"
)

// TrackingOptions tunes the lateness heuristic.
type TrackingOptions struct {
	// DefaultExpectedDate replaces a missing ExpectedDeliveryDate (DD/MM/YYYY).
	DefaultExpectedDate string
	// CompletionPhrases mark a shipment as delivered when any event contains one.
	CompletionPhrases []string
	// Location is the zone calendar days are compared in. Defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// TrackingService orchestrates the user actions of the tracking form.
type TrackingService struct {
	api      ports.TrackingAPI
	notifier ports.ChargeNotifier
	opts     TrackingOptions
	logger   zerolog.Logger

	mu     sync.Mutex
	button domain.ChargeButton
	// flagged is the pair whose late query showed the button. Only it can be charged.
	flagged domain.FormInput
}

func NewTrackingService(api ports.TrackingAPI, notifier ports.ChargeNotifier, opts TrackingOptions, logger zerolog.Logger) *TrackingService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &TrackingService{api: api, notifier: notifier, opts: opts, logger: logger}
}

// ValidateInputs trims both identifiers and rejects the pair when either is empty.
func (s *TrackingService) ValidateInputs(in domain.FormInput) (domain.FormInput, error) {
	out := domain.FormInput{
		TaxID:         strings.TrimSpace(in.TaxID),
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
	}
	if out.TaxID == "" || out.InvoiceNumber == "" {
		return out, domain.ErrValidation
	}
	return out, nil
}

// FormatTrackingResult renders the numbered trajectory report.
func FormatTrackingResult(r *domain.TrackingResult) string {
	var descriptions []string
	if r != nil {
		descriptions = r.Descriptions()
	}
	if len(descriptions) == 0 {
		descriptions = []string{noEventsPlaceholder}
	}

	steps := make([]string, len(descriptions))
	for i, d := range descriptions {
		steps[i] = fmt.Sprintf("📍 Etapa %d: %s", i+1, d)
	}
	return reportHeader + strings.Join(steps, "\n\n")
}

// IsDeliveryLate reports whether the expected delivery day is already behind us
// and no event says the delivery completed. Unparseable dates count as not late.
func (s *TrackingService) IsDeliveryLate(r *domain.TrackingResult) bool {
	if r == nil {
		return false
	}
	if s.delivered(r) {
		return false
	}

	expected, err := s.expectedDate(r)
	if err != nil {
		s.logger.Warn().Err(err).Msg("lateness check skipped")
		return false
	}

	now := s.opts.Now().In(s.opts.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.opts.Location)
	return expected.Before(today)
}

func (s *TrackingService) delivered(r *domain.TrackingResult) bool {
	for _, e := range r.Events {
		for _, phrase := range s.opts.CompletionPhrases {
			if phrase != "" && strings.Contains(e.Description, phrase) {
				return true
			}
		}
	}
	return false
}

func (s *TrackingService) expectedDate(r *domain.TrackingResult) (time.Time, error) {
	raw := strings.TrimSpace(r.ExpectedDeliveryDate)
	if raw == "" {
		raw = s.opts.DefaultExpectedDate
	}
	t, err := time.ParseInLocation(expectedDateLayout, raw, s.opts.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", domain.ErrDateParse, raw, err)
	}
	return t, nil
}

// RunTrackingQuery validates the pair, queries the gateway, renders the report and
// moves the charge button according to the lateness check.
func (s *TrackingService) RunTrackingQuery(ctx context.Context, in domain.FormInput) (*ports.TrackingOutcome, error) {
	in, err := s.ValidateInputs(in)
	if err != nil {
		return nil, err
	}

	result, err := s.api.FetchTracking(ctx, in.TaxID, in.InvoiceNumber)
	if err != nil {
		s.applyButton(in, false)
		s.logger.Error().Err(err).Str("tax_id", in.TaxID).Str("invoice", in.InvoiceNumber).Msg("tracking query failed")
		return nil, err
	}

	late := s.IsDeliveryLate(result)
	state := s.applyButton(in, late)
	if late {
		metrics.LateDeliveriesTotal.Inc()
	}

	s.logger.Info().
		Str("tax_id", in.TaxID).
		Str("invoice", in.InvoiceNumber).
		Int("events", len(result.Events)).
		Bool("late", late).
		Msg("tracking query completed")

	return &ports.TrackingOutcome{
		Report:       FormatTrackingResult(result),
		Late:         late,
		ChargeButton: state,
	}, nil
}

func (s *TrackingService) applyButton(in domain.FormInput, late bool) domain.ChargeButtonState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.button.Apply(late) {
		s.logger.Debug().Str("state", string(s.button.State())).Msg("charge button toggled")
	}
	if late {
		s.flagged = in
	} else {
		s.flagged = domain.FormInput{}
	}
	return s.button.State()
}

// chargeable reports whether in is the pair the shown button was raised for.
func (s *TrackingService) chargeable(in domain.FormInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.button.State() == domain.ChargeShown && s.flagged == in
}

// ChargeButton returns the current state of the charge action.
func (s *TrackingService) ChargeButton() domain.ChargeButtonState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.button.State()
}

// ChargeDelivery hands a late delivery to the notifier. It is refused while the
// charge button is hidden and for any pair other than the one that showed it.
func (s *TrackingService) ChargeDelivery(ctx context.Context, in domain.FormInput) (string, error) {
	in, err := s.ValidateInputs(in)
	if err != nil {
		return "", err
	}
	if !s.chargeable(in) {
		return "", fmt.Errorf("%w: no late delivery flagged for this shipment", domain.ErrChargeUnavailable)
	}

	msg, err := s.notifier.NotifyLateDelivery(ctx, in)
	if err != nil {
		if !errors.Is(err, domain.ErrChargeUnavailable) {
			s.logger.Error().Err(err).Str("tax_id", in.TaxID).Msg("charge notification failed")
		}
		return "", err
	}
	return msg, nil
}

// RunReceiptDownload validates the pair, queries the receipt and turns it into a
// URL notice, a downloadable PNG or a not-found notice.
func (s *TrackingService) RunReceiptDownload(ctx context.Context, in domain.FormInput) (*ports.ReceiptOutcome, error) {
	in, err := s.ValidateInputs(in)
	if err != nil {
		return nil, err
	}

	result, err := s.api.FetchReceipt(ctx, in.TaxID, in.InvoiceNumber)
	if err != nil {
		s.logger.Error().Err(err).Str("tax_id", in.TaxID).Str("invoice", in.InvoiceNumber).Msg("receipt query failed")
		return nil, err
	}

	switch {
	case result.ReceiptURL != "":
		metrics.ReceiptOutcomesTotal.WithLabelValues("url").Inc()
		return &ports.ReceiptOutcome{URL: result.ReceiptURL}, nil

	case result.Image != "":
		data, err := decodeImage(result.Image)
		if err != nil {
			return nil, fmt.Errorf("receipt image: %w: %v", domain.ErrQuery, err)
		}
		metrics.ReceiptOutcomesTotal.WithLabelValues("download").Inc()
		return &ports.ReceiptOutcome{Download: &ports.ReceiptDownload{
			FileName:    ReceiptFileName(in, s.opts.Now()),
			ContentType: "image/png",
			Data:        data,
		}}, nil

	default:
		metrics.ReceiptOutcomesTotal.WithLabelValues("not_found").Inc()
		return &ports.ReceiptOutcome{NotFound: true}, nil
	}
}

// ReceiptFileName builds comprovante_<taxid>_<nf>_<timestamp>.png where timestamp
// is the UTC ISO-8601 instant with ':' and '.' removed.
func ReceiptFileName(in domain.FormInput, at time.Time) string {
	stamp := at.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	stamp = strings.NewReplacer(":", "", ".", "").Replace(stamp)
	return fmt.Sprintf("comprovante_%s_%s_%s.png", fileSafe(in.TaxID), fileSafe(in.InvoiceNumber), stamp)
}

// fileSafe replaces path separators, which formatted CNPJs contain.
func fileSafe(s string) string {
	return strings.NewReplacer("/", "-", `\`, "-").Replace(s)
}

func decodeImage(s string) ([]byte, error) {
	if i := strings.Index(s, ";base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+len(";base64,"):]
	}
	s = strings.TrimSpace(s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
