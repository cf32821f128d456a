package main

import (
	"github.com/rs/zerolog"

	"github.com/rtetrack/tracking-desk/internal/core/service"
	"github.com/rtetrack/tracking-desk/internal/infrastructure/notify"
	"github.com/rtetrack/tracking-desk/internal/infrastructure/receipt"
	"github.com/rtetrack/tracking-desk/internal/infrastructure/rteapi"
	"github.com/rtetrack/tracking-desk/internal/pkg/config"
)

// app holds the collaborators shared by every sub-command. One process owns one
// session token and one charge button.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	client  *rteapi.Client
	service *service.TrackingService
	store   *receipt.FileStore
}

func newApp(cfg *config.Config, log zerolog.Logger) *app {
	client := rteapi.NewClient(rteapi.Config{
		BaseURL:   cfg.RTE.BaseURL,
		AuthType:  cfg.RTE.AuthType,
		GrantType: cfg.RTE.GrantType,
		Username:  cfg.RTE.Username,
		Password:  cfg.RTE.Password,
		Timeout:   cfg.RTE.Timeout,
	}, log.With().Str("component", "rteapi").Logger())

	svc := service.NewTrackingService(
		client,
		notify.NewUnavailable(log.With().Str("component", "notify").Logger()),
		service.TrackingOptions{
			DefaultExpectedDate: cfg.Tracker.DefaultExpectedDate,
			CompletionPhrases:   cfg.Tracker.CompletionPhrases,
			Location:            cfg.Tracker.Location(),
		},
		log.With().Str("component", "service").Logger(),
	)

	return &app{
		cfg:     cfg,
		log:     log,
		client:  client,
		service: svc,
		store:   receipt.NewFileStore(cfg.Tracker.ReceiptDir),
	}
}
