package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtetrack/tracking-desk/internal/api"
	"github.com/rtetrack/tracking-desk/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

// serveCmd serves the local tracking form and JSON API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tracking form on a local address",
	Long: `Starts the local web form (GET /) and the JSON API (/v1). Only loopback
clients are accepted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = desk.cfg.UI.Addr
	}

	e := api.NewRouter(api.Deps{
		Service: desk.service,
		Tokens:  desk.client,
		Log:     logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		desk.log.Info().Str("addr", addr).Msg("serving tracking form")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
	}

	desk.log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}
