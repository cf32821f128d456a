package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/rtetrack/tracking-desk/internal/api/handler"
	"github.com/rtetrack/tracking-desk/internal/pkg/config"
	"github.com/rtetrack/tracking-desk/pkg/logger"
)

var (
	// Global flags
	logLevel string
	pretty   bool

	// Query flags shared by tracking, receipt and charge
	taxID         string
	invoiceNumber string

	// Wired in PersistentPreRunE
	desk *app
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rtetrack",
	Short: "Shipment tracking desk for the RTE gateway",
	Long: `rtetrack queries the RTE tracking gateway by CNPJ and invoice number.

It prints the trajectory history of a shipment, downloads delivery receipts,
flags late deliveries and serves the same actions as a local web form.

Credentials are read from RTE_USERNAME and RTE_PASSWORD (a .env file in the
working directory is loaded first).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		log := logger.Init(logger.Options{Level: level, Pretty: pretty || cfg.LogPretty})

		desk = newApp(cfg, log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (default from LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Human readable logs on stderr")

	for _, cmd := range []*cobra.Command{trackingCmd, receiptCmd, chargeCmd} {
		cmd.Flags().StringVar(&taxID, "cnpj", "", "CNPJ of the shipper")
		cmd.Flags().StringVar(&invoiceNumber, "nf", "", "Invoice number (NF)")
	}
	receiptCmd.Flags().StringVarP(&receiptDir, "out", "o", "", "Directory for downloaded receipts (default from RTE_RECEIPT_DIR)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Concurrent queries (default from RTE_BATCH_WORKERS)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from UI_ADDR)")

	rootCmd.AddCommand(trackingCmd)
	rootCmd.AddCommand(receiptCmd)
	rootCmd.AddCommand(chargeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

// userMessage renders gateway and validation errors the way the form does.
func userMessage(err error) string {
	if _, msg, known := handler.Describe(err); known {
		return msg
	}
	return err.Error()
}
