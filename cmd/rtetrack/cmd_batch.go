package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtetrack/tracking-desk/internal/infrastructure/queue"
	"github.com/rtetrack/tracking-desk/pkg/logger"
)

var batchWorkers int

// batchCmd runs the tracking query for every pair in a CSV file
var batchCmd = &cobra.Command{
	Use:   "batch [file.csv]",
	Short: "Run tracking queries for many shipments",
	Long: `Reads "cnpj,nf" pairs from a CSV file (an optional header row and
lines starting with # are skipped) and prints one report per pair, in file order.

All queries share one session token.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	pairs, err := queue.ReadPairs(f)
	if err != nil {
		return err
	}

	workers := batchWorkers
	if workers <= 0 {
		workers = desk.cfg.Tracker.BatchWorkers
	}
	d := queue.NewDispatcher(workers, desk.service, logger.Component("queue"))
	results := d.Run(cmd.Context(), pairs)

	w := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		fmt.Fprintf(w, "== CNPJ %s / NF %s ==\n", r.Input.TaxID, r.Input.InvoiceNumber)
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "✖ %s\n\n", userMessage(r.Err))
			continue
		}
		fmt.Fprintln(w, r.Outcome.Report)
		if r.Outcome.Late {
			fmt.Fprintln(w, "⚠ Entrega atrasada.")
		}
		fmt.Fprintln(w)
	}

	if failed > 0 {
		return fmt.Errorf("%d de %d consultas falharam", failed, len(results))
	}
	return nil
}
