package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
	"github.com/rtetrack/tracking-desk/internal/infrastructure/receipt"
)

const lateHint = "⚠ Entrega atrasada. Use \"rtetrack charge\" para cobrar a entrega."

var receiptDir string

// trackingCmd prints the trajectory history of one shipment
var trackingCmd = &cobra.Command{
	Use:     "tracking",
	Short:   "Print the trajectory history of a shipment",
	Example: `  rtetrack tracking --cnpj 12345678000199 --nf 98765`,
	Args:    cobra.NoArgs,
	RunE:    runTracking,
}

// receiptCmd fetches the delivery receipt of one shipment
var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Fetch the delivery receipt of a shipment",
	Long: `Fetches the delivery receipt. A receipt URL is printed as is; an image
receipt is saved as comprovante_<cnpj>_<nf>_<timestamp>.png.`,
	Example: `  rtetrack receipt --cnpj 12345678000199 --nf 98765 -o ./receipts`,
	Args:    cobra.NoArgs,
	RunE:    runReceipt,
}

// chargeCmd re-checks a shipment and charges it when it is late
var chargeCmd = &cobra.Command{
	Use:   "charge",
	Short: "Charge the carrier for a late delivery",
	Long: `Runs the tracking query first; the charge is only offered for late
deliveries, exactly as the form shows the "Cobrar Entrega" button.`,
	Args: cobra.NoArgs,
	RunE: runCharge,
}

func formInput() domain.FormInput {
	return domain.FormInput{TaxID: taxID, InvoiceNumber: invoiceNumber}
}

func runTracking(cmd *cobra.Command, args []string) error {
	out, err := desk.service.RunTrackingQuery(cmd.Context(), formInput())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, out.Report)
	if out.Late {
		fmt.Fprintln(w)
		fmt.Fprintln(w, lateHint)
	}
	return nil
}

func runReceipt(cmd *cobra.Command, args []string) error {
	out, err := desk.service.RunReceiptDownload(cmd.Context(), formInput())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if out.Download == nil {
		fmt.Fprintln(w, out.Message())
		return nil
	}

	store := desk.store
	if receiptDir != "" {
		store = receipt.NewFileStore(receiptDir)
	}
	path, err := store.Save(out.Download)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Comprovante salvo em %s\n", path)
	return nil
}

func runCharge(cmd *cobra.Command, args []string) error {
	if _, err := desk.service.RunTrackingQuery(cmd.Context(), formInput()); err != nil {
		return err
	}

	msg, err := desk.service.ChargeDelivery(cmd.Context(), formInput())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
