package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/awinterstein/xrechnung/internal/config"
	"github.com/awinterstein/xrechnung/internal/hours"
	"github.com/awinterstein/xrechnung/internal/model"
	"github.com/awinterstein/xrechnung/internal/ubl"
	"github.com/awinterstein/xrechnung/internal/xmldoc"
)

var (
	invoiceID  string
	buyerName  string
	issueDate  string
	hoursFile  string
	outputFile string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an invoice XML file",
	Long: `Generate an XRechnung invoice from the configuration and a CSV file
of worked hours.

The CSV file must have a header row naming the columns name, quantity and
hourly_rate; a date column (ISO 8601) is optional and may be empty per row.
The billing period starts at the date of the first line item, or on the
first day of the issue month if the items carry no dates, and ends on the
issue date.

Examples:
  xrechnung generate -c config.toml -b "Client Company" \
    -i 2026-001 -d 2026-08-31 -l hours.csv -o invoice.xml`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&invoiceID, "invoice-id", "i", "", "Unique number of the invoice")
	generateCmd.Flags().StringVarP(&buyerName, "buyer", "b", "", "Buyer of the invoice")
	generateCmd.Flags().StringVarP(&issueDate, "issue-date", "d", "", "Issue date of the invoice (YYYY-MM-DD)")
	generateCmd.Flags().StringVarP(&hoursFile, "invoice-hours", "l", "", "CSV file that contains the invoice lines")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output XML file for the invoice")

	generateCmd.MarkFlagRequired("invoice-id")
	generateCmd.MarkFlagRequired("buyer")
	generateCmd.MarkFlagRequired("issue-date")
	generateCmd.MarkFlagRequired("invoice-hours")
	generateCmd.MarkFlagRequired("output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, buyerName)
	if err != nil {
		return err
	}

	issued, err := time.Parse(model.DateLayout, issueDate)
	if err != nil {
		return fmt.Errorf("invalid issue date %q: %w", issueDate, err)
	}

	items, err := hours.ReadFile(hoursFile)
	if err != nil {
		return err
	}
	printVerbose("Read %d line items from %s\n", len(items), hoursFile)

	period, err := billingPeriod(items, issued)
	if err != nil {
		return err
	}

	bill := model.NewBill(invoiceID, issued, period, cfg)

	root, err := ubl.BuildInvoice(&cfg.Supplier, &cfg.Buyer, &bill, items)
	if err != nil {
		return err
	}

	if err := xmldoc.WriteFile(outputFile, root); err != nil {
		return err
	}
	printVerbose("Wrote invoice %s to %s\n", invoiceID, outputFile)

	return nil
}

// billingPeriod spans from the date of the first line item, or the first
// day of the issue month if that item has no date, up to the issue date.
func billingPeriod(items []model.HoursItem, issued time.Time) (*model.Period, error) {
	start := time.Date(issued.Year(), issued.Month(), 1, 0, 0, 0, 0, time.UTC)

	if len(items) > 0 && items[0].Date != "" {
		parsed, err := time.Parse(model.DateLayout, items[0].Date)
		if err != nil {
			return nil, model.NewParseError("date", items[0].Date, "not an ISO 8601 calendar date", err)
		}
		start = parsed
	}

	return &model.Period{Start: start, End: issued}, nil
}
