package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "xrechnung",
	Short: "Generate XRechnung e-invoices (UBL XML)",
	Long: `XRechnung is a CLI tool for generating electronic invoices in the
XRechnung 3.0 / PEPPOL billing profile (UBL Invoice-2 XML).

Supplier, buyer and tax data come from a TOML configuration file; the
billed hours come from a CSV file with one line item per row.

Examples:
  # Generate an invoice for a configured buyer
  xrechnung generate -c config.toml -b "Client Company" \
    -i 2026-001 -d 2026-08-31 -l hours.csv -o invoice.xml

  # Serve invoice generation as an HTTP API
  xrechnung serve -c config.toml --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "Configuration file with supplier and buyer data")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format, args...)
	}
}
