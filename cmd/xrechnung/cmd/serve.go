package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/awinterstein/xrechnung/internal/config"
	"github.com/awinterstein/xrechnung/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for generating invoices.

The API provides endpoints for:
  - POST /api/v1/invoices - Generate an invoice from a JSON request
  - GET  /health          - Health check

The request body selects one of the configured buyers by name and carries
the invoice number, issue date, optional billing period and line items.

Examples:
  # Start server with the given billing configuration
  xrechnung serve -c config.toml

  # Start on custom port in debug mode
  xrechnung serve -c config.toml --address :8080 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 30*time.Second, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	billing, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	srv := server.NewServer(&server.Config{
		Address:      serverAddr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}, billing)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	fmt.Printf("Serving invoices for %d configured buyer(s)\n", len(billing.Buyers))

	return srv.Run()
}
