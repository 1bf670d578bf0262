package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/selectbox/internal/selectbox"
	"github.com/muurk/selectbox/internal/server"
	"github.com/muurk/selectbox/internal/ui"
)

// Serve command flags
var (
	serveAddr      string
	serveData      string
	serveTermQuery string
	serveMode      string
	serveLimit     int
	serveLatency   time.Duration
	certPath       string
	keyPath        string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo option source",
	Long: `Start an HTTP and WebSocket server answering option searches from a
YAML option list.

GET /options?q=<term> returns {"data": [{"id": ..., "text": ...}]}. The same
query sent as a text message to /ws is answered with the same document.
Use --latency to simulate a slow backend when trying the search debounce.`,
	Example: `  # Serve a country list on the default port
  selectbox serve --data countries.yaml

  # Fuzzy matching, at most 10 results, 300ms simulated latency
  selectbox serve --data countries.yaml --mode fuzzy --limit 10 --latency 300ms

  # Serve over TLS
  selectbox serve --data countries.yaml --cert cert.pem --key key.pem`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", server.DefaultAddr, "Listen address")
	serveCmd.Flags().StringVar(&serveData, "data", "", "YAML option list to serve (required)")
	serveCmd.Flags().StringVar(&serveTermQuery, "term-query", "q", "Query parameter carrying the search term")
	serveCmd.Flags().StringVar(&serveMode, "mode", string(selectbox.SearchPattern), "Matching mode (pattern, fuzzy)")
	serveCmd.Flags().IntVar(&serveLimit, "limit", 0, "Maximum results per reply (0 = unlimited)")
	serveCmd.Flags().DurationVar(&serveLatency, "latency", 0, "Artificial delay before each reply")
	serveCmd.Flags().StringVar(&certPath, "cert", "", "Path to TLS certificate file (optional)")
	serveCmd.Flags().StringVar(&keyPath, "key", "", "Path to TLS private key file (optional)")
	_ = serveCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Either both cert and key are provided, or neither
	if (certPath != "") != (keyPath != "") {
		return fmt.Errorf("both --cert and --key must be provided together, or neither")
	}
	if certPath != "" {
		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			return fmt.Errorf("certificate file not found: %s", certPath)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			return fmt.Errorf("private key file not found: %s", keyPath)
		}
	}
	switch selectbox.SearchMode(serveMode) {
	case selectbox.SearchPattern, selectbox.SearchFuzzy:
	default:
		return fmt.Errorf("unknown mode %q (want pattern or fuzzy)", serveMode)
	}

	srv, err := server.New(&server.Config{
		Addr:      serveAddr,
		DataPath:  serveData,
		TermQuery: serveTermQuery,
		Mode:      selectbox.SearchMode(serveMode),
		Limit:     serveLimit,
		Latency:   serveLatency,
		CertPath:  certPath,
		KeyPath:   keyPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	scheme := "http"
	if certPath != "" {
		scheme = "https"
	}
	h := ui.NewHeader("Option Source", "selectbox serve").
		AddParam("Address", serveAddr).
		AddParam("Data", serveData).
		AddParam("Options", fmt.Sprintf("%s://localhost%s/options?%s=", scheme, portOf(serveAddr), serveTermQuery)).
		AddParam("Mode", serveMode)
	if serveLatency > 0 {
		h.AddParam("Latency", serveLatency.String())
	}
	ui.NewPrinter(nil).PrintHeader(h)

	return srv.Start()
}

// portOf returns the ":port" suffix of a listen address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	return ":" + port
}
