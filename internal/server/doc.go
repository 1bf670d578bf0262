// Package server implements the demo option source used to exercise remote
// loading.
//
// The server answers searches over one YAML option list through two
// transports:
//
//	GET /options?q=fra&limit=10     → {"data":[{"id":"fr","text":"France"}]}
//	GET /ws                          WebSocket; each text message is a query
//	                                 string, each reply the same JSON envelope
//
// Matching uses the same filter as the widget (pattern or fuzzy), so a
// remote search and a local one over the same data agree. An optional
// artificial latency makes pending states and debouncing visible.
//
// # Usage Example
//
//	srv, err := server.New(&server.Config{Addr: ":8089", DataPath: "options.yaml"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// Start blocks until SIGINT or SIGTERM and then shuts down gracefully,
// closing open WebSocket connections.
//
// # TLS
//
// When both CertPath and KeyPath are set the listener serves TLS 1.2+, and
// clients use https:// and wss:// endpoints.
package server
