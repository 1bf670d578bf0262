// Package fetch loads option lists from remote sources.
//
// BuildURL composes a request target from an endpoint, ordered static
// Params and an optional search term. A Client turns that URL into a raw
// list; HTTPClient speaks JSON over HTTP with retries, request coalescing
// and a short-lived cache, WebSocketClient sends the query over a ws://
// connection and reads one reply. Fetcher applies a per-item Formatter
// and hands back option objects.
//
// Failures are *FetchError values classified by ErrorType, in the same
// shape for both transports.
package fetch
