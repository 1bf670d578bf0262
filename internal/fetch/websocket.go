package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/selectbox/internal/logging"
	"github.com/muurk/selectbox/internal/version"
)

// WebSocketClient fetches option lists from ws:// and wss:// sources. Each
// fetch opens a connection, sends the query string as one text frame and
// reads one JSON reply.
type WebSocketClient struct {
	Dialer  *websocket.Dialer
	Header  http.Header
	Timeout time.Duration
}

// NewWebSocketClient creates a client with the default dialer.
func NewWebSocketClient() *WebSocketClient {
	return &WebSocketClient{
		Dialer:  websocket.DefaultDialer,
		Header:  http.Header{},
		Timeout: DefaultTimeout,
	}
}

// Client returns c as a Client function.
func (c *WebSocketClient) Client() Client {
	return c.Fetch
}

// Fetch returns the option list for rawURL.
func (c *WebSocketClient) Fetch(ctx context.Context, rawURL string) ([]any, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, NewParseError(fmt.Sprintf("invalid request URL %q", rawURL), err)
	}
	query := u.RawQuery
	u.RawQuery = ""

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	header := c.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	header.Set("User-Agent", version.UserAgent())

	conn, resp, err := c.Dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			fe := NewHTTPError(resp.StatusCode, fmt.Sprintf("websocket handshake failed: %s", resp.Status))
			fe.URL = rawURL
			return nil, fe
		}
		fe := NewNetworkError("websocket dial failed", err)
		fe.URL = rawURL
		return nil, fe
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.SetReadDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	remote := conn.RemoteAddr().String()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(query)); err != nil {
		return nil, NewNetworkError("failed to send query", err)
	}
	logging.LogWebSocketMessage(remote, "sent", []byte(query))

	msgType, data, err := conn.ReadMessage()
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewNetworkError("websocket read abandoned", ctx.Err())
		}
		return nil, NewNetworkError("failed to read reply", err)
	}
	logging.LogWebSocketMessage(remote, "received", data)
	if msgType != websocket.TextMessage {
		return nil, NewParseError(fmt.Sprintf("unexpected websocket message type %d", msgType), nil)
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return DecodeList(data)
}
