package server

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/selectbox/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed between queries before the connection is dropped
	pongWait = 60 * time.Second

	// Maximum query size allowed from peer
	maxMessageSize = 8192
)

// WebSocketHandler upgrades GET /ws. Every text message is a query string
// (`q=term&limit=n`); each is answered with one JSON reply in the same
// envelope as GET /options.
func (s *Server) WebSocketHandler(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", c.ClientIP()),
			zap.Error(err),
		)
		return
	}

	remoteAddr := conn.RemoteAddr().String()
	s.wg.Add(1)
	s.track(remoteAddr, conn)
	defer func() {
		_ = conn.Close()
		s.untrack(remoteAddr)
		s.wg.Done()
		logging.Debug("WebSocket closed", zap.String("remote_addr", remoteAddr))
	}()

	conn.SetReadLimit(maxMessageSize)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return
		}
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("Connection closed or error reading message",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(remoteAddr, "received", data)

		if msgType != websocket.TextMessage {
			logging.Warn("Ignoring non-text WebSocket message",
				zap.String("remote_addr", remoteAddr),
				zap.Int("type", msgType),
			)
			continue
		}

		reply := s.answer(c, data)
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			logging.Info("Failed to write reply",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			return
		}
		logging.LogWebSocketMessage(remoteAddr, "sent", reply)
	}
}

// answer encodes the reply for one query message.
func (s *Server) answer(c *gin.Context, data []byte) []byte {
	var body any
	query, err := url.ParseQuery(string(data))
	if err == nil {
		var items []map[string]any
		items, err = s.lookup(c.Request.Context(), query)
		body = optionsResponse{Data: items}
	}
	if err != nil {
		body = gin.H{"error": err.Error()}
	}
	reply, err := json.Marshal(body)
	if err != nil {
		return []byte(`{"error":"failed to encode reply"}`)
	}
	return reply
}
