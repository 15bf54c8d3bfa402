// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"

	"github.com/danielhkuo/ballotwatch/hub"
	"github.com/danielhkuo/ballotwatch/middleware"
	"github.com/danielhkuo/ballotwatch/models"
	"github.com/danielhkuo/ballotwatch/stats"
)

// Observers never send anything meaningful; keep reads small
const maxObserverMessageSize = 512

type StatsHandler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

func NewStatsHandler(h *hub.Hub) *StatsHandler {
	return &StatsHandler{
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Same policy as the CORS middleware: any origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, stats.Message(h.hub.Latest()))
}

// Stream handles GET /ws
// Pushes the current stats on connect and after every change.
func (h *StatsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "WebSocket upgrade required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess, err := h.hub.Join(&wsSink{conn: conn})
	if err != nil {
		slog.Warn("observer rejected", "error", err)
		conn.Close()
		return
	}

	slog.Info("observer connected", "session", sess.ID, "remote", middleware.GetClientIP(r))

	// Block until the client goes away or the hub drops the session.
	// Incoming frames are discarded.
	conn.SetReadLimit(maxObserverMessageSize)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	sess.Close()
	<-sess.Done()

	slog.Info("observer disconnected",
		"session", sess.ID,
		"joined", humanize.Time(sess.JoinedAt),
		"delivered", humanize.Comma(sess.Delivered()),
	)
}

// wsSink adapts a WebSocket connection to hub.Sink.
// Close may block up to a second on a stalled peer; the hub only calls it
// from the session goroutine.
type wsSink struct {
	conn *websocket.Conn
}

func (s *wsSink) Send(ctx context.Context, msg models.StatsMessage) error {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}
	return s.conn.WriteJSON(msg)
}

func (s *wsSink) Close() error {
	// best effort close frame; called by the session goroutine after its last Send
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return s.conn.Close()
}
