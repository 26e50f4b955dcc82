package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/registry/internal/logger"
	"github.com/stemsi/registry/internal/response"
	"github.com/stemsi/registry/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) gws.Upgrader {
	return gws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// EventsHandler streams registry changes over WebSocket.
type EventsHandler struct {
	hub      *websocket.Hub
	log      zerolog.Logger
	upgrader gws.Upgrader
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(hub *websocket.Hub, log zerolog.Logger, allowedOrigins []string) *EventsHandler {
	return &EventsHandler{
		hub:      hub,
		log:      logger.Component(log, "events_handler"),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// Stream godoc
// WS /ws/v1/events?token=...
// Sends {"event":"change","change":{kind,op,id,at}} after every mutation.
// Clients may narrow the stream with {"action":"subscribe","kinds":[...]}.
func (h *EventsHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	log := h.log.With().Str("request_id", response.RequestID(c)).Logger()
	h.hub.Serve(conn, log)
}
