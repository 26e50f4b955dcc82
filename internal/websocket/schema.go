package websocket

import "github.com/stemsi/registry/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing      Action = "ping"
	ActionSubscribe Action = "subscribe"
)

// RequestPayload is every message a client may send.
// Kinds narrows the stream on subscribe; empty means all kinds.
type RequestPayload struct {
	Action Action       `json:"action"`
	Kinds  []model.Kind `json:"kinds,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventChange     Event = "change"
	EventSubscribed Event = "subscribed"
	EventError      Event = "error"
	EventPong       Event = "pong"
)

// ChangeResponse carries one persisted mutation.
type ChangeResponse struct {
	Event  Event        `json:"event"`
	Change model.Change `json:"change"`
}

type SubscribedResponse struct {
	Event Event        `json:"event"`
	Kinds []model.Kind `json:"kinds"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
