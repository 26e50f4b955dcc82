package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/registry/internal/logger"
	"github.com/stemsi/registry/internal/model"
)

const subscriberBuffer = 64

// Hub fans persisted changes out to connected subscribers. A subscriber
// that falls a full buffer behind is dropped instead of stalling writers.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
	log  zerolog.Logger
}

// NewHub creates an empty Hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[*Subscription]struct{}),
		log:  logger.Component(log, "event_hub"),
	}
}

// Subscription is one consumer of the change stream.
type Subscription struct {
	hub   *Hub
	ch    chan model.Change
	kinds map[model.Kind]bool
}

// C delivers changes. It is closed when the subscription ends.
func (s *Subscription) C() <-chan model.Change { return s.ch }

// SetKinds narrows the subscription; no kinds means every kind.
func (s *Subscription) SetKinds(kinds []model.Kind) {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.kinds = kindSet(kinds)
}

// Close ends the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.hub.dropLocked(s)
}

// Subscribe registers a new subscriber for the given kinds.
func (h *Hub) Subscribe(kinds ...model.Kind) *Subscription {
	sub := &Subscription{
		hub:   h,
		ch:    make(chan model.Change, subscriberBuffer),
		kinds: kindSet(kinds),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Len returns the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Publish delivers change to every interested subscriber without blocking.
func (h *Hub) Publish(_ context.Context, change model.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		if len(sub.kinds) > 0 && !sub.kinds[change.Kind] {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			h.log.Warn().Str("kind", string(change.Kind)).Msg("Subscriber too slow, dropping it")
			h.dropLocked(sub)
		}
	}
}

func (h *Hub) dropLocked(sub *Subscription) {
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
}

// Serve streams changes to conn until the client leaves or falls behind.
// The caller owns conn and closes it after Serve returns.
func (h *Hub) Serve(conn *websocket.Conn, log zerolog.Logger) {
	sub := h.Subscribe()
	defer sub.Close()

	out := make(chan interface{}, 8)
	done := make(chan struct{})
	go h.writePump(conn, sub, out, done, log)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	log.Info().Msg("Event subscriber connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("Unexpected close")
			} else {
				log.Debug().Msg("Connection closed")
			}
			break
		}

		var reply interface{}
		var msg RequestPayload
		if err := json.Unmarshal(data, &msg); err != nil {
			reply = ErrorResponse{Event: EventError, Error: "invalid payload"}
		} else {
			reply = handleRequest(sub, msg, log)
		}

		select {
		case out <- reply:
		case <-done:
			return
		}
	}

	close(out)
	<-done
}

func handleRequest(sub *Subscription, msg RequestPayload, log zerolog.Logger) interface{} {
	switch msg.Action {
	case ActionPing:
		return PongResponse{Event: EventPong}
	case ActionSubscribe:
		sub.SetKinds(msg.Kinds)
		return SubscribedResponse{Event: EventSubscribed, Kinds: msg.Kinds}
	default:
		log.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
		return ErrorResponse{Event: EventError, Error: "unknown action: " + string(msg.Action)}
	}
}

// writePump owns every write on conn: changes, replies and keep-alive pings.
func (h *Hub) writePump(conn *websocket.Conn, sub *Subscription, out <-chan interface{}, done chan<- struct{}, log zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(done)
		_ = conn.Close()
	}()

	for {
		select {
		case change, ok := <-sub.C():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "subscriber too slow"),
					time.Now().Add(writeWait))
				return
			}
			if err := WriteTyped(conn, ChangeResponse{Event: EventChange, Change: change}); err != nil {
				log.Debug().Err(err).Msg("Write change failed")
				return
			}
		case reply, ok := <-out:
			if !ok {
				return
			}
			if err := WriteTyped(conn, reply); err != nil {
				log.Debug().Err(err).Msg("Write reply failed")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func kindSet(kinds []model.Kind) map[model.Kind]bool {
	if len(kinds) == 0 {
		return nil
	}
	set := make(map[model.Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}
