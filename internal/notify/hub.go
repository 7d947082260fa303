// Package notify provides an in-process fanout of new-message events.
// Message delivery to clients is pure polling; the hub is the seam where
// a push transport would attach without touching the chat service.
package notify

import (
	"log/slog"
	"sync"

	"github.com/severedgames/mysteryparty/internal/model"
)

const subscriberBuffer = 16

// Hub tracks subscribers per room and delivers message events to them.
// Delivery is best-effort: a subscriber whose buffer is full misses the
// event and is expected to catch up via its cursor on the next poll.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[model.RoomCode]map[chan model.Message]bool
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[model.RoomCode]map[chan model.Message]bool),
		logger: logger,
	}
}

// Subscribe registers interest in a room's messages. The returned cancel
// function must be called when the subscriber is done; it closes the channel.
func (h *Hub) Subscribe(code model.RoomCode) (<-chan model.Message, func()) {
	ch := make(chan model.Message, subscriberBuffer)

	h.mu.Lock()
	subs, ok := h.rooms[code]
	if !ok {
		subs = make(map[chan model.Message]bool)
		h.rooms[code] = subs
	}
	subs[ch] = true
	count := len(subs)
	h.mu.Unlock()

	h.logger.Debug("notify subscriber added",
		slog.String("room", string(code)),
		slog.Int("subscribers", count))

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.rooms[code]; ok {
			if subs[ch] {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(h.rooms, code)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Notify delivers msg to every subscriber of its room without blocking.
func (h *Hub) Notify(msg model.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for ch := range h.rooms[msg.RoomCode] {
		select {
		case ch <- msg:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("notify delivery dropped - subscriber buffer full",
			slog.String("room", string(msg.RoomCode)),
			slog.Int("dropped", dropped))
	}
}
