// Package web streams autopilot handball games to websocket spectators.
// Each frame is sent as the rows the renderer changed; a spectator that
// joins mid-game first receives the whole screen.
package web

import "sync"

// Row is one text row of the screen.
type Row struct {
	Y    int    `json:"y"`
	Text string `json:"text"`
}

// Frame is one message sent to spectators.
type Frame struct {
	Round  int    `json:"round"`
	Full   bool   `json:"full"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Rows   []Row  `json:"rows"`
	Score  int    `json:"score"`
	Target int    `json:"target"`
	Losses int    `json:"losses"`
	Status string `json:"status"`
	LED    bool   `json:"led"`
}

const sendBuffer = 64

// Hub fans frames out to registered spectators. Slow spectators drop
// frames instead of blocking the game.
type Hub struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]chan Frame
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[int]chan Frame)}
}

// Register adds a spectator and returns its id and frame channel.
func (h *Hub) Register() (int, <-chan Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	ch := make(chan Frame, sendBuffer)
	h.subscribers[h.nextID] = ch
	return h.nextID, ch
}

// Unregister removes a spectator and closes its channel.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}

// SendTo delivers a frame to one spectator.
func (h *Hub) SendTo(id int, f Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if ch, ok := h.subscribers[id]; ok {
		select {
		case ch <- f:
		default:
		}
	}
}

// Broadcast delivers a frame to every spectator.
func (h *Hub) Broadcast(f Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- f:
		default:
		}
	}
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
