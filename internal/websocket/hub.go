package websocket

import (
	"log/slog"
	"sync"
)

// Logical views a client may be showing. Invalidations name the views whose
// data changed so clients can refetch them.
const (
	ViewShopping = "/shopping"
	ViewPantry   = "/pantry"
	ViewBudget   = "/budget"
	ViewHistory  = "/history"
	ViewMealPlan = "/meal-plan"
	ViewRecipes  = "/recipes"
)

// Message is a notification pushed to connected clients.
type Message struct {
	Type   string         `json:"type"`
	Entity string         `json:"entity"`
	Action string         `json:"action"`
	Extra  map[string]any `json:"extra,omitempty"`
}

func invalidation(paths []string) Message {
	return Message{
		Type:   "view_invalidated",
		Entity: "view",
		Action: "invalidated",
		Extra:  map[string]any{"paths": paths},
	}
}

// Hub tracks connected clients and fans view invalidations out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client and stops its write pump. Calling it twice is
// harmless.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.done)
	}
	h.mu.Unlock()
}

// Invalidate marks paths stale on every client. A client that has not yet
// been written to receives the union of everything marked since its last
// message, so slow clients never miss a view.
func (h *Hub) Invalidate(paths ...string) {
	if len(paths) == 0 {
		return
	}
	h.logger.Debug("invalidate views", "paths", paths)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.markStale(paths)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
