package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	ws "github.com/coder/websocket"
)

const pingInterval = 30 * time.Second

// Client is one browser tab listening for stale views.
type Client struct {
	hub  *Hub
	conn *ws.Conn

	mu    sync.Mutex
	stale []string

	notify chan struct{}
	done   chan struct{}
}

func NewClient(hub *Hub, conn *ws.Conn) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Run registers the client and blocks until the connection closes.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.writePump(ctx)
	c.readPump(ctx)
}

// markStale queues paths for the next message, keeping first-seen order.
func (c *Client) markStale(paths []string) {
	c.mu.Lock()
	for _, p := range paths {
		seen := false
		for _, q := range c.stale {
			if q == p {
				seen = true
				break
			}
		}
		if !seen {
			c.stale = append(c.stale, p)
		}
	}
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// nextMessage encodes and clears the queued paths. It reports false when
// nothing is queued.
func (c *Client) nextMessage() ([]byte, bool) {
	c.mu.Lock()
	paths := c.stale
	c.stale = nil
	c.mu.Unlock()

	if len(paths) == 0 {
		return nil, false
	}
	data, err := json.Marshal(invalidation(paths))
	if err != nil {
		c.hub.logger.Error("marshal invalidation", "error", err)
		return nil, false
	}
	return data, true
}

// readPump discards incoming messages; clients only listen.
func (c *Client) readPump(ctx context.Context) {
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			return
		}
	}
}

func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.notify:
			data, ok := c.nextMessage()
			if !ok {
				continue
			}
			if err := c.conn.Write(ctx, ws.MessageText, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}
