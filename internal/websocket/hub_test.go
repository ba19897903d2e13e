package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// mockClient creates a Client without a connection.
func mockClient(hub *Hub) *Client {
	return NewClient(hub, nil)
}

func decodePaths(t *testing.T, data []byte) (string, []string) {
	t.Helper()
	var got struct {
		Type  string `json:"type"`
		Extra struct {
			Paths []string `json:"paths"`
		} `json:"extra"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return got.Type, got.Extra.Paths
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(testLogger)

	c1 := mockClient(hub)
	c2 := mockClient(hub)
	hub.Register(c1)
	hub.Register(c2)
	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Unregister(c1)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}
	select {
	case <-c1.done:
	default:
		t.Error("unregister should close done")
	}

	hub.Unregister(c2)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := NewHub(testLogger)
	c := mockClient(hub)
	hub.Register(c)
	hub.Unregister(c)
	hub.Unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestInvalidate(t *testing.T) {
	hub := NewHub(testLogger)
	c1 := mockClient(hub)
	c2 := mockClient(hub)
	hub.Register(c1)
	hub.Register(c2)

	hub.Invalidate(ViewShopping, ViewPantry)

	for _, c := range []*Client{c1, c2} {
		select {
		case <-c.notify:
		default:
			t.Fatal("client was not notified")
		}
		data, ok := c.nextMessage()
		if !ok {
			t.Fatal("expected a queued message")
		}
		typ, paths := decodePaths(t, data)
		if typ != "view_invalidated" {
			t.Errorf("type = %q, want view_invalidated", typ)
		}
		if len(paths) != 2 || paths[0] != "/shopping" || paths[1] != "/pantry" {
			t.Errorf("paths = %v", paths)
		}
	}
}

func TestInvalidateCoalesces(t *testing.T) {
	hub := NewHub(testLogger)
	c := mockClient(hub)
	hub.Register(c)

	for i := 0; i < 100; i++ {
		hub.Invalidate(ViewShopping)
	}
	hub.Invalidate(ViewBudget, ViewShopping)

	data, ok := c.nextMessage()
	if !ok {
		t.Fatal("expected a queued message")
	}
	_, paths := decodePaths(t, data)
	if len(paths) != 2 || paths[0] != ViewShopping || paths[1] != ViewBudget {
		t.Errorf("paths = %v, want [/shopping /budget]", paths)
	}
	if _, ok := c.nextMessage(); ok {
		t.Error("queue should be empty after nextMessage")
	}
}

func TestInvalidateNoPaths(t *testing.T) {
	hub := NewHub(testLogger)
	c := mockClient(hub)
	hub.Register(c)

	hub.Invalidate()

	select {
	case <-c.notify:
		t.Error("expected no notification without paths")
	default:
	}
}

func TestInvalidateEmptyHub(t *testing.T) {
	hub := NewHub(testLogger)
	hub.Invalidate(ViewRecipes)
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(testLogger)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := mockClient(hub)
			hub.Register(c)
			hub.Invalidate(ViewPantry)
			c.nextMessage()
			hub.Unregister(c)
		}()
	}
	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients after concurrent test, got %d", got)
	}
}
