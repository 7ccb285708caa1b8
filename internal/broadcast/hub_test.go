package broadcast

import (
	"context"
	"encoding/json"
	"testing"
)

func newTestClient(id string, buffer int) *Client {
	return &Client{ID: id, Send: make(chan []byte, buffer)}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(nil)
	client := newTestClient("client-1", 4)

	hub.Register(client)
	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}

	hub.Unregister(client)
	if hub.ClientCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", hub.ClientCount())
	}
	if _, open := <-client.Send; open {
		t.Fatal("expected send channel closed")
	}
}

func TestHubPublishReachesAllClients(t *testing.T) {
	hub := NewHub(nil)
	first := newTestClient("client-1", 4)
	second := newTestClient("client-2", 4)
	hub.Register(first)
	hub.Register(second)

	hub.Publish(context.Background(), Event{
		Event: "criticalStock",
		Data:  map[string]any{"bloodType": "O-", "currentUnits": 3},
	})

	for _, client := range []*Client{first, second} {
		select {
		case raw := <-client.Send:
			var event Event
			if err := json.Unmarshal(raw, &event); err != nil {
				t.Fatalf("decode event: %v", err)
			}
			if event.Event != "criticalStock" {
				t.Fatalf("unexpected event name: %s", event.Event)
			}
		default:
			t.Fatalf("client %s received nothing", client.ID)
		}
	}
}

func TestHubPublishSkipsFullBuffers(t *testing.T) {
	hub := NewHub(nil)
	full := newTestClient("full", 1)
	hub.Register(full)

	hub.Publish(context.Background(), Event{Event: "first"})
	hub.Publish(context.Background(), Event{Event: "second"})

	if got := len(full.Send); got != 1 {
		t.Fatalf("expected 1 buffered message, got %d", got)
	}
}

func TestHubPublishNoClients(t *testing.T) {
	hub := NewHub(nil)
	// Must not panic or block.
	hub.Publish(context.Background(), Event{Event: "emergencyAlert"})
}
