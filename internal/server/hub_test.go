package server_test

import (
	"testing"

	"voicehub/internal/server"
)

func TestHub_Register(t *testing.T) {
	hub := server.NewHub(nil)
	client := &server.Client{
		ID:       "client-1",
		Outgoing: make(chan []byte, 16),
	}

	hub.Register(client)

	if got := hub.ClientCount(); got != 1 {
		t.Errorf("ClientCount() = %d, want 1", got)
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := server.NewHub(nil)
	client := &server.Client{
		ID:       "client-1",
		Outgoing: make(chan []byte, 16),
	}

	hub.Register(client)
	hub.Unregister(client.ID)

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("ClientCount() = %d, want 0", got)
	}
}

func TestHub_Broadcast(t *testing.T) {
	hub := server.NewHub(nil)

	clients := make([]*server.Client, 3)
	for i := range clients {
		clients[i] = &server.Client{
			ID:       string(rune('a' + i)),
			Outgoing: make(chan []byte, 16),
		}
		hub.Register(clients[i])
	}

	hub.Broadcast([]byte("hello"))

	for _, c := range clients {
		select {
		case data := <-c.Outgoing:
			if string(data) != "hello" {
				t.Errorf("client %s received %q, want %q", c.ID, data, "hello")
			}
		default:
			t.Errorf("client %s received nothing", c.ID)
		}
	}
}

func TestHub_Broadcast_SkipsFullChannel(t *testing.T) {
	hub := server.NewHub(nil)

	full := &server.Client{ID: "full", Outgoing: make(chan []byte)}
	open := &server.Client{ID: "open", Outgoing: make(chan []byte, 1)}
	hub.Register(full)
	hub.Register(open)

	hub.Broadcast([]byte("hello"))

	select {
	case <-open.Outgoing:
	default:
		t.Error("open client received nothing")
	}
}
