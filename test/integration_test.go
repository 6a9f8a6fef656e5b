package test

import (
	"testing"
	"time"

	"voicehub/internal/assistant"
	"voicehub/internal/channel"
	"voicehub/internal/server"
	"voicehub/pkg/protocol"
)

func startServer(t *testing.T) *server.Server {
	t.Helper()

	a := assistant.New(assistant.DefaultWakeWords, assistant.LangEnglish)
	srv := server.New("127.0.0.1:0", a, nil)
	go func() {
		_ = srv.Start()
	}()
	t.Cleanup(srv.Stop)

	deadline := time.Now().Add(2 * time.Second)
	for srv.Addr() == "" {
		if time.Now().After(deadline) {
			t.Fatal("server did not start listening")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return srv
}

func connect(t *testing.T, srv *server.Server) *channel.WebSocket {
	t.Helper()

	c := channel.NewWebSocket("ws://"+srv.Addr()+"/ws", nil)
	if err := c.Connect(); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { c.Disconnect() })
	return c
}

func nextEvent(t *testing.T, c *channel.WebSocket) protocol.Event {
	t.Helper()

	select {
	case ev, ok := <-c.Events():
		if !ok {
			t.Fatal("Event channel closed unexpectedly")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for event")
	}
	return protocol.Event{}
}

// drainGreeting consumes the synthetic connect event and the greeting
// pair the server sends to every new client.
func drainGreeting(t *testing.T, c *channel.WebSocket) {
	t.Helper()
	for i := 0; i < 3; i++ {
		nextEvent(t, c)
	}
}

func TestIntegration_CommandConversation(t *testing.T) {
	srv := startServer(t)
	c := connect(t, srv)
	drainGreeting(t, c)

	if err := c.SendMessage("open chrome"); err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}

	processing := nextEvent(t, c)
	if processing.Name != protocol.EventStatusUpdate {
		t.Fatalf("Expected status_update first, got %q", processing.Name)
	}

	echo := nextEvent(t, c)
	if echo.Name != protocol.EventLogMessage || echo.Type != "user" {
		t.Fatalf("Expected user echo, got %q type %q", echo.Name, echo.Type)
	}
	if echo.Data != "open chrome" {
		t.Errorf("Expected echo %q, got %q", "open chrome", echo.Data)
	}

	reply := nextEvent(t, c)
	if reply.Name != protocol.EventLogMessage || reply.Type != "ai" {
		t.Fatalf("Expected ai reply, got %q type %q", reply.Name, reply.Type)
	}
	if reply.Data != "Opening chrome" {
		t.Errorf("Expected reply %q, got %q", "Opening chrome", reply.Data)
	}

	speak := nextEvent(t, c)
	if speak.Name != protocol.EventAISpeak {
		t.Fatalf("Expected ai_speak, got %q", speak.Name)
	}
	if speak.Lang != assistant.LangEnglish {
		t.Errorf("Expected speech lang %q, got %q", assistant.LangEnglish, speak.Lang)
	}

	done := nextEvent(t, c)
	if done.Name != protocol.EventStatusUpdate || done.Data != "Command completed" {
		t.Fatalf("Expected completion status, got %q %q", done.Name, done.Data)
	}
}

func TestIntegration_LanguageSwitchAffectsReplies(t *testing.T) {
	srv := startServer(t)
	c1 := connect(t, srv)
	drainGreeting(t, c1)
	c2 := connect(t, srv)
	drainGreeting(t, c2)

	if count := srv.ClientCount(); count != 2 {
		t.Fatalf("Expected 2 clients, got %d", count)
	}

	// The switch is shared state, so both clients hear about it.
	if err := c1.ChangeLanguage(assistant.LangTamil); err != nil {
		t.Fatalf("Failed to change language: %v", err)
	}
	for _, c := range []*channel.WebSocket{c1, c2} {
		ev := nextEvent(t, c)
		if ev.Name != protocol.EventStatusUpdate || ev.Data != "Language: Tamil" {
			t.Fatalf("Expected Tamil status broadcast, got %q %q", ev.Name, ev.Data)
		}
	}

	if err := c2.SendMessage("open chrome"); err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}
	nextEvent(t, c2) // Processing status
	nextEvent(t, c2) // user echo

	reply := nextEvent(t, c2)
	if reply.Data != "chrome thorakkuren" {
		t.Errorf("Expected Tamil reply %q, got %q", "chrome thorakkuren", reply.Data)
	}
	if reply.Lang != assistant.LangTamil {
		t.Errorf("Expected reply lang %q, got %q", assistant.LangTamil, reply.Lang)
	}
}

func TestIntegration_WakeWordAcknowledged(t *testing.T) {
	srv := startServer(t)
	c := connect(t, srv)
	drainGreeting(t, c)

	if err := c.SendMessage("nova"); err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}

	nextEvent(t, c) // Processing status
	nextEvent(t, c) // user echo

	reply := nextEvent(t, c)
	if reply.Data != "Yes, how can I help?" {
		t.Errorf("Expected wake acknowledgement, got %q", reply.Data)
	}
}

func TestIntegration_ToggleListeningBroadcasts(t *testing.T) {
	srv := startServer(t)
	c := connect(t, srv)
	drainGreeting(t, c)

	if err := c.ToggleListening(); err != nil {
		t.Fatalf("Failed to toggle listening: %v", err)
	}
	ev := nextEvent(t, c)
	if ev.Name != protocol.EventStatusUpdate || ev.Data != "Listening paused" {
		t.Fatalf("Expected paused status, got %q %q", ev.Name, ev.Data)
	}

	if err := c.ToggleListening(); err != nil {
		t.Fatalf("Failed to toggle listening: %v", err)
	}
	ev = nextEvent(t, c)
	if ev.Data != "Listening enabled" {
		t.Errorf("Expected enabled status, got %q", ev.Data)
	}
}
