package channel

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"voicehub/pkg/protocol"
)

// WebSocket is a Channel over a persistent WebSocket connection.
// Events are delivered on a buffered channel in arrival order; the
// consumer decides how to fan them out.
type WebSocket struct {
	address    string
	conn       *websocket.Conn
	events     chan protocol.Event
	logger     *zap.Logger
	mu         sync.RWMutex
	done       chan struct{}
	doneOnce   sync.Once
	wg         sync.WaitGroup
	isShutdown bool
}

// NewWebSocket creates a new WebSocket channel for the given server
// address (e.g. ws://localhost:8090/ws).
func NewWebSocket(address string, logger *zap.Logger) *WebSocket {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocket{
		address: address,
		events:  make(chan protocol.Event, 16),
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Connect establishes the WebSocket connection to the server. On
// success a synthetic connect event is delivered before any server
// event, mirroring the connect callback of browser socket clients.
func (c *WebSocket) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.address, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.events <- protocol.Event{Name: protocol.EventConnect}

	c.wg.Add(1)
	go c.receiveEvents()

	return nil
}

// Disconnect closes the WebSocket connection. The events channel is
// closed once the receive loop has drained.
func (c *WebSocket) Disconnect() {
	c.mu.Lock()
	if c.isShutdown {
		c.mu.Unlock()
		return
	}
	c.isShutdown = true
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	c.doneOnce.Do(func() {
		close(c.done)
	})
	c.wg.Wait()
	close(c.events)
}

// IsConnected returns whether the channel is connected.
func (c *WebSocket) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil
}

// SendMessage emits a user_message event carrying the given text.
func (c *WebSocket) SendMessage(text string) error {
	return c.Emit(protocol.Event{
		Name: protocol.EventUserMessage,
		Data: text,
	})
}

// ChangeLanguage emits a change_language event carrying the given
// language code.
func (c *WebSocket) ChangeLanguage(code string) error {
	return c.Emit(protocol.Event{
		Name: protocol.EventChangeLanguage,
		Lang: code,
	})
}

// ToggleListening emits a toggle_listening event.
func (c *WebSocket) ToggleListening() error {
	return c.Emit(protocol.Event{Name: protocol.EventToggleListening})
}

// Events returns the channel on which inbound events are delivered.
func (c *WebSocket) Events() <-chan protocol.Event {
	return c.events
}

// Emit sends a named event to the server.
func (c *WebSocket) Emit(ev protocol.Event) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected to server")
	}

	data, err := ev.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}

	return nil
}

// receiveEvents continuously receives events from the server.
func (c *WebSocket) receiveEvents() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		default:
			c.mu.RLock()
			conn := c.conn
			c.mu.RUnlock()

			if conn == nil {
				return
			}

			messageType, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
					c.logger.Warn("websocket read failed", zap.Error(err))
				}
				return
			}

			if messageType != websocket.TextMessage {
				continue
			}

			var ev protocol.Event
			if err := ev.Decode(data); err != nil {
				c.logger.Warn("dropping undecodable event", zap.Error(err))
				continue
			}

			select {
			case c.events <- ev:
			case <-c.done:
				return
			}
		}
	}
}
