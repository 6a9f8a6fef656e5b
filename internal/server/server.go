// Package server implements the assistant server: it accepts console
// connections over WebSocket and runs inbound events through the
// assistant pipeline.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"voicehub/internal/assistant"
	"voicehub/pkg/protocol"
)

// Server accepts WebSocket connections on /ws and exchanges named
// events with each connected console.
type Server struct {
	address   string
	hub       *Hub
	assistant *assistant.Assistant
	logger    *zap.Logger
	quit      chan struct{}
	wg        sync.WaitGroup

	// mu guards listener and httpSrv, which Start assigns on the
	// serving goroutine while Addr and Stop read from others.
	mu       sync.Mutex
	listener net.Listener
	httpSrv  *http.Server
}

// New creates a Server listening on the given address once started.
func New(address string, a *assistant.Assistant, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		address:   address,
		hub:       NewHub(logger),
		assistant: a,
		logger:    logger,
		quit:      make(chan struct{}),
	}
}

// Start listens and serves until Stop is called.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleUpgrade)
	httpSrv := &http.Server{Handler: mux}

	s.mu.Lock()
	s.listener = listener
	s.httpSrv = httpSrv
	s.mu.Unlock()

	s.logger.Info("assistant server started", zap.String("address", listener.Addr().String()))

	if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// Stop shuts the server down and waits for client loops to finish.
func (s *Server) Stop() {
	close(s.quit)
	s.mu.Lock()
	httpSrv := s.httpSrv
	s.mu.Unlock()
	if httpSrv != nil {
		_ = httpSrv.Shutdown(context.Background())
	}
	s.hub.CloseAll()
	s.wg.Wait()
}

// Addr returns the listening address, or "" until Start has bound it.
// Safe to call while Start is running on another goroutine.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// ClientCount returns the number of connected consoles.
func (s *Server) ClientCount() int {
	return s.hub.ClientCount()
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		s.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	client := &Client{
		ID:       uuid.NewString(),
		Conn:     conn,
		Outgoing: make(chan []byte, 16),
	}
	s.hub.Register(client)
	s.logger.Info("console connected",
		zap.String("client", client.ID),
		zap.String("remote", conn.RemoteAddr().String()))

	// Queue the greeting before the read loop starts so it cannot race
	// with the close of the outgoing channel on disconnect.
	s.deliver(client, s.assistant.Greeting())

	s.wg.Add(2)
	go s.writeLoop(client)
	go s.readLoop(client)
}

// writeLoop drains the client's outgoing channel onto the wire.
func (s *Server) writeLoop(client *Client) {
	defer s.wg.Done()

	for data := range client.Outgoing {
		if err := wsutil.WriteServerText(client.Conn, data); err != nil {
			s.logger.Warn("failed to write to console",
				zap.String("client", client.ID), zap.Error(err))
			return
		}
	}
}

// readLoop decodes inbound events and dispatches them. It owns the
// client's lifecycle: on exit the client is unregistered and its
// outgoing channel closed.
func (s *Server) readLoop(client *Client) {
	defer s.wg.Done()
	defer func() {
		s.hub.Unregister(client.ID)
		close(client.Outgoing)
		client.Conn.Close()
		s.logger.Info("console disconnected", zap.String("client", client.ID))
	}()

	d := protocol.NewDispatcher()
	d.Bind(protocol.EventUserMessage, func(ev protocol.Event) {
		s.deliver(client, s.assistant.HandleMessage(ev.Data))
	})
	d.Bind(protocol.EventChangeLanguage, func(ev protocol.Event) {
		// Language is shared state, so the acknowledgement goes to
		// every console.
		s.broadcast(s.assistant.SetLanguage(ev.Lang))
	})
	d.Bind(protocol.EventToggleListening, func(ev protocol.Event) {
		s.broadcast(s.assistant.ToggleListening())
	})
	d.BindFallback(func(ev protocol.Event) {
		s.logger.Debug("unhandled event",
			zap.String("client", client.ID), zap.String("event", ev.Name))
	})

	for {
		data, err := wsutil.ReadClientText(client.Conn)
		if err != nil {
			select {
			case <-s.quit:
			default:
				s.logger.Debug("console read ended",
					zap.String("client", client.ID), zap.Error(err))
			}
			return
		}

		var ev protocol.Event
		if err := ev.Decode(data); err != nil {
			s.logger.Warn("dropping undecodable event",
				zap.String("client", client.ID), zap.Error(err))
			continue
		}
		d.Dispatch(ev)
	}
}

// deliver queues events for a single client, skipping on a full
// channel like Hub.Broadcast does.
func (s *Server) deliver(client *Client, events []protocol.Event) {
	for _, ev := range events {
		data, err := ev.Encode()
		if err != nil {
			s.logger.Warn("failed to encode event", zap.Error(err))
			continue
		}
		select {
		case client.Outgoing <- data:
		default:
			s.logger.Warn("client channel full, skipping",
				zap.String("client", client.ID))
		}
	}
}

func (s *Server) broadcast(events []protocol.Event) {
	for _, ev := range events {
		data, err := ev.Encode()
		if err != nil {
			s.logger.Warn("failed to encode event", zap.Error(err))
			continue
		}
		s.hub.Broadcast(data)
	}
}
