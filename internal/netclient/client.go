package netclient

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 16384
)

// ConnectedMsg is sent when the server welcomes this spectator.
type ConnectedMsg struct {
	SpectatorID string
}

// SnapshotMsg carries a session snapshot received from the server.
type SnapshotMsg struct {
	Snapshot game.Snapshot
}

// DisconnectedMsg is sent when the WebSocket connection is lost.
type DisconnectedMsg struct {
	Err error
}

// Sender is the part of *tea.Program the client needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Client is a read-only WebSocket connection to a broadcasting game.
type Client struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	program Sender
	done    chan struct{}
	closed  bool
}

// New creates a Client connected to the given server URL.
func New(serverURL string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", serverURL, err)
	}

	return &Client{
		conn: conn,
		done: make(chan struct{}),
	}, nil
}

// SetProgram sets the bubbletea program so the client can send messages to it.
func (c *Client) SetProgram(p Sender) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.program = p
}

// Start launches the read and ping pumps.
func (c *Client) Start() {
	go c.pingPump()
	go c.readPump()
}

// Close shuts down the client connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

func (c *Client) send(msg tea.Msg) {
	c.mu.Lock()
	p := c.program
	c.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// readPump reads messages from the WebSocket and sends them to the bubbletea program.
func (c *Client) readPump() {
	var readErr error
	defer func() {
		c.send(DisconnectedMsg{Err: readErr})
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("readPump error: %v", err)
				readErr = err
			}
			return
		}

		msg, err := decode(message)
		if err != nil {
			log.Printf("client unmarshal error: %v", err)
			continue
		}
		if msg != nil {
			c.send(msg)
		}
	}
}

// decode turns a wire envelope into a tea.Msg. Unknown types yield nil.
func decode(message []byte) (tea.Msg, error) {
	var env struct {
		Type    protocol.MessageType `json:"type"`
		Payload json.RawMessage      `json:"payload"`
	}
	if err := json.Unmarshal(message, &env); err != nil {
		return nil, err
	}

	switch env.Type {
	case protocol.MsgWelcome:
		var payload protocol.WelcomePayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return nil, fmt.Errorf("welcome payload: %w", err)
		}
		return ConnectedMsg{SpectatorID: payload.SpectatorID}, nil
	case protocol.MsgSnapshot:
		var payload protocol.SnapshotPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return nil, fmt.Errorf("snapshot payload: %w", err)
		}
		return SnapshotMsg{Snapshot: payload.Snapshot()}, nil
	}
	return nil, nil
}

// pingPump keeps the connection alive until Close is called.
func (c *Client) pingPump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.mu.Unlock()
			if err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
