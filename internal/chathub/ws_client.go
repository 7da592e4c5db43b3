package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"chatapp/backend/internal/config"
	"chatapp/backend/internal/models"

	"github.com/gorilla/websocket"
)

// WebSocketClient implements the chathub.Client interface over a
// gorilla websocket connection.
type WebSocketClient struct {
	Conn *websocket.Conn
	Hub  *ManagerService
	Send chan models.Envelope

	mu            sync.RWMutex
	userID        string
	authenticated bool
	topics        map[string]struct{}

	closeOnce sync.Once
}

func NewWebSocketClient(hub *ManagerService, conn *websocket.Conn, userID string, authenticated bool) *WebSocketClient {
	return &WebSocketClient{
		Conn:          conn,
		Hub:           hub,
		Send:          make(chan models.Envelope, config.SendBufferSize),
		userID:        userID,
		authenticated: authenticated,
		topics:        make(map[string]struct{}),
	}
}

func (c *WebSocketClient) GetUserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *WebSocketClient) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

func (c *WebSocketClient) Rebind(userID string, authenticated bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	c.authenticated = authenticated
}

func (c *WebSocketClient) GetSendChannel() chan<- models.Envelope { return c.Send }

func (c *WebSocketClient) Subscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics[topic] = struct{}{}
}

func (c *WebSocketClient) IsSubscribed(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.topics[topic]
	return ok
}

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the write pump. The read
// pump stops when the connection closes.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// readPump reads frames from the websocket and hands them to the hub
// inline, preserving per-connection arrival order.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var frame models.Frame
		if err := json.Unmarshal(message, &frame); err != nil {
			log.Printf("Error decoding frame from client %s: %v", c.GetUserID(), err)
			continue
		}

		c.Hub.HandleFrame(c, frame)
	}
}

// writePump writes envelopes from the Send channel to the websocket and
// keeps the connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(config.PingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				// Channel closed by the hub, close the WS connection.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(env)
			if err != nil {
				log.Printf("Error encoding envelope for client %s: %v", c.GetUserID(), err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			// Drain whatever else is queued into the same frame.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				extra, _ := json.Marshal(next)
				w.Write([]byte{'\n'})
				w.Write(extra)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
