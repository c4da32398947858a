package websocket

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

type Client struct {
	ID          string
	Conn        *websocket.Conn
	Send        chan []byte   // Channel for outgoing messages
	RateLimiter *rate.Limiter // Rate limiter to prevent spamming

	subscriptions map[string]bool // Listing ids this client follows; empty means all
	closed        bool            // Flag to check if the connection is closed
	mu            sync.Mutex      // Protects subscriptions and the closed flag
}

// Subscribe narrows the client's feed to the given listing ids. An empty set
// restores the follow-everything default.
func (c *Client) Subscribe(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(ids) == 0 {
		c.subscriptions = nil
		return
	}
	c.subscriptions = make(map[string]bool, len(ids))
	for _, id := range ids {
		c.subscriptions[id] = true
	}
}

// Follows reports whether the client wants updates for the listing.
func (c *Client) Follows(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.subscriptions) == 0 {
		return true
	}
	return c.subscriptions[id]
}

// trySend queues an outgoing message without blocking. It is the only send
// path for Send: Disconnect closes the channel under the same mutex, so a
// broadcast tick racing a disconnecting client can never send on a closed
// channel. Returns false when the client is disconnecting or its buffer is
// full; callers drop the client.
func (c *Client) trySend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

// ReadMessages listens for incoming messages from the client.
func (c *Client) ReadMessages(handleMessage func(*Client, []byte)) {
	defer func() {
		c.Disconnect(nil) // Ensure cleanup
		log.Debugf("Connection closed for client %s", c.ID)
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			log.Debugf("Error reading message from client %s: %v", c.ID, err)
			break
		}
		handleMessage(c, message)
	}
}

// WriteMessages sends outgoing messages to the client.
func (c *Client) WriteMessages() {
	defer func() {
		c.Conn.Close()
	}()

	for message := range c.Send {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}

		err := c.Conn.WriteMessage(websocket.TextMessage, message)
		c.mu.Unlock()

		if err != nil {
			log.Debugf("Error sending message to client %s: %v", c.ID, err)
			return
		}
	}
}

// Disconnect cleans up client resources.
func (c *Client) Disconnect(handler *ListingsHandler) {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
	c.mu.Unlock()

	if handler != nil {
		handler.removeClient(c)
	}

	c.Conn.Close()
	log.Debugf("Client %s cleanup completed", c.ID)
}
