package websocket

import (
	"context"
	"encoding/json"

	"github.com/bidora/storefront-server/internal/countdown"
	"github.com/bidora/storefront-server/pkg/errors"
	"github.com/bidora/storefront-server/pkg/types"
	"github.com/charmbracelet/log"
)

type Message struct {
	Type string `json:"type"` // Type of the message (e.g., "subscribe", "countdown")
	Data any    `json:"data,omitempty"`
}

// countdownUpdate is the per-listing payload pushed on every tick.
type countdownUpdate struct {
	ListingID  string          `json:"listingId"`
	Phase      countdown.Phase `json:"phase"`
	TimeLeft   string          `json:"timeLeft"`
	Price      float64         `json:"price"`
	PriceLabel string          `json:"priceLabel"`
	BidsCount  int             `json:"bidsCount"`
}

type phaseChange struct {
	ListingID string          `json:"listingId"`
	From      countdown.Phase `json:"from"`
	To        countdown.Phase `json:"to"`
}

func newCountdownUpdate(listing types.Listing, c countdown.Classification) countdownUpdate {
	price, label := listing.EffectivePrice()
	return countdownUpdate{
		ListingID:  listing.ID,
		Phase:      c.Phase,
		TimeLeft:   c.Display(countdown.Fine),
		Price:      price,
		PriceLabel: label,
		BidsCount:  listing.BidsCount,
	}
}

func mustMarshal(msg Message) []byte {
	out, err := json.Marshal(msg)
	if err != nil {
		log.Error("Error marshalling message: ", err)
		return []byte(`{"type":"error","message":"internal server error"}`)
	}
	return out
}

// ParseMessage validates and parses incoming messages.
func ParseMessage(rawMessage []byte) (*incomingMessage, error) {
	var msg incomingMessage
	err := json.Unmarshal(rawMessage, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

type incomingMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// HandleMessage routes the message based on its type.
func (h *ListingsHandler) HandleMessage(client *Client, rawMessage []byte) {
	if !client.RateLimiter.Allow() {
		log.Warnf("Rate limit exceeded for client %s", client.ID)
		client.trySend([]byte(`{"type": "error", "message": "Rate limit exceeded"}`))
		return
	}

	msg, err := ParseMessage(rawMessage)
	if err != nil {
		log.Infof("Invalid message from client %s: %v", client.ID, err)
		client.trySend(errors.New(errors.ErrBadMessageFormat, "Invalid message format").ToJSON())
		return
	}

	switch msg.Type {
	case "subscribe":
		h.handleSubscribe(client, msg.Data)
	case "snapshot":
		h.sendSnapshot(client)
	default:
		log.Debugf("Unknown message type from client %s: %s", client.ID, msg.Type)
		client.trySend(errors.New(errors.ErrUnknownMessageType, "Unknown message type").ToJSON())
	}
}

func (h *ListingsHandler) handleSubscribe(client *Client, data json.RawMessage) {
	type subscribeMessage struct {
		ListingIDs []string `json:"listingIds"`
	}
	var sub subscribeMessage

	if len(data) > 0 {
		if err := json.Unmarshal(data, &sub); err != nil {
			client.trySend(errors.New(errors.ErrBadMessageFormat, "Invalid subscribe message").ToJSON())
			return
		}
	}

	client.Subscribe(sub.ListingIDs)
	log.Debugf("Client %s subscribed to %d listings", client.ID, len(sub.ListingIDs))
	h.sendSnapshot(client)
}

// sendSnapshot pushes the current countdown state for everything the client
// follows.
func (h *ListingsHandler) sendSnapshot(client *Client) {
	listings, err := h.catalog.Listings(context.Background())
	if err != nil {
		log.Error("Error loading listings for snapshot: ", err)
		client.trySend(errors.New(errors.ErrInternalServer, "Internal server error").ToJSON())
		return
	}

	now := h.clock.Now()
	updates := make([]countdownUpdate, 0, len(listings))
	for _, listing := range listings {
		if !client.Follows(listing.ID) {
			continue
		}
		c, err := countdown.Classify(now, listing, h.threshold)
		if err != nil {
			continue
		}
		updates = append(updates, newCountdownUpdate(listing, c))
	}

	client.trySend(mustMarshal(Message{Type: "snapshot", Data: updates}))
}
