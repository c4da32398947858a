// Package websocket pushes live countdown state for catalog listings:
// periodic remaining-time updates plus discrete events whenever a listing
// crosses a lifecycle boundary.
package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bidora/storefront-server/internal/catalog"
	"github.com/bidora/storefront-server/internal/clock"
	"github.com/bidora/storefront-server/internal/countdown"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

type ListingsHandler struct {
	catalog        catalog.Service
	clock          clock.Clock
	threshold      time.Duration
	interval       time.Duration
	maxMessageSize int64

	clientLock sync.Mutex
	clients    map[*Client]bool

	phaseLock  sync.Mutex
	lastPhases map[string]countdown.Phase

	stop chan struct{}
	once sync.Once
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewListingsHandler wires the live countdown feed to a catalog. The
// threshold matches the classifier's ending-soon window; the interval drives
// the broadcast tick; maxMessageSize caps incoming frames (0 means no cap).
func NewListingsHandler(cat catalog.Service, clk clock.Clock, threshold, interval time.Duration, maxMessageSize int64) *ListingsHandler {
	if interval <= 0 {
		interval = time.Second
	}
	return &ListingsHandler{
		catalog:        cat,
		clock:          clk,
		threshold:      threshold,
		interval:       interval,
		maxMessageSize: maxMessageSize,
		clients:        make(map[*Client]bool),
		lastPhases:     make(map[string]countdown.Phase),
		stop:           make(chan struct{}),
	}
}

// HandleListings upgrades the HTTP request to a WebSocket connection.
func (h *ListingsHandler) HandleListings(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Infof("Failed to upgrade connection: %v", err)
		http.Error(w, "Failed to establish connection", http.StatusInternalServerError)
		return
	}
	if h.maxMessageSize > 0 {
		conn.SetReadLimit(h.maxMessageSize)
	}

	client := &Client{
		ID:          uuid.NewString(),
		Conn:        conn,
		Send:        make(chan []byte, 8),
		RateLimiter: rate.NewLimiter(1, 3),
	}

	h.clientLock.Lock()
	h.clients[client] = true
	h.clientLock.Unlock()

	go func() {
		client.ReadMessages(h.HandleMessage)
		h.removeClient(client)
	}()
	go client.WriteMessages()

	// New connections get the current state immediately instead of waiting
	// for the next tick.
	h.sendSnapshot(client)
}

// StartPeriodicCheck launches the broadcast loop. Every tick the handler
// reclassifies the catalog from the injected clock and pushes updates; phase
// transitions produce their own event.
func (h *ListingsHandler) StartPeriodicCheck() {
	go func() {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				h.broadcastCountdowns()
			case <-h.stop:
				return
			}
		}
	}()
}

// Stop terminates the broadcast loop.
func (h *ListingsHandler) Stop() {
	h.once.Do(func() { close(h.stop) })
}

func (h *ListingsHandler) broadcastCountdowns() {
	listings, err := h.catalog.Listings(context.Background())
	if err != nil {
		log.Error("Error loading listings for broadcast: ", err)
		return
	}

	now := h.clock.Now()
	for _, listing := range listings {
		c, err := countdown.Classify(now, listing, h.threshold)
		if err != nil {
			// Bad records are dropped from the feed, same as the views.
			continue
		}

		update := newCountdownUpdate(listing, c)
		h.broadcastFiltered(listing.ID, mustMarshal(Message{Type: "countdown", Data: update}))

		h.phaseLock.Lock()
		previous, seen := h.lastPhases[listing.ID]
		h.lastPhases[listing.ID] = c.Phase
		h.phaseLock.Unlock()

		if seen && previous != c.Phase {
			log.Debugf("Listing %s moved %s -> %s", listing.ID, previous, c.Phase)
			h.broadcastFiltered(listing.ID, mustMarshal(Message{
				Type: "phase_change",
				Data: phaseChange{ListingID: listing.ID, From: previous, To: c.Phase},
			}))
		}
	}
}

// broadcastFiltered sends a message to clients following the listing.
// Clients that are disconnecting or cannot keep up are dropped.
func (h *ListingsHandler) broadcastFiltered(listingID string, message []byte) {
	h.clientLock.Lock()
	defer h.clientLock.Unlock()

	for client := range h.clients {
		if !client.Follows(listingID) {
			continue
		}
		if !client.trySend(message) {
			delete(h.clients, client)
			client.Disconnect(nil)
		}
	}
}

func (h *ListingsHandler) removeClient(c *Client) {
	h.clientLock.Lock()
	delete(h.clients, c)
	h.clientLock.Unlock()
}
