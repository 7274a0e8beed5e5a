package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/foodlink-dev/foodlink/internal/models"
	"github.com/foodlink-dev/foodlink/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Listing lifecycle event types pushed over the feed.
const (
	ListingCreated  = "created"
	ListingClaimed  = "claimed"
	ListingAccepted = "accepted"
)

// listingClient serializes writes to one connection; gorilla/websocket
// forbids concurrent writers, and broadcasts and pings come from different
// goroutines.
type listingClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *listingClient) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *listingClient) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

var (
	listingClients   = make(map[*listingClient]bool)
	listingClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type listingEvent struct {
	Type     string `json:"type"`
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Quantity string `json:"quantity"`
	Status   string `json:"status"`
}

// BroadcastListingEvent pushes a donation lifecycle event to every connected
// dashboard so clients refresh without polling.
func BroadcastListingEvent(eventType string, donation models.Donation) {
	listingClientsMu.RLock()
	if len(listingClients) == 0 {
		listingClientsMu.RUnlock()
		return
	}

	clients := make([]*listingClient, 0, len(listingClients))
	for client := range listingClients {
		clients = append(clients, client)
	}
	listingClientsMu.RUnlock()

	event := listingEvent{
		Type:     eventType,
		ID:       donation.ID,
		Title:    donation.Title,
		Quantity: donation.Quantity,
		Status:   donation.Status,
	}

	for _, client := range clients {
		if err := client.writeJSON(event); err != nil {
			log.Printf("Failed to broadcast listing event: %v", err)
			listingClientsMu.Lock()
			delete(listingClients, client)
			listingClientsMu.Unlock()
			client.conn.Close()
		}
	}
}

func ListingsFeed(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	client := &listingClient{conn: conn}

	listingClientsMu.Lock()
	listingClients[client] = true
	listingClientsMu.Unlock()

	done := make(chan struct{})

	defer func() {
		close(done)

		listingClientsMu.Lock()
		delete(listingClients, client)
		listingClientsMu.Unlock()
		conn.Close()

		log.Println("Listings feed connection closed")
	}()

	err = client.writeJSON(map[string]string{
		"type":    "connected",
		"message": "Listings feed connection established",
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := client.ping(); err != nil {
					log.Printf("Ping failed: %v", err)
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline: %v", err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Listings feed error: %v", err)
			}
			break
		}
	}
}
