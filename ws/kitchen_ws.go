package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/mhusainh/ScanDine-sub000/entity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// KitchenHub pushes order events to connected kitchen displays. One
// shared feed, no rooms: every display sees every order.
type KitchenHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan OrderEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

type OrderEvent struct {
	Type  string        `json:"type"` // order_created | order_status_changed
	Order *entity.Order `json:"order"`
}

func NewKitchenHub() *KitchenHub {
	return &KitchenHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan OrderEvent, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *KitchenHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// OrderCreated and OrderStatusChanged are wired as OrderService
// callbacks; they run after the checkout/transition transaction
// commits.
func (h *KitchenHub) OrderCreated(o *entity.Order) {
	h.broadcast <- OrderEvent{Type: "order_created", Order: o}
}

func (h *KitchenHub) OrderStatusChanged(o *entity.Order) {
	h.broadcast <- OrderEvent{Type: "order_status_changed", Order: o}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/kitchen (behind staff auth middleware).
func (h *KitchenHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	h.register <- conn
	go h.drain(conn)
}

// drain keeps the read side alive so close frames are noticed; the
// kitchen feed is write-only.
func (h *KitchenHub) drain(conn *websocket.Conn) {
	defer func() { h.unregister <- conn }()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
