package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	errs "github.com/verisponsor/verisponsor/errors"
	"github.com/verisponsor/verisponsor/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsClient struct {
	conn   *websocket.Conn
	send   chan []byte
	userID uuid.UUID
}

// Hub fans new messages out to the receivers' live connections. A user may
// hold several connections (multiple tabs).
type Hub struct {
	mu      sync.Mutex
	clients map[uuid.UUID][]*wsClient
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID][]*wsClient)}
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.userID] = append(h.clients[c.userID], c)
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[c.userID]
	for i, existing := range conns {
		if existing == c {
			h.clients[c.userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[c.userID]) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
}

// NotifyNewMessage implements services.MessageNotifier. Delivery is best
// effort: a slow or absent receiver never blocks the send path.
func (h *Hub) NotifyNewMessage(receiverID uuid.UUID, msg *models.Message) {
	payload, err := json.Marshal(gin.H{"type": "new_message", "message": msg})
	if err != nil {
		log.Printf("ws marshal error: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients[receiverID] {
		select {
		case c.send <- payload:
		default:
		}
	}
}

func (s *Server) handleWebsocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("ws upgrade error: %v", err)
			return
		}

		client := &wsClient{
			conn:   conn,
			send:   make(chan []byte, 16),
			userID: userID,
		}
		s.Hub.register(client)

		go client.writePump()
		go client.readPump(s.Hub)
	}
}

func (c *wsClient) readPump(hub *Hub) {
	defer func() {
		hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		// the socket is push-only; inbound frames are drained for
		// keepalive and close detection
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
