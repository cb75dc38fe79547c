package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 256
)

// Event описывает сообщение для подписчиков занятия
type Event struct {
	EventType string      `json:"event_type"`
	ClassID   uint        `json:"class_id"`
	Data      interface{} `json:"data"`
}

type broadcastMessage struct {
	classID uint
	payload []byte
}

// Hub хранит подключения клиентов, сгруппированные по id занятия.
type Hub struct {
	clients    map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMessage
	done       chan struct{}
	mu         sync.RWMutex
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMessage, sendBuffer),
		done:       make(chan struct{}),
		logger:     logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run обрабатывает каналы хаба до отмены ctx, затем закрывает все подключения.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for classID, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, classID)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.classID] == nil {
				h.clients[client.classID] = make(map[*Client]bool)
			}
			h.clients[client.classID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[msg.classID] {
				select {
				case client.send <- msg.payload:
				default:
					// клиент не успевает читать
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove вызывается под h.mu
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.classID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.classID)
	}
}

// Notify рассылает событие подписчикам занятия. Не блокируется: при переполненной
// очереди событие отбрасывается.
func (h *Hub) Notify(classID uint, eventType string, payload interface{}) {
	data, err := json.Marshal(Event{EventType: eventType, ClassID: classID, Data: payload})
	if err != nil {
		h.logger.Error("ws: failed to marshal event", slog.String("event_type", eventType), slog.Any("error", err))
		return
	}

	select {
	case h.broadcast <- broadcastMessage{classID: classID, payload: data}:
	default:
		h.logger.Warn("ws: broadcast queue full, event dropped",
			slog.Uint64("class_id", uint64(classID)),
			slog.String("event_type", eventType),
		)
	}
}

// ClientCount возвращает число подписчиков занятия
func (h *Hub) ClientCount(classID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[classID])
}

// Serve обновляет соединение до WebSocket и подписывает его на события занятия.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, classID uint) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("ws: upgrade failed", slog.Any("error", err))
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		classID: classID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}

// Client представляет одно подключение через WebSocket.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	classID uint
}

// readPump только отслеживает разрыв соединения, входящие сообщения игнорируются.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("ws: connection closed", slog.Any("error", err))
			}
			return
		}
	}
}

// writePump отправляет клиенту сообщения из канала send и пинги.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
