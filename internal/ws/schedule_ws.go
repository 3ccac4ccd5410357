package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// FirehoseKey — псевдоключ подписки на события всех поездов сразу.
const FirehoseKey = "all"

// Hub хранит подключения клиентов, сгруппированные по trainID.
type Hub struct {
	// Для каждого поезда (trainID) храним множество подключений.
	clients map[string]map[*Client]bool
	// Канал для регистрации нового клиента.
	register chan *Client
	// Канал для удаления клиента.
	unregister chan *Client
	// Канал для трансляции сообщений по конкретному поезду.
	broadcast chan BroadcastMessage
	// Mutex для защиты карты клиентов.
	mu sync.RWMutex
}

// BroadcastMessage представляет сообщение для рассылки подписчикам поезда.
type BroadcastMessage struct {
	TrainID string
	Message []byte
}

// WSMessage — событие об изменении расписания, уходящее подписчикам.
type WSMessage struct {
	EventType string                 `json:"event_type"`
	TrainID   string                 `json:"train_id"`
	Data      map[string]interface{} `json:"data"`
}

// Создаем глобальный экземпляр хаба.
var HubInstance = NewHub()

// NewHub создает новый Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan BroadcastMessage),
	}
}

// Run запускает цикл обработки каналов хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.TrainID] == nil {
				h.clients[client.TrainID] = make(map[*Client]bool)
			}
			h.clients[client.TrainID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.TrainID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.clients, client.TrainID)
					}
				}
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			h.deliver(message.TrainID, message.Message)
			if message.TrainID != FirehoseKey {
				h.deliver(FirehoseKey, message.Message)
			}
			h.mu.Unlock()
		}
	}
}

// deliver рассылает сообщение всем клиентам ключа; вызывается под блокировкой.
func (h *Hub) deliver(key string, message []byte) {
	clients, ok := h.clients[key]
	if !ok {
		return
	}
	for client := range clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(clients, client)
		}
	}
}

// Client представляет одно подключение через WebSocket.
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	TrainID string
}

// readPump читает сообщения из WebSocket-соединения.
// Входящие сообщения не обрабатываются, отслеживается только разрыв соединения.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writePump отправляет сообщения клиенту из канала Send.
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Канал закрыт.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			// Отправка ping-сообщения для поддержания соединения.
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Настраиваем апгрейдер для WebSocket с разрешением всех источников.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Hub) serveWS(c *gin.Context, trainID string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.Error(c.Writer, "Ошибка обновления до WebSocket", http.StatusInternalServerError)
		return
	}
	client := &Client{
		Hub:     h,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		TrainID: trainID,
	}
	h.register <- client

	go client.writePump()
	client.readPump()
}

// TrainWebSocketHandler подписывает клиента на события расписаний одного поезда.
// URL-пример: /api/trains/{id}/ws
func TrainWebSocketHandler(c *gin.Context) {
	HubInstance.serveWS(c, c.Param("id"))
}

// ScheduleFeedHandler подписывает клиента на события всех поездов.
// URL-пример: /api/schedules/ws
func ScheduleFeedHandler(c *gin.Context) {
	HubInstance.serveWS(c, FirehoseKey)
}

// BroadcastWSMessage сериализует событие и отправляет его в хаб.
func (h *Hub) BroadcastWSMessage(msg WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Println("Ошибка сериализации WS сообщения:", err)
		return
	}
	h.broadcast <- BroadcastMessage{TrainID: msg.TrainID, Message: payload}
}

// NotifyScheduleEvent реализует интерфейс Notifier сервиса расписаний:
// события уходят подписчикам поезда и общей ленте после коммита транзакции.
func (h *Hub) NotifyScheduleEvent(trainID uint, eventType string, data map[string]interface{}) {
	h.BroadcastWSMessage(WSMessage{
		EventType: eventType,
		TrainID:   strconv.FormatUint(uint64(trainID), 10),
		Data:      data,
	})
}
