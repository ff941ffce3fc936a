package websocket

import (
	"context"
	"crm-console-backend/internal/env"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

var (
	upgrader    websocket.Upgrader
	redisClient *redis.Client
)

func init() {
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	redisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.EventsRedisURL),
		Password: env.Get(env.EventsRedisPass),
		DB:       0,
	})
}

type Handler struct {
	hub         *Hub
	redisClient *redis.Client
}

func NewHandler(h *Hub) *Handler {
	return &Handler{
		hub:         h,
		redisClient: redisClient,
	}
}

// subscribeToRoomChannel relays events published on the room's Redis
// channel into the local hub, so mutations made on another server instance
// still reach this instance's websocket clients.
func (h *Handler) subscribeToRoomChannel(roomID string) {
	if _, exists := h.hub.Rooms[roomID]; !exists {
		log.Printf("room %s not found for subscription", roomID)
		return
	}

	subscriber := h.redisClient.Subscribe(context.Background(), eventChannel(roomID))
	defer subscriber.Close()

	ch := subscriber.Channel()
	for msg := range ch {
		h.hub.Broadcast <- &WSMessage{
			Content:   msg.Payload,
			RoomID:    roomID,
			Timestamp: time.Now().Unix(),
		}
	}
	log.Printf("unsubscribed from Redis channel: %s", roomID)
}

func (h *Handler) CreateRoom(id string) {
	if _, exists := h.hub.Rooms[id]; exists {
		return
	}

	h.hub.Rooms[id] = &Room{
		Id:      id,
		Clients: make(map[string]*WSClient),
	}
	setRooms(len(h.hub.Rooms))

	go h.subscribeToRoomChannel(id)
}

func (h *Handler) JoinRoom(w http.ResponseWriter, r *http.Request, roomId, userId string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cl := &WSClient{
		Conn:     conn,
		Message:  make(chan *WSMessage, 10),
		ID:       userId,
		RoomID:   roomId,
		done:     make(chan struct{}),
		isClosed: false,
	}

	h.hub.Register <- cl

	go cl.keepAlive()
	go cl.writeMessage()
	go cl.readMessage(h.hub)
}

// NotifyRoom delivers a payload to the local hub only. Cross-instance
// delivery goes through Publish.
func (h *Handler) NotifyRoom(roomID string, payload interface{}) {
	if roomID == "" {
		return
	}

	messageJSON, err := json.Marshal(payload)
	if err != nil {
		log.Printf("error marshaling room payload: %v", err)
		return
	}

	h.hub.Broadcast <- &WSMessage{
		Content:   string(messageJSON),
		RoomID:    roomID,
		Timestamp: time.Now().Unix(),
	}
}

func (h *Handler) SubscribeToRedisChannels() {
	for _, room := range h.hub.Rooms {
		go h.subscribeToRoomChannel(room.Id)
	}
}
