// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event is one admin-console notification.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventReservationCreated = "reservation.created"
	EventFormSubmitted      = "form.submitted"
)

// Hub tracks the connected admin-console WebSocket clients.
type Hub struct {
	// clients maps user uid to connection.
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		log:     log,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(userUID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userUID] = conn
	h.log.WithField("uid", userUID).Info("WebSocket client registered")
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(userUID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userUID]; ok {
		delete(h.clients, userUID)
		h.log.WithField("uid", userUID).Info("WebSocket client unregistered")
	}
}

// Broadcast sends an event to every connected client. Send errors are logged
// and skipped; a dead connection is cleaned up on its next read.
func (h *Hub) Broadcast(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).Error("failed to encode websocket event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for uid, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.log.WithField("uid", uid).WithError(err).Warn("failed to push websocket event")
		}
	}
}
