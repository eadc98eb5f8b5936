package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"vehicle-rental-api-server/internal/auth"
	"vehicle-rental-api-server/internal/models"
	"vehicle-rental-api-server/internal/socket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The storefront and admin console run on other origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocketHandler streams admin-console events (new reservations, new
// contact forms) to connected admins.
type WebSocketHandler struct {
	Hub         *socket.Hub
	AuthService *auth.Service
}

// ServeWs upgrades the connection. Browsers cannot set headers on WebSocket
// requests, so the token travels as a query parameter.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter is required"})
		return
	}
	claims, err := h.AuthService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	if claims.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.Hub.Register(claims.UserUID, conn)
	go func() {
		defer func() {
			h.Hub.Unregister(claims.UserUID)
			conn.Close()
		}()
		for {
			// Drain control/client frames; exit when the peer goes away.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
