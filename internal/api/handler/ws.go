package handler

import (
	"errors"
	"net/http"

	"chatapp/backend/internal/auth"
	"chatapp/backend/internal/chathub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket authenticates a connection attempt and upgrades it.
// An invalid credential refuses the connection outright; a missing one
// admits the session anonymously.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	identity, err := h.Authenticator.Authenticate(c.Request)
	if err != nil {
		if errors.Is(err, auth.ErrCredentialInvalid) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := chathub.NewWebSocketClient(h.Hub, conn, identity.UserID, identity.Authenticated)
	h.Hub.Register(client)
}
