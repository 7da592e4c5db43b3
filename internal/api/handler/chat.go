package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"chatapp/backend/internal/chathub"

	"github.com/gin-gonic/gin"
)

// GetChatHistory returns the full conversation between two users,
// oldest first.
func (h *Handler) GetChatHistory(c *gin.Context) {
	user1 := c.Query("user1")
	user2 := c.Query("user2")
	if user1 == "" || user2 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user1 and user2 are required"})
		return
	}

	messages, err := h.Storage.GetMessagesBetween(user1, user2)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat history"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetRecentChatHistory returns the most recent messages between two
// users, newest first, capped by the recent-history limit.
func (h *Handler) GetRecentChatHistory(c *gin.Context) {
	user1 := c.Query("user1")
	user2 := c.Query("user2")
	if user1 == "" || user2 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user1 and user2 are required"})
		return
	}

	messages, err := h.Storage.GetRecentMessagesBetween(user1, user2)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent history"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

type sendMessageRequest struct {
	SenderID   string `json:"senderId" binding:"required"`
	ReceiverID string `json:"receiverId" binding:"required"`
	Message    string `json:"message" binding:"required"`
	SenderName string `json:"senderName"`
}

// SendMessage relays a chat message submitted over REST. It runs the
// same relay path as websocket chat frames.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid message data: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	msg, err := h.Relay.Relay(req.SenderID, req.ReceiverID, req.Message, req.SenderName)
	if err != nil {
		if errors.Is(err, chathub.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}
	c.JSON(http.StatusOK, msg)
}

// GetMessagesBySender returns all messages sent by a user, newest first.
func (h *Handler) GetMessagesBySender(c *gin.Context) {
	messages, err := h.Storage.GetMessagesBySender(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetMessagesByReceiver returns all messages received by a user, newest
// first.
func (h *Handler) GetMessagesByReceiver(c *gin.Context) {
	messages, err := h.Storage.GetMessagesByReceiver(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "chat-api",
		"timestamp": strconv.FormatInt(time.Now().UnixMilli(), 10),
	})
}

// GetSystemInfo reports static service metadata.
func (h *Handler) GetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":   "ChatApp Backend",
		"version":   "1.0.0",
		"status":    "running",
		"database":  "PostgreSQL",
		"websocket": "enabled",
		"sessions":  h.Hub.Registry.Count(),
		"timestamp": strconv.FormatInt(time.Now().UnixMilli(), 10),
	})
}
