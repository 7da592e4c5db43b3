package chathub

import (
	"log"
	"strconv"
	"time"

	"chatapp/backend/internal/models"
	"chatapp/backend/internal/storage"
)

// Broadcaster relays ephemeral signals: typing indicators and
// presence/status events. Nothing here is persisted or retried, and
// malformed signals are dropped with only a log line. There is no
// rejection reply channel for ephemeral traffic.
type Broadcaster struct {
	Storage storage.Storage
}

func NewBroadcaster(s storage.Storage) *Broadcaster {
	return &Broadcaster{Storage: s}
}

func nowMillis() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// Typing sends a typing indicator to the receiver's private queue only.
func (b *Broadcaster) Typing(senderID, receiverID, isTyping string) {
	if senderID == "" || receiverID == "" {
		log.Println("Invalid typing indicator data")
		return
	}
	if isTyping == "" {
		isTyping = "false"
	}

	payload := map[string]string{
		"senderId": senderID,
		"isTyping": isTyping,
	}
	if err := b.Storage.PublishToUser(receiverID, models.QueueTyping, payload); err != nil {
		log.Printf("WARNING: Failed to send typing indicator to %s: %v", receiverID, err)
		return
	}
	log.Printf("Typing indicator sent from %s to %s", senderID, receiverID)
}

// Status broadcasts a status change on the global status topic and
// replies with the same payload on the caller's private status queue.
func (b *Broadcaster) Status(userID, status string) {
	if userID == "" {
		log.Println("Invalid status update data")
		return
	}

	payload := map[string]string{
		"userId":    userID,
		"status":    status,
		"timestamp": nowMillis(),
	}
	if err := b.Storage.PublishToTopic(models.StatusTopic, payload); err != nil {
		log.Printf("WARNING: Failed to broadcast status for %s: %v", userID, err)
	}
	if err := b.Storage.PublishToUser(userID, models.QueueStatus, payload); err != nil {
		log.Printf("WARNING: Failed to send status reply to %s: %v", userID, err)
	}
	log.Printf("User %s status changed to %s", userID, status)
}

// JoinLeave broadcasts a join or leave action on the status topic.
func (b *Broadcaster) JoinLeave(userID, action string) {
	if userID == "" || action == "" {
		log.Println("Invalid join/leave data")
		return
	}

	payload := map[string]string{
		"userId":    userID,
		"action":    action,
		"timestamp": nowMillis(),
	}
	if err := b.Storage.PublishToTopic(models.StatusTopic, payload); err != nil {
		log.Printf("WARNING: Failed to broadcast %s for %s: %v", action, userID, err)
		return
	}
	log.Printf("User %s %s", userID, action)
}

// Connected sends a welcome payload to the user's system queue and
// broadcasts the user coming online.
func (b *Broadcaster) Connected(userID string) {
	if userID == "" {
		return
	}

	welcome := map[string]string{
		"type":      "welcome",
		"message":   "Connection established",
		"timestamp": nowMillis(),
	}
	if err := b.Storage.PublishToUser(userID, models.QueueSystem, welcome); err != nil {
		log.Printf("WARNING: Failed to send welcome to %s: %v", userID, err)
	}

	online := map[string]string{
		"userId":    userID,
		"status":    "online",
		"action":    "connect",
		"timestamp": nowMillis(),
	}
	if err := b.Storage.PublishToTopic(models.StatusTopic, online); err != nil {
		log.Printf("WARNING: Failed to broadcast online status for %s: %v", userID, err)
	}
	log.Printf("User connected: %s", userID)
}

// Disconnected broadcasts the user going offline.
func (b *Broadcaster) Disconnected(userID string) {
	if userID == "" {
		return
	}

	offline := map[string]string{
		"userId":    userID,
		"status":    "offline",
		"action":    "disconnect",
		"timestamp": nowMillis(),
	}
	if err := b.Storage.PublishToTopic(models.StatusTopic, offline); err != nil {
		log.Printf("WARNING: Failed to broadcast offline status for %s: %v", userID, err)
	}
	log.Printf("User disconnected: %s", userID)
}

// Test echoes a diagnostic payload back on the caller's test queue.
func (b *Broadcaster) Test(userID, message, principal string) {
	if userID == "" {
		return
	}
	if principal == "" {
		principal = "anonymous"
	}

	payload := map[string]string{
		"echo":      "Test successful: " + message,
		"timestamp": nowMillis(),
		"principal": principal,
	}
	if err := b.Storage.PublishToUser(userID, models.QueueTest, payload); err != nil {
		log.Printf("WARNING: Failed to send test echo to %s: %v", userID, err)
	}
}
