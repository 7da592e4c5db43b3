package chathub

import (
	"errors"
	"fmt"
	"log"
	"time"

	"chatapp/backend/internal/models"
	"chatapp/backend/internal/notify"
	"chatapp/backend/internal/storage"
)

var (
	// ErrValidation rejects a message missing sender, receiver, or body.
	// Nothing is persisted and nothing is delivered.
	ErrValidation = errors.New("message is missing required fields")
	// ErrPersist means the store refused the message. No fan-out and no
	// notification happen for a message that was not durably recorded.
	ErrPersist = errors.New("message could not be persisted")
)

// RelayService persists inbound chat messages and fans them out to
// their destinations. Fan-out is best-effort, at-most-once per target,
// and each target is isolated: one failing target never blocks the
// others and never rolls back persistence.
type RelayService struct {
	Storage  storage.Storage
	Notifier notify.Notifier
}

func NewRelayService(s storage.Storage, n notify.Notifier) *RelayService {
	return &RelayService{Storage: s, Notifier: n}
}

// Relay validates, persists, and fans out one chat message, then
// triggers the push notification without awaiting it. The returned
// message carries the store-assigned ID; it is returned whenever
// persistence succeeded, regardless of fan-out outcomes.
//
// Every delivered copy carries the same message ID, so clients
// subscribed to more than one matching destination can dedup by ID.
func (r *RelayService) Relay(senderID, receiverID, body, senderName string) (*models.Message, error) {
	if senderID == "" || receiverID == "" || body == "" {
		log.Println("Invalid chat message data: missing required fields")
		return nil, ErrValidation
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		CreatedAt:  time.Now(),
	}

	if err := r.Storage.SaveMessage(msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersist, err)
	}
	log.Printf("Message saved with ID: %d", msg.ID)

	r.fanOut(msg)

	go r.Notifier.Send(receiverID, senderID, body, senderName)

	return msg, nil
}

// fanOut delivers the persisted message to its five destinations in
// fixed order: receiver direct, sender direct, pairwise topic, sender
// topic, receiver topic.
func (r *RelayService) fanOut(msg *models.Message) {
	if err := r.Storage.PublishToUser(msg.ReceiverID, models.QueueMessages, msg); err != nil {
		log.Printf("WARNING: Failed to deliver to receiver queue %s: %v", msg.ReceiverID, err)
	}
	if err := r.Storage.PublishToUser(msg.SenderID, models.QueueMessages, msg); err != nil {
		log.Printf("WARNING: Failed to deliver to sender queue %s: %v", msg.SenderID, err)
	}

	key := models.ConversationKey(msg.SenderID, msg.ReceiverID)
	if err := r.Storage.PublishToTopic(models.ChatTopic(key), msg); err != nil {
		log.Printf("WARNING: Failed to deliver to conversation topic %s: %v", key, err)
	}
	if err := r.Storage.PublishToTopic(models.ChatTopic(msg.SenderID), msg); err != nil {
		log.Printf("WARNING: Failed to deliver to sender topic %s: %v", msg.SenderID, err)
	}
	if err := r.Storage.PublishToTopic(models.ChatTopic(msg.ReceiverID), msg); err != nil {
		log.Printf("WARNING: Failed to deliver to receiver topic %s: %v", msg.ReceiverID, err)
	}
}
