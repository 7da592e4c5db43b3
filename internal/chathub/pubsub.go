package chathub

import (
	"encoding/json"
	"log"

	"chatapp/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// StartPubSubListener consumes the broker subscription and routes every
// published envelope to the local sessions it addresses. All delivery,
// including same-instance delivery, flows through the broker so every
// server instance sees the same traffic.
func (m *ManagerService) StartPubSubListener(pubsub *redis.PubSub) {
	go func() {
		for msg := range pubsub.Channel() {
			m.Route(models.Envelope{
				Dest: msg.Channel,
				Body: json.RawMessage(msg.Payload),
			})
		}
		log.Println("PubSub listener stopped")
	}()
}

// Route delivers an envelope to the local sessions its destination
// addresses: every session of the identity for user queues, every
// subscribed session for topics.
func (m *ManagerService) Route(env models.Envelope) {
	if uid, ok := models.UserOfDestination(env.Dest); ok {
		for _, c := range m.Registry.SessionsFor(uid) {
			m.deliver(c, env)
		}
		return
	}

	if models.IsTopicDestination(env.Dest) {
		for _, c := range m.Registry.All() {
			if c.IsSubscribed(env.Dest) {
				m.deliver(c, env)
			}
		}
		return
	}

	log.Printf("Dropping envelope for unroutable destination %q", env.Dest)
}

// deliver hands an envelope to one session without blocking. A session
// whose send buffer is full is dropped as a slow consumer.
func (m *ManagerService) deliver(c Client, env models.Envelope) {
	select {
	case c.GetSendChannel() <- env:
	default:
		log.Printf("Dropping slow session for %s", c.GetUserID())
		m.Registry.Remove(c)
		c.Close()
	}
}
