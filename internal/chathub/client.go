package chathub

import "chatapp/backend/internal/models"

// Client is the interface for one live session on any transport
// (WebSocket, Telegram bridge). It abstracts the underlying connection
// so the hub can manage different client types uniformly.
type Client interface {
	// GetUserID returns the identity the session is currently bound to.
	GetUserID() string
	// IsAuthenticated reports whether the bound identity was verified
	// rather than synthesized.
	IsAuthenticated() bool
	// Rebind replaces the session's identity. Called by the registry
	// when a connect frame upgrades or downgrades the session; never
	// call it directly, the registry keys sessions by identity.
	Rebind(userID string, authenticated bool)

	// GetSendChannel returns the channel the hub writes outbound
	// envelopes to. It is a send-only channel.
	GetSendChannel() chan<- models.Envelope

	// Subscribe adds a shared topic to the session's subscription set.
	Subscribe(topic string)
	// IsSubscribed reports whether the session subscribed to topic.
	IsSubscribed(topic string) bool

	// Run starts the client's pumps for inbound and outbound traffic.
	Run()
	// Close shuts down the client's send channel and connection.
	Close()
}
