package models

import "time"

// Message is a persisted chat message exchanged between two users.
// The ID is assigned by the database on insert; CreatedAt is assigned by
// the relay before the insert so ordering does not depend on storage
// latency.
type Message struct {
	// ID is the store-assigned primary key of the message.
	ID uint `gorm:"primaryKey" json:"id"`
	// SenderID is the identity that sent the message.
	SenderID string `gorm:"type:text;not null;index:idx_sender" json:"senderId"`
	// ReceiverID is the identity the message is addressed to.
	ReceiverID string `gorm:"type:text;not null;index:idx_receiver" json:"receiverId"`
	// Body is the text content of the message.
	Body string `gorm:"type:text;not null" json:"message"`
	// CreatedAt is set by the relay at creation time, not by the store.
	CreatedAt time.Time `gorm:"index" json:"timestamp"`
}

// ConversationKey derives the stable pairing key for two identities:
// the lexicographically smaller one first, joined with an underscore.
// Commutative: ConversationKey(a, b) == ConversationKey(b, a).
func ConversationKey(a, b string) string {
	if a < b {
		return a + "_" + b
	}
	return b + "_" + a
}
