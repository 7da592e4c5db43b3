package models

import (
	"github.com/lib/pq" // Required for pq.StringArray
)

// User represents a chat user profile, keyed by the identity the
// external verifier reports.
type User struct {
	// UID is the verified identity of the user (primary key).
	UID string `gorm:"primaryKey" json:"uid"`
	// Email is the account email reported by the identity provider.
	Email string `gorm:"index" json:"email"`
	// Name is the display name shown in notifications and client UIs.
	Name string `json:"name"`
	// PhotoURL is an optional avatar URL.
	PhotoURL string `json:"photoURL"`
	// Provider names the sign-in provider (e.g. "google.com").
	Provider string `json:"provider"`
	// DeviceTokens holds the push-notification device registrations.
	DeviceTokens pq.StringArray `gorm:"type:text[]" json:"-"`
	// TelegramChatID links the user to a Telegram chat, if the user
	// attached the bot bridge. Zero means not linked.
	TelegramChatID int64 `gorm:"index" json:"-"`
}
