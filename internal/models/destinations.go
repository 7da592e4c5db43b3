package models

import "strings"

// Destination name layout, mirrored by the broker channel names:
//
//	user/<uid>/queue/<name>  private queue of one identity
//	topic/chat/<key>         chat topic (pairwise key or single identity)
//	topic/user-status        global presence topic
const (
	userPrefix  = "user/"
	topicPrefix = "topic/"

	// StatusTopic is the single global presence/status destination.
	StatusTopic = "topic/user-status"

	// Private queue names under user/<uid>/queue/.
	QueueMessages = "messages"
	QueueTyping   = "typing"
	QueueStatus   = "status"
	QueueSystem   = "system"
	QueueTest     = "test"
	QueueErrors   = "errors"
)

// UserQueue returns the private queue destination of one identity.
func UserQueue(uid, queue string) string {
	return userPrefix + uid + "/queue/" + queue
}

// ChatTopic returns the chat topic destination for a conversation key
// or a single identity.
func ChatTopic(key string) string {
	return topicPrefix + "chat/" + key
}

// UserOfDestination extracts the identity from a user/... destination.
// The second return is false for topic destinations.
func UserOfDestination(dest string) (string, bool) {
	if !strings.HasPrefix(dest, userPrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(dest, userPrefix)
	i := strings.IndexByte(rest, '/')
	if i <= 0 {
		return "", false
	}
	return rest[:i], true
}

// IsTopicDestination reports whether dest addresses a shared topic
// rather than a private user queue.
func IsTopicDestination(dest string) bool {
	return strings.HasPrefix(dest, topicPrefix)
}
