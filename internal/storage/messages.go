package storage

import (
	"errors"
	"log"

	"chatapp/backend/internal/config"
	"chatapp/backend/internal/models"

	"gorm.io/gorm"
)

// SaveMessage persists a chat message. The caller sets CreatedAt before
// the insert; GORM keeps a non-zero CreatedAt as-is. The assigned ID is
// written back into msg.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message %s -> %s: %v", msg.SenderID, msg.ReceiverID, err)
		return err
	}
	return nil
}

// GetMessagesBetween returns the full conversation between two users,
// oldest first. The pair is unordered: both directions are included.
func (s *Service) GetMessagesBetween(userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return messages, nil
		}
		log.Printf("ERROR: Failed to get chat history for %s <-> %s: %v", userA, userB, err)
		return nil, err
	}
	return messages, nil
}

// GetRecentMessagesBetween returns the most recent messages between two
// users, newest first, capped at the recent-history limit.
func (s *Service) GetRecentMessagesBetween(userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at desc").
		Limit(config.RecentHistoryLimit).
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: Failed to get recent history for %s <-> %s: %v", userA, userB, err)
		return nil, err
	}
	return messages, nil
}

// GetMessagesBySender returns all messages sent by a user, newest first.
func (s *Service) GetMessagesBySender(userID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.
		Where("sender_id = ?", userID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: Failed to get messages sent by %s: %v", userID, err)
		return nil, err
	}
	return messages, nil
}

// GetMessagesByReceiver returns all messages received by a user, newest
// first.
func (s *Service) GetMessagesByReceiver(userID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.
		Where("receiver_id = ?", userID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: Failed to get messages received by %s: %v", userID, err)
		return nil, err
	}
	return messages, nil
}
