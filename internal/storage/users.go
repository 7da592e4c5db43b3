package storage

import (
	"errors"
	"log"

	"chatapp/backend/internal/models"

	"gorm.io/gorm"
)

// SaveUser upserts a user profile by UID.
func (s *Service) SaveUser(user *models.User) error {
	if err := s.DB.Save(user).Error; err != nil {
		log.Printf("ERROR: Failed to save user %s: %v", user.UID, err)
		return err
	}
	return nil
}

// GetUserByID returns the profile for uid, or nil when unknown.
func (s *Service) GetUserByID(uid string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("uid = ?", uid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get user %s: %v", uid, err)
		return nil, err
	}
	return &user, nil
}

// GetAllUsers returns every profile, optionally excluding one UID.
func (s *Service) GetAllUsers(excludeUID string) ([]models.User, error) {
	var users []models.User
	q := s.DB.Model(&models.User{})
	if excludeUID != "" {
		q = q.Where("uid <> ?", excludeUID)
	}
	if err := q.Find(&users).Error; err != nil {
		log.Printf("ERROR: Failed to list users: %v", err)
		return nil, err
	}
	return users, nil
}

// SearchUsersByName finds profiles whose name contains the query,
// case-insensitive, optionally excluding one UID.
func (s *Service) SearchUsersByName(name, excludeUID string) ([]models.User, error) {
	var users []models.User
	q := s.DB.Where("name ILIKE ?", "%"+name+"%")
	if excludeUID != "" {
		q = q.Where("uid <> ?", excludeUID)
	}
	if err := q.Find(&users).Error; err != nil {
		log.Printf("ERROR: Failed to search users by name %q: %v", name, err)
		return nil, err
	}
	return users, nil
}

// CountUsers returns the number of stored profiles.
func (s *Service) CountUsers() (int64, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SetTelegramChatID links a Telegram chat to a user profile.
func (s *Service) SetTelegramChatID(uid string, chatID int64) error {
	return s.DB.Model(&models.User{}).
		Where("uid = ?", uid).
		Update("telegram_chat_id", chatID).Error
}

// GetUserByTelegramChatID returns the profile linked to a Telegram
// chat, or nil when no user linked it.
func (s *Service) GetUserByTelegramChatID(chatID int64) (*models.User, error) {
	var user models.User
	err := s.DB.Where("telegram_chat_id = ?", chatID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
