package storage

import (
	"context"
	"encoding/json"

	"chatapp/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Storage interface {
	SaveMessage(msg *models.Message) error
	GetMessagesBetween(userA, userB string) ([]models.Message, error)
	GetRecentMessagesBetween(userA, userB string) ([]models.Message, error)
	GetMessagesBySender(userID string) ([]models.Message, error)
	GetMessagesByReceiver(userID string) ([]models.Message, error)

	SaveUser(user *models.User) error
	GetUserByID(uid string) (*models.User, error)
	GetAllUsers(excludeUID string) ([]models.User, error)
	SearchUsersByName(name, excludeUID string) ([]models.User, error)
	CountUsers() (int64, error)
	SetTelegramChatID(uid string, chatID int64) error
	GetUserByTelegramChatID(chatID int64) (*models.User, error)

	PublishToUser(userID, queue string, v interface{}) error
	PublishToTopic(topic string, v interface{}) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// PublishToUser publishes a payload on the private queue channel of one
// identity. Every server instance routes it to that identity's local
// sessions.
func (s *Service) PublishToUser(userID, queue string, v interface{}) error {
	return s.publish(models.UserQueue(userID, queue), v)
}

// PublishToTopic publishes a payload on a shared topic channel.
func (s *Service) PublishToTopic(topic string, v interface{}) error {
	return s.publish(topic, v)
}

func (s *Service) publish(dest string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, dest, string(body)).Err()
}

// SubscribeAll subscribes to every delivery channel: private user
// queues and shared topics.
func (s *Service) SubscribeAll() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, "user/*", "topic/*")
}
