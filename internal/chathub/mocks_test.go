package chathub_test

import (
	"sync"

	"chatapp/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface. It
// additionally records every attempted publish destination in order, so
// tests can assert fan-out ordering and isolation.
type MockStorage struct {
	mock.Mock

	mu         sync.Mutex
	PublishLog []string
}

func (m *MockStorage) logPublish(dest string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishLog = append(m.PublishLog, dest)
}

// PublishedDests returns a copy of the attempted destinations, in order.
func (m *MockStorage) PublishedDests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.PublishLog...)
}

// Message operations

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	if args.Error(0) == nil && msg.ID == 0 {
		msg.ID = 42 // the store assigns the ID on insert
	}
	return args.Error(0)
}

func (m *MockStorage) GetMessagesBetween(userA, userB string) ([]models.Message, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) GetRecentMessagesBetween(userA, userB string) ([]models.Message, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) GetMessagesBySender(userID string) ([]models.Message, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) GetMessagesByReceiver(userID string) ([]models.Message, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// User operations

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(uid string) (*models.User, error) {
	args := m.Called(uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetAllUsers(excludeUID string) ([]models.User, error) {
	args := m.Called(excludeUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) SearchUsersByName(name, excludeUID string) ([]models.User, error) {
	args := m.Called(name, excludeUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) CountUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) SetTelegramChatID(uid string, chatID int64) error {
	args := m.Called(uid, chatID)
	return args.Error(0)
}

func (m *MockStorage) GetUserByTelegramChatID(chatID int64) (*models.User, error) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Publish operations

func (m *MockStorage) PublishToUser(userID, queue string, v interface{}) error {
	m.logPublish(models.UserQueue(userID, queue))
	args := m.Called(userID, queue, v)
	return args.Error(0)
}

func (m *MockStorage) PublishToTopic(topic string, v interface{}) error {
	m.logPublish(topic)
	args := m.Called(topic, v)
	return args.Error(0)
}

// MockNotifier records notification dispatches. Done is buffered so
// tests can wait for the relay's async trigger.
type MockNotifier struct {
	mock.Mock
	Done chan struct{}
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{Done: make(chan struct{}, 8)}
}

func (m *MockNotifier) Send(receiverID, senderID, message, senderName string) {
	m.Called(receiverID, senderID, message, senderName)
	m.Done <- struct{}{}
}

// MockVerifier is a testify mock of the auth.TokenVerifier interface.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// MockClient is a test double for the chathub.Client interface.
type MockClient struct {
	mu            sync.RWMutex
	userID        string
	authenticated bool
	topics        map[string]struct{}
	RecvChannel   chan models.Envelope
	closed        bool
}

func newMockClient(id string, authenticated bool) *MockClient {
	return &MockClient{
		userID:        id,
		authenticated: authenticated,
		topics:        make(map[string]struct{}),
		RecvChannel:   make(chan models.Envelope, 10), // buffered to prevent blocking in tests
	}
}

func (c *MockClient) GetUserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *MockClient) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

func (c *MockClient) Rebind(userID string, authenticated bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	c.authenticated = authenticated
}

func (c *MockClient) GetSendChannel() chan<- models.Envelope { return c.RecvChannel }

func (c *MockClient) Subscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics[topic] = struct{}{}
}

func (c *MockClient) IsSubscribed(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.topics[topic]
	return ok
}

func (c *MockClient) Run() {}

func (c *MockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.RecvChannel)
	}
}

func (c *MockClient) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
