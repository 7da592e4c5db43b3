package chathub_test

import (
	"errors"
	"testing"
	"time"

	"chatapp/backend/internal/chathub"
	"chatapp/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func waitForNotify(t *testing.T, n *MockNotifier) {
	t.Helper()
	select {
	case <-n.Done:
	case <-time.After(time.Second):
		t.Fatal("notification was not dispatched")
	}
}

func TestRelay_PersistsAndFansOutInOrder(t *testing.T) {
	storageMock := new(MockStorage)
	notifier := NewMockNotifier()
	relay := chathub.NewRelayService(storageMock, notifier)

	var persisted models.Message
	storageMock.On("SaveMessage", mock.AnythingOfType("*models.Message")).
		Run(func(args mock.Arguments) {
			persisted = *args.Get(0).(*models.Message)
		}).
		Return(nil).Once()
	storageMock.On("PublishToUser", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	storageMock.On("PublishToTopic", mock.Anything, mock.Anything).Return(nil)
	notifier.On("Send", "bob", "alice", "hi", "Alice").Return()

	msg, err := relay.Relay("alice", "bob", "hi", "Alice")

	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, uint(42), msg.ID, "relay should return the store-assigned ID")
	assert.Equal(t, "alice", msg.SenderID)
	assert.Equal(t, "bob", msg.ReceiverID)
	assert.Equal(t, "hi", msg.Body)

	// CreatedAt was assigned by the relay before the persist attempt.
	assert.False(t, persisted.CreatedAt.IsZero(), "CreatedAt must be set before persistence")

	assert.Equal(t, []string{
		"user/bob/queue/messages",
		"user/alice/queue/messages",
		"topic/chat/alice_bob",
		"topic/chat/alice",
		"topic/chat/bob",
	}, storageMock.PublishedDests(), "fan-out must address all five targets in fixed order")

	waitForNotify(t, notifier)
	notifier.AssertCalled(t, "Send", "bob", "alice", "hi", "Alice")
	storageMock.AssertExpectations(t)
}

func TestRelay_EmptyBodyIsRejectedBeforePersist(t *testing.T) {
	storageMock := new(MockStorage)
	notifier := NewMockNotifier()
	relay := chathub.NewRelayService(storageMock, notifier)

	msg, err := relay.Relay("alice", "bob", "", "Alice")

	assert.Nil(t, msg)
	assert.ErrorIs(t, err, chathub.ErrValidation)
	storageMock.AssertNotCalled(t, "SaveMessage", mock.Anything)
	assert.Empty(t, storageMock.PublishedDests(), "no fan-out for a rejected message")
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRelay_MissingSenderOrReceiverIsRejected(t *testing.T) {
	storageMock := new(MockStorage)
	notifier := NewMockNotifier()
	relay := chathub.NewRelayService(storageMock, notifier)

	_, err := relay.Relay("", "bob", "hi", "")
	assert.ErrorIs(t, err, chathub.ErrValidation)

	_, err = relay.Relay("alice", "", "hi", "")
	assert.ErrorIs(t, err, chathub.ErrValidation)

	storageMock.AssertNotCalled(t, "SaveMessage", mock.Anything)
}

func TestRelay_PersistFailureStopsEverything(t *testing.T) {
	storageMock := new(MockStorage)
	notifier := NewMockNotifier()
	relay := chathub.NewRelayService(storageMock, notifier)

	storageMock.On("SaveMessage", mock.Anything).Return(errors.New("db down")).Once()

	msg, err := relay.Relay("alice", "bob", "hi", "Alice")

	assert.Nil(t, msg)
	assert.ErrorIs(t, err, chathub.ErrPersist)
	assert.Empty(t, storageMock.PublishedDests(), "no fan-out for an unpersisted message")
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	storageMock.AssertExpectations(t)
}

func TestRelay_FailedTargetDoesNotBlockOthers(t *testing.T) {
	storageMock := new(MockStorage)
	notifier := NewMockNotifier()
	relay := chathub.NewRelayService(storageMock, notifier)

	storageMock.On("SaveMessage", mock.Anything).Return(nil).Once()
	// First target (receiver direct) fails; everything else succeeds.
	storageMock.On("PublishToUser", "bob", "messages", mock.Anything).Return(errors.New("broker hiccup")).Once()
	storageMock.On("PublishToUser", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	storageMock.On("PublishToTopic", mock.Anything, mock.Anything).Return(nil)
	notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	msg, err := relay.Relay("alice", "bob", "hi", "")

	require.NoError(t, err, "a failed fan-out target must not fail the relay")
	require.NotNil(t, msg)
	assert.Equal(t, []string{
		"user/bob/queue/messages",
		"user/alice/queue/messages",
		"topic/chat/alice_bob",
		"topic/chat/alice",
		"topic/chat/bob",
	}, storageMock.PublishedDests(), "all five targets must still be attempted")

	waitForNotify(t, notifier)
}

func TestRelay_SenderNameFallsBackToSenderID(t *testing.T) {
	storageMock := new(MockStorage)
	notifier := NewMockNotifier()
	relay := chathub.NewRelayService(storageMock, notifier)

	storageMock.On("SaveMessage", mock.Anything).Return(nil).Once()
	storageMock.On("PublishToUser", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	storageMock.On("PublishToTopic", mock.Anything, mock.Anything).Return(nil)
	notifier.On("Send", "bob", "alice", "hi", "").Return()

	_, err := relay.Relay("alice", "bob", "hi", "")
	require.NoError(t, err)

	// The empty display name is passed through; the notifier applies
	// its own senderId fallback.
	waitForNotify(t, notifier)
	notifier.AssertCalled(t, "Send", "bob", "alice", "hi", "")
}
