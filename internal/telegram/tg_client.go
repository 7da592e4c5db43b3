package telegram

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"chatapp/backend/internal/config"
	"chatapp/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client implements the chathub.Client interface over a linked Telegram
// chat, so direct-queue deliveries reach the user in Telegram.
type Client struct {
	ChatID int64
	Bot    *tgbotapi.BotAPI
	Send   chan models.Envelope

	mu     sync.RWMutex
	userID string

	closeOnce sync.Once
}

func NewClient(bot *tgbotapi.BotAPI, chatID int64, userID string) *Client {
	return &Client{
		ChatID: chatID,
		Bot:    bot,
		Send:   make(chan models.Envelope, config.SendBufferSize),
		userID: userID,
	}
}

func (c *Client) GetUserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// Telegram sessions exist only for linked accounts, so they are always
// bound to a verified identity.
func (c *Client) IsAuthenticated() bool { return true }

func (c *Client) Rebind(userID string, authenticated bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
}

func (c *Client) GetSendChannel() chan<- models.Envelope { return c.Send }

// Topic subscriptions are not exposed over the bridge; only private
// queue traffic is forwarded to Telegram.
func (c *Client) Subscribe(topic string)         {}
func (c *Client) IsSubscribed(topic string) bool { return false }

// Run starts the write pump. Inbound Telegram traffic is handled
// centrally by the bot service.
func (c *Client) Run() {
	go c.writePump()
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// writePump forwards direct message deliveries to the Telegram chat.
func (c *Client) writePump() {
	defer log.Printf("Stopping Telegram write pump for %s", c.GetUserID())

	for env := range c.Send {
		if !strings.HasSuffix(env.Dest, "/queue/"+models.QueueMessages) {
			continue
		}

		var msg models.Message
		if err := json.Unmarshal(env.Body, &msg); err != nil {
			log.Printf("Error decoding message for Telegram client %s: %v", c.GetUserID(), err)
			continue
		}
		if msg.SenderID == c.GetUserID() {
			continue // do not echo the user's own messages
		}

		text := msg.SenderID + ": " + msg.Body
		if _, err := c.Bot.Send(tgbotapi.NewMessage(c.ChatID, text)); err != nil {
			log.Printf("WARNING: Telegram delivery to %s failed: %v", c.GetUserID(), err)
		}
	}
}
