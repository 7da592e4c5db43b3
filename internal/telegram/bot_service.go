package telegram

import (
	"log"
	"strings"
	"sync"

	"chatapp/backend/internal/chathub"
	"chatapp/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotService bridges Telegram chats into the hub: a linked chat gets a
// live session for its user identity, and /to commands are relayed as
// chat messages.
type BotService struct {
	Bot     *tgbotapi.BotAPI
	Hub     *chathub.ManagerService
	Relay   *chathub.RelayService
	Storage storage.Storage

	mu      sync.Mutex
	clients map[int64]*Client
}

func NewBotService(token string, hub *chathub.ManagerService, relay *chathub.RelayService, s storage.Storage) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("Telegram bridge authorized as @%s", bot.Self.UserName)

	return &BotService{
		Bot:     bot,
		Hub:     hub,
		Relay:   relay,
		Storage: s,
		clients: make(map[int64]*Client),
	}, nil
}

// Run consumes Telegram updates until the update channel closes.
func (b *BotService) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	for update := range b.Bot.GetUpdatesChan(u) {
		if update.Message == nil {
			continue
		}
		b.handleMessage(update.Message)
	}
}

func (b *BotService) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.reply(chatID, "Link your account with /link <user-id>, then send messages with /to <user-id> <text>.")

	case "link":
		uid := strings.TrimSpace(msg.CommandArguments())
		if uid == "" {
			b.reply(chatID, "Usage: /link <user-id>")
			return
		}
		if err := b.Storage.SetTelegramChatID(uid, chatID); err != nil {
			log.Printf("ERROR: Failed to link Telegram chat %d to %s: %v", chatID, uid, err)
			b.reply(chatID, "Linking failed, try again later.")
			return
		}
		b.attach(chatID, uid)
		b.reply(chatID, "Linked. Incoming messages for "+uid+" will appear here.")

	case "to":
		client := b.restore(chatID)
		if client == nil {
			b.reply(chatID, "Not linked yet. Use /link <user-id> first.")
			return
		}

		args := strings.SplitN(strings.TrimSpace(msg.CommandArguments()), " ", 2)
		if len(args) < 2 {
			b.reply(chatID, "Usage: /to <user-id> <text>")
			return
		}

		sender := client.GetUserID()
		senderName := sender
		if user, err := b.Storage.GetUserByID(sender); err == nil && user != nil && user.Name != "" {
			senderName = user.Name
		}

		if _, err := b.Relay.Relay(sender, args[0], args[1], senderName); err != nil {
			log.Printf("Telegram relay from %s failed: %v", sender, err)
			b.reply(chatID, "Message could not be delivered.")
			return
		}

	default:
		if b.restore(chatID) == nil {
			b.reply(chatID, "Link your account with /link <user-id> first.")
			return
		}
		b.reply(chatID, "Use /to <user-id> <text> to send a message.")
	}
}

// attach registers a hub session for a linked chat, replacing any
// previous session for the same chat.
func (b *BotService) attach(chatID int64, uid string) *Client {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.clients[chatID]; ok {
		b.Hub.Unregister(old)
		old.Close()
	}

	client := NewClient(b.Bot, chatID, uid)
	b.clients[chatID] = client
	b.Hub.Register(client)
	return client
}

// restore returns the live session for a chat, re-attaching it from the
// stored link after a restart.
func (b *BotService) restore(chatID int64) *Client {
	b.mu.Lock()
	client, ok := b.clients[chatID]
	b.mu.Unlock()
	if ok {
		return client
	}

	user, err := b.Storage.GetUserByTelegramChatID(chatID)
	if err != nil || user == nil {
		return nil
	}
	return b.attach(chatID, user.UID)
}

func (b *BotService) reply(chatID int64, text string) {
	if _, err := b.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("WARNING: Telegram reply to chat %d failed: %v", chatID, err)
	}
}
