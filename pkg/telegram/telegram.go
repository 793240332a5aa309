// Package telegram delivers messages with the Telegram Bot API and answers the /start command.
package telegram

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

//go:generate moq -out mocks/bot_api.go -pkg mocks -skip-ensure -fmt goimports . BotAPI

// BotAPI is the subset of tgbotapi.BotAPI used here
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// NewBotAPI connects to Telegram with the token
func NewBotAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("make telegram bot: %w", err)
	}
	lgr.Printf("[INFO] authorized on telegram account @%s", api.Self.UserName)
	return api, nil
}

// Messenger sends html messages and photos to chats
type Messenger struct {
	api BotAPI
}

// NewMessenger makes a messenger over the bot api
func NewMessenger(api BotAPI) *Messenger {
	return &Messenger{api: api}
}

// SendText sends html formatted message, link previews are disabled
func (m *Messenger) SendText(ctx context.Context, chatID int64, htmlText string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	msg := tgbotapi.NewMessage(chatID, htmlText)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := m.api.Send(msg); err != nil {
		return fmt.Errorf("send text to %d: %w", chatID, err)
	}
	return nil
}

// SendPhoto uploads the local image file to the chat
func (m *Messenger) SendPhoto(ctx context.Context, chatID int64, path string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	if _, err := m.api.Send(tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))); err != nil {
		return fmt.Errorf("send photo %s to %d: %w", path, chatID, err)
	}
	return nil
}

// Listener answers bot commands. It has no access to the news state.
type Listener struct {
	api      BotAPI
	greeting string
}

// NewListener makes a listener replying greeting to /start
func NewListener(api BotAPI, greeting string) *Listener {
	return &Listener{api: api, greeting: greeting}
}

// Run processes updates until ctx is done or the updates channel is closed
func (l *Listener) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := l.api.GetUpdatesChan(u)
	defer l.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			l.handle(update)
		}
	}
}

func (l *Listener) handle(update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}
	switch update.Message.Command() {
	case "start", "help":
		msg := tgbotapi.NewMessage(update.Message.Chat.ID, l.greeting)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := l.api.Send(msg); err != nil {
			lgr.Printf("[WARN] failed to answer /%s in %d: %v", update.Message.Command(), update.Message.Chat.ID, err)
			return
		}
		lgr.Printf("[DEBUG] answered /%s in %d", update.Message.Command(), update.Message.Chat.ID)
	}
}
