package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsbot/pkg/telegram/mocks"
)

func TestMessenger_SendText(t *testing.T) {
	api := &mocks.BotAPIMock{
		SendFunc: func(tgbotapi.Chattable) (tgbotapi.Message, error) { return tgbotapi.Message{}, nil },
	}
	m := NewMessenger(api)
	require.NoError(t, m.SendText(context.Background(), 123, "<b>T1</b>"))

	require.Len(t, api.SendCalls(), 1)
	msg, ok := api.SendCalls()[0].C.(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(123), msg.ChatID)
	assert.Equal(t, "<b>T1</b>", msg.Text)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.True(t, msg.DisableWebPagePreview)
}

func TestMessenger_SendPhoto(t *testing.T) {
	api := &mocks.BotAPIMock{
		SendFunc: func(tgbotapi.Chattable) (tgbotapi.Message, error) { return tgbotapi.Message{}, nil },
	}
	m := NewMessenger(api)
	require.NoError(t, m.SendPhoto(context.Background(), 123, "images/news_AGENCY_B_1.jpg"))

	require.Len(t, api.SendCalls(), 1)
	photo, ok := api.SendCalls()[0].C.(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, int64(123), photo.ChatID)
	assert.Equal(t, tgbotapi.FilePath("images/news_AGENCY_B_1.jpg"), photo.File)
}

func TestMessenger_Errors(t *testing.T) {
	api := &mocks.BotAPIMock{
		SendFunc: func(tgbotapi.Chattable) (tgbotapi.Message, error) {
			return tgbotapi.Message{}, errors.New("Bad Request: chat not found")
		},
	}
	m := NewMessenger(api)
	err := m.SendText(context.Background(), 1, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
	require.Error(t, m.SendPhoto(context.Background(), 1, "x.jpg"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, m.SendText(ctx, 1, "text"), context.Canceled)
	require.ErrorIs(t, m.SendPhoto(ctx, 1, "x.jpg"), context.Canceled)
	assert.Len(t, api.SendCalls(), 2, "nothing sent with canceled context")
}

func command(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}}
}

func TestListener_Run(t *testing.T) {
	updates := make(chan tgbotapi.Update, 4)
	sent := make(chan tgbotapi.MessageConfig, 4)
	api := &mocks.BotAPIMock{
		GetUpdatesChanFunc: func(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return updates },
		StopReceivingUpdatesFunc: func() {},
		SendFunc: func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
			sent <- c.(tgbotapi.MessageConfig)
			return tgbotapi.Message{}, nil
		},
	}

	updates <- tgbotapi.Update{} // no message
	updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 1}}}
	updates <- command(2, "/unknown")
	updates <- command(3, "/start")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- NewListener(api, "news watcher").Run(ctx) }()

	select {
	case msg := <-sent:
		assert.Equal(t, int64(3), msg.ChatID)
		assert.Equal(t, "news watcher", msg.Text)
	case <-time.After(time.Second):
		t.Fatal("no reply to /start")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("listener not stopped")
	}
	assert.Len(t, api.SendCalls(), 1, "only /start answered")
	assert.Len(t, api.StopReceivingUpdatesCalls(), 1)
	assert.Equal(t, 60, api.GetUpdatesChanCalls()[0].Config.Timeout)
}

func TestListener_ClosedUpdates(t *testing.T) {
	updates := make(chan tgbotapi.Update)
	close(updates)
	api := &mocks.BotAPIMock{
		GetUpdatesChanFunc:       func(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return updates },
		StopReceivingUpdatesFunc: func() {},
	}
	require.NoError(t, NewListener(api, "hi").Run(context.Background()))
}
