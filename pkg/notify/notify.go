// Package notify formats news items as Telegram HTML messages and sends them at a steady pace.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/newsbot/pkg/domain"
)

//go:generate moq -out mocks/messenger.go -pkg mocks -skip-ensure -fmt goimports . Messenger

// maxMessageLen is the telegram limit of a text message in characters
const maxMessageLen = 4096

// ErrDelivery is wrapped by every error returned from Notify
var ErrDelivery = errors.New("delivery failed")

// Messenger sends messages to a chat
type Messenger interface {
	SendText(ctx context.Context, chatID int64, htmlText string) error
	SendPhoto(ctx context.Context, chatID int64, path string) error
}

// Params of the dispatcher
type Params struct {
	ChatID       int64
	Pacing       time.Duration // wait after every dispatched item
	ReadMoreText string        // label of the source link
}

// Dispatcher sends news items, one photo (if any) and one text message per item
type Dispatcher struct {
	Params
	messenger Messenger
	policy    *bluemonday.Policy
}

// New makes a dispatcher
func New(m Messenger, p Params) *Dispatcher {
	if p.ReadMoreText == "" {
		p.ReadMoreText = "Читать в источнике..."
	}
	return &Dispatcher{Params: p, messenger: m, policy: bluemonday.StrictPolicy()}
}

// Notify sends the item, photo first. A photo failure aborts the item. After every attempt,
// successful or not, it waits the pacing delay unless ctx is done. No retries here.
func (d *Dispatcher) Notify(ctx context.Context, item domain.NewsItem) error {
	err := d.send(ctx, item)
	d.pace(ctx)
	return err
}

func (d *Dispatcher) send(ctx context.Context, item domain.NewsItem) error {
	if item.HasImage() {
		if err := d.messenger.SendPhoto(ctx, d.ChatID, item.ImagePath); err != nil {
			return fmt.Errorf("%w: send photo %s: %w", ErrDelivery, item.ImagePath, err)
		}
	}
	if err := d.messenger.SendText(ctx, d.ChatID, d.Format(item)); err != nil {
		return fmt.Errorf("%w: send text: %w", ErrDelivery, err)
	}
	lgr.Printf("[DEBUG] sent %q to %d", item.Title, d.ChatID)
	return nil
}

func (d *Dispatcher) pace(ctx context.Context) {
	if d.Pacing <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d.Pacing):
	}
}

// Format makes the message text, title and body are stripped of any markup.
// The body is cut so the visible text fits into a single telegram message.
func (d *Dispatcher) Format(item domain.NewsItem) string {
	title := d.policy.Sanitize(item.Title)
	body := strings.TrimSpace(d.policy.Sanitize(item.Body))

	// telegram counts characters after entity parsing, so lengths are taken on unescaped text
	visible := utf8.RuneCountInString(html.UnescapeString(title)) + utf8.RuneCountInString(d.ReadMoreText) + len("\n\n")
	if body != "" {
		body = fitText(body, maxMessageLen-visible-len("\n\n"))
	}

	var sb strings.Builder
	sb.WriteString("<b>")
	sb.WriteString(title)
	sb.WriteString("</b>\n\n")
	if body != "" {
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}
	sb.WriteString(`<a href="`)
	sb.WriteString(html.EscapeString(item.URL))
	sb.WriteString(`">`)
	sb.WriteString(html.EscapeString(d.ReadMoreText))
	sb.WriteString("</a>")
	return sb.String()
}

// fitText shortens escaped text to limit visible runes, ending it with an ellipsis
func fitText(escaped string, limit int) string {
	text := []rune(html.UnescapeString(escaped))
	if len(text) <= limit {
		return escaped
	}
	if limit <= 1 {
		return ""
	}
	return html.EscapeString(string(text[:limit-1])) + "…"
}
