// Package notify delivers admin notifications. Delivery is best effort and
// asynchronous: a failure is logged and never surfaces to the conversation
// that triggered it.
package notify

import (
	"context"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/aeiptv/salesbot/internal/engine"
	"github.com/aeiptv/salesbot/internal/logger"
	"github.com/aeiptv/salesbot/internal/telegram/sender"
)

// Notifier delivers one admin notification.
type Notifier interface {
	Notify(ctx context.Context, n engine.Notification)
}

// Telegram sends notifications to the configured admin chat through the
// outbound dispatcher.
type Telegram struct {
	bot        *tele.Bot
	admin      tele.ChatID
	dispatcher *sender.Dispatcher
}

// NewTelegram builds the admin notifier.
func NewTelegram(bot *tele.Bot, adminID int64, dispatcher *sender.Dispatcher) *Telegram {
	return &Telegram{
		bot:        bot,
		admin:      tele.ChatID(adminID),
		dispatcher: dispatcher,
	}
}

// Notify enqueues the notification for delivery.
func (t *Telegram) Notify(ctx context.Context, n engine.Notification) {
	err := t.dispatcher.Enqueue(ctx, "notify."+string(n.Kind), func() error {
		_, sendErr := t.bot.Send(t.admin, n.Text)
		return sendErr
	})
	if err != nil {
		logger.Warn(ctx, "notify", "notify.dropped",
			slog.String("kind", string(n.Kind)),
			slog.String("err", err.Error()),
		)
	}
}

// Discard drops all notifications. Used when no admin chat is configured.
type Discard struct{}

// Notify implements Notifier.
func (Discard) Notify(context.Context, engine.Notification) {}
