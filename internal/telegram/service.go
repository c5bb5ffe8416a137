package telegram

import (
	"context"
	"strings"
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/aeiptv/salesbot/internal/app"
	"github.com/aeiptv/salesbot/internal/engine"
	"github.com/aeiptv/salesbot/internal/logger"
)

// service binds bot handlers to the orchestrator.
type service struct {
	app *app.App
}

// handle wraps a handler with context setup and a single summary log line.
func (s *service) handle(name string, fn func(ctx context.Context, c tele.Context) error) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()
		ctx := logger.WithHandler(buildContext(c), name)
		storeContext(c, ctx)

		err := fn(ctx, c)

		status := "ok"
		attrs := []slog.Attr{
			slog.String("handler", name),
			slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
		}
		if err != nil {
			status = "fail"
			attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
		}
		attrs = append([]slog.Attr{slog.String("status", status)}, attrs...)
		logger.LogEvent(ctx, logger.Component("tg"), slog.LevelInfo, "handler.handled", attrs...)
		return err
	}
}

func (s *service) dispatch(ctx context.Context, c tele.Context, ev engine.Event, edit bool) error {
	reply := s.app.HandleEvent(ctx, conversationID(c), identityFrom(c), ev)
	return sendReply(c, reply, edit)
}

func (s *service) onCommand(command string) func(ctx context.Context, c tele.Context) error {
	return func(ctx context.Context, c tele.Context) error {
		return s.dispatch(ctx, c, engine.Event{Kind: engine.EventCommand, Command: command}, false)
	}
}

func (s *service) onText(ctx context.Context, c tele.Context) error {
	return s.dispatch(ctx, c, engine.Event{Kind: engine.EventText, Text: c.Text()}, false)
}

func (s *service) onContact(ctx context.Context, c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Contact == nil {
		return s.dispatch(ctx, c, engine.Event{Kind: engine.EventText}, false)
	}
	contact := msg.Contact
	return s.dispatch(ctx, c, engine.Event{
		Kind: engine.EventContact,
		Contact: &engine.Contact{
			Phone: contact.PhoneNumber,
			Name:  strings.TrimSpace(strings.TrimSpace(contact.FirstName) + " " + strings.TrimSpace(contact.LastName)),
		},
	}, false)
}

func (s *service) onCallback(ctx context.Context, c tele.Context) error {
	// Stop the client-side spinner before doing any work.
	_ = c.Respond()

	token, payload := parseCallback(c.Callback())
	return s.dispatch(ctx, c, engine.Event{
		Kind:    engine.EventButton,
		Token:   token,
		Payload: payload,
	}, true)
}

// onMedia treats photos and documents as payment proof candidates; outside
// the proof step the engine falls back to the menu like any other message.
func (s *service) onMedia(ctx context.Context, c tele.Context) error {
	ref := proofRefFrom(c.Message())
	if ref == "" {
		ref = c.Text()
	}
	return s.dispatch(ctx, c, engine.Event{Kind: engine.EventText, Text: ref}, false)
}
