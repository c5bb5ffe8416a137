// Package telegram is the transport: it owns the bot lifecycle, converts
// Telegram updates into engine events, and renders engine replies back into
// messages and inline keyboards.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/aeiptv/salesbot/internal/app"
	"github.com/aeiptv/salesbot/internal/config"
	"github.com/aeiptv/salesbot/internal/engine"
	"github.com/aeiptv/salesbot/internal/ledger"
	"github.com/aeiptv/salesbot/internal/logger"
	"github.com/aeiptv/salesbot/internal/notify"
	"github.com/aeiptv/salesbot/internal/session"
	"github.com/aeiptv/salesbot/internal/telegram/sender"
)

// Deps are the domain components the transport serves.
type Deps struct {
	Store  session.Store
	Engine *engine.Engine
	Ledger ledger.Ledger
}

// Run composes and runs the bot until the provided context is done.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		return fmt.Errorf("telegram: nil config provided")
	}

	poller := buildPoller(cfg.Telegram, cfg.Webhook)

	buildStart := time.Now()
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller,
		Client: buildHTTPClient(),
	})
	if err != nil {
		return fmt.Errorf("telegram: bot initialization failed: %w", err)
	}
	buildTook := time.Since(buildStart)

	dispatcher := sender.NewDispatcher(sender.Options{})

	var notifier notify.Notifier = notify.Discard{}
	if cfg.Telegram.AdminID != 0 {
		notifier = notify.NewTelegram(bot, cfg.Telegram.AdminID, dispatcher)
	}

	svc := &service{
		app: app.New(deps.Engine, deps.Store, deps.Ledger, notifier),
	}

	switch p := poller.(type) {
	case *tele.Webhook:
		logger.TG.Info("webhook mode",
			slog.String("event", "mode"),
			slog.String("mode", "webhook"),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)
	default:
		timeoutSec := cfg.Telegram.LongPollTimeoutSeconds
		if timeoutSec <= 0 {
			timeoutSec = 10
		}
		logger.TG.Info("polling mode",
			slog.String("event", "mode"),
			slog.String("mode", "polling"),
			slog.Int("timeout_seconds", timeoutSec),
			slog.Duration("duration", logger.RoundMS(buildTook)),
		)

		// A leftover webhook registration blocks long polling.
		if err := deleteWebhook(cfg.Telegram.Token, false); err != nil {
			logger.TG.Warn("failed to delete webhook",
				slog.String("event", "delete_webhook"),
				slog.String("mode", "polling"),
				slog.String("err", err.Error()),
			)
		} else {
			logger.TG.Info("webhook deleted",
				slog.String("event", "delete_webhook"),
				slog.String("mode", "polling"),
			)
		}
	}

	bot.Use(recoverMiddleware, rateLimitMiddleware(cfg.RateLimit), loggerMiddleware)

	bot.Handle("/start", svc.handle("start", svc.onCommand(engine.CommandStart)))
	bot.Handle("/help", svc.handle("help", svc.onCommand(engine.CommandHelp)))
	bot.Handle(tele.OnCallback, svc.handle("callback", svc.onCallback))
	bot.Handle(tele.OnContact, svc.handle("contact", svc.onContact))
	bot.Handle(tele.OnPhoto, svc.handle("photo", svc.onMedia))
	bot.Handle(tele.OnDocument, svc.handle("document", svc.onMedia))
	bot.Handle(tele.OnText, svc.handle("text", svc.onText))

	if err := bot.SetCommands([]tele.Command{
		{Text: "start", Description: "Show the main menu"},
		{Text: "help", Description: "How to use this bot"},
	}); err != nil {
		logger.TG.Warn("failed to set command menu",
			slog.String("event", "set_commands"),
			slog.String("err", err.Error()),
		)
	}

	runDone := make(chan struct{})
	go func() {
		bot.Start()
		close(runDone)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		bot.Stop()
		<-runDone
		runErr = ctx.Err()
	case <-runDone:
	}

	dispatcher.Close()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func deleteWebhook(token string, dropPending bool) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("empty token")
	}
	url := fmt.Sprintf("https://api.telegram.org/bot%s/deleteWebhook", token)
	body := "drop_pending_updates=false"
	if dropPending {
		body = "drop_pending_updates=true"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("deleteWebhook status: %s", resp.Status)
	}
	return nil
}
