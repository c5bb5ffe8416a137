// Package app orchestrates one update end to end: it serializes access to
// the session, runs the engine transition, records completed orders, and
// fans out admin notifications. Side effects are best effort; the user-facing
// reply never depends on them.
package app

import (
	"context"

	"log/slog"

	"github.com/aeiptv/salesbot/internal/engine"
	"github.com/aeiptv/salesbot/internal/ledger"
	"github.com/aeiptv/salesbot/internal/logger"
	"github.com/aeiptv/salesbot/internal/notify"
	"github.com/aeiptv/salesbot/internal/session"
)

// App wires the engine to its stores and sinks.
type App struct {
	engine   *engine.Engine
	store    session.Store
	ledger   ledger.Ledger
	notifier notify.Notifier
}

// New builds the orchestrator.
func New(eng *engine.Engine, store session.Store, led ledger.Ledger, notifier notify.Notifier) *App {
	return &App{
		engine:   eng,
		store:    store,
		ledger:   led,
		notifier: notifier,
	}
}

// HandleEvent applies one event to the conversation and returns the reply to
// render. The store serializes concurrent events per conversation, so the
// engine always sees the latest session.
func (a *App) HandleEvent(ctx context.Context, conversationID int64, from engine.Identity, ev engine.Event) engine.Reply {
	var res engine.Result
	a.store.Update(conversationID, func(s *session.Session) {
		prev := s.State
		res = a.engine.Handle(*s, from, ev)
		*s = res.Session

		logger.Debug(ctx, "engine", "transition.applied",
			slog.String("state", string(prev)),
			slog.String("next_state", string(res.Session.State)),
			slog.String("kind", string(ev.Kind)),
			slog.String("lang", res.Session.Lang),
			slog.String("package", res.Session.PackageCode),
		)
	})

	if res.Order != nil {
		if err := a.ledger.Append(ctx, *res.Order); err != nil {
			logger.Error(ctx, "ledger", "append.failed",
				slog.String("order_id", res.Order.ID),
				slog.String("err", err.Error()),
			)
		} else {
			logger.Info(ctx, "ledger", "order.recorded",
				slog.String("order_id", res.Order.ID),
				slog.String("package", res.Order.PackageCode),
				slog.Int64("price", res.Order.Price),
			)
		}
	}

	for _, n := range res.Notifications {
		a.notifier.Notify(ctx, n)
	}

	return res.Reply
}
