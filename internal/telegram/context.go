package telegram

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"github.com/aeiptv/salesbot/internal/logger"
)

const loggerCtxKey = "logger_ctx"

// storeContext caches the derived context on tele.Context so every layer of
// one update shares the same rid and metadata.
func storeContext(c tele.Context, ctx context.Context) {
	if c == nil || ctx == nil {
		return
	}
	c.Set(loggerCtxKey, ctx)
}

func cachedContext(c tele.Context) (context.Context, bool) {
	if c == nil {
		return nil, false
	}
	if v := c.Get(loggerCtxKey); v != nil {
		if ctx, ok := v.(context.Context); ok {
			return ctx, true
		}
	}
	return nil, false
}

// buildContext constructs a context.Context carrying the rid and update
// metadata for consistent logging across the transport and the app layer.
func buildContext(c tele.Context) context.Context {
	if cached, ok := cachedContext(c); ok {
		return cached
	}

	upd := c.Update()
	var chatID, userID int64
	if chat := c.Chat(); chat != nil {
		chatID = chat.ID
	}
	if user := c.Sender(); user != nil {
		userID = user.ID
	}

	rid, _ := c.Get("rid").(string)
	if rid == "" {
		rid = logger.BuildRID(upd.ID, chatID, userID)
	}

	ctx := context.Background()
	ctx = logger.WithRID(ctx, rid)
	ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
	ctx = logger.WithLogger(ctx, logger.Component("tg"))
	storeContext(c, ctx)
	return ctx
}
