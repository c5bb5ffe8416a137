package telegram

import (
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/aeiptv/salesbot/internal/config"
)

// buildPoller returns a telebot poller for the configured run mode.
func buildPoller(tg config.TelegramConfig, web config.WebhookConfig) tele.Poller {
	if strings.EqualFold(strings.TrimSpace(tg.RunMode), config.RunModeWebhook) {
		return &tele.Webhook{
			Listen:   fmt.Sprintf("%s:%d", web.Listen, web.Port),
			Endpoint: &tele.WebhookEndpoint{PublicURL: web.URL},
		}
	}

	timeoutSec := tg.LongPollTimeoutSeconds
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	return &tele.LongPoller{Timeout: time.Duration(timeoutSec) * time.Second}
}
