package telegram

import (
	tele "gopkg.in/telebot.v4"

	"github.com/aeiptv/salesbot/internal/engine"
)

// renderMarkup converts reply choices to an inline keyboard. Returns nil when
// the reply carries no choices.
func renderMarkup(reply engine.Reply) *tele.ReplyMarkup {
	if len(reply.Rows) == 0 {
		return nil
	}
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(reply.Rows))
	for _, row := range reply.Rows {
		btns := make([]tele.Btn, 0, len(row))
		for _, ch := range row {
			if ch.URL != "" {
				btns = append(btns, markup.URL(ch.Label, ch.URL))
				continue
			}
			btns = append(btns, markup.Data(ch.Label, ch.Token, ch.Payload))
		}
		rows = append(rows, markup.Row(btns...))
	}
	markup.Inline(rows...)
	return markup
}

// sendReply delivers the reply. Callback-origin replies edit the message the
// button was attached to so the chat does not fill up with stale keyboards;
// edits fall back to a fresh send when the original message is gone.
func sendReply(c tele.Context, reply engine.Reply, edit bool) error {
	if reply.Text == "" {
		return nil
	}
	markup := renderMarkup(reply)
	if edit {
		if markup != nil {
			return c.EditOrSend(reply.Text, markup)
		}
		return c.EditOrSend(reply.Text)
	}
	if markup != nil {
		return c.Send(reply.Text, markup)
	}
	return c.Send(reply.Text)
}
