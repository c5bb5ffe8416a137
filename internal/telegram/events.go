package telegram

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/aeiptv/salesbot/internal/engine"
)

// identityFrom extracts the sender's display identity.
func identityFrom(c tele.Context) engine.Identity {
	user := c.Sender()
	if user == nil {
		return engine.Identity{}
	}
	return engine.Identity{
		UserID:   user.ID,
		Username: user.Username,
		FullName: strings.TrimSpace(strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName)),
	}
}

// conversationID is the chat the reply goes back to.
func conversationID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if user := c.Sender(); user != nil {
		return user.ID
	}
	return 0
}

// parseCallback splits callback data into its button token and payload.
// Telebot encodes unique-tagged buttons as "\f<unique>|<payload>".
func parseCallback(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	parts := strings.SplitN(raw, "|", 2)
	token := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = strings.TrimSpace(parts[1])
	}
	return token, payload
}

// proofRefFrom derives a stable reference for a media message offered as
// payment proof.
func proofRefFrom(m *tele.Message) string {
	switch {
	case m == nil:
		return ""
	case m.Photo != nil:
		return "photo:" + m.Photo.FileID
	case m.Document != nil:
		return "document:" + m.Document.FileID
	}
	return ""
}
