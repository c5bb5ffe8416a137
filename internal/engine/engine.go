// Package engine implements the guided sales conversation as a pure state
// machine. Handle consumes a session snapshot and one event and returns the
// next session, the reply to render, any admin notifications, and the order
// snapshot when a purchase completes. It performs no I/O; persistence and
// delivery are the caller's concern, which keeps every transition unit
// testable.
package engine

import (
	"strings"
	"time"

	"github.com/aeiptv/salesbot/internal/catalog"
	"github.com/aeiptv/salesbot/internal/config"
	"github.com/aeiptv/salesbot/internal/i18n"
	"github.com/aeiptv/salesbot/internal/order"
	"github.com/aeiptv/salesbot/internal/session"
)

// Result is the complete outcome of one transition.
type Result struct {
	Session       session.Session
	Reply         Reply
	Notifications []Notification
	// Order is non-nil only when payment proof was accepted this transition.
	Order *order.Order
}

// Engine evaluates transitions against a fixed catalog and feature set.
type Engine struct {
	brand    string
	catalog  *catalog.Catalog
	texts    *i18n.Table
	features config.FeatureConfig

	// overridable in tests for deterministic ids and timestamps
	newID func() string
	now   func() time.Time
}

// New builds the engine. The catalog and texts must outlive it.
func New(brand string, cat *catalog.Catalog, texts *i18n.Table, features config.FeatureConfig) *Engine {
	return &Engine{
		brand:    brand,
		catalog:  cat,
		texts:    texts,
		features: features,
		newID:    order.NewID,
		now:      time.Now,
	}
}

// Handle applies one event to a session snapshot. It never returns an error:
// unrecognized input produces a fallback reply and leaves the session in a
// recoverable state.
func (e *Engine) Handle(s session.Session, from Identity, ev Event) Result {
	now := e.now()
	s.UpdatedAt = now

	// Language gate: with more than one supported language nothing proceeds
	// until the user picks one. A single-language deployment skips the prompt.
	if s.Lang == "" {
		if len(e.features.Languages) > 1 {
			if ev.Kind == EventButton && ev.Token == TokenLang && e.supported(ev.Payload) {
				s.Lang = ev.Payload
				s.State = session.StateMenu
				return e.done(s, e.menuReply(s.Lang))
			}
			s.State = session.StateLangPending
			return e.done(s, e.languageReply())
		}
		s.Lang = e.features.DefaultLanguage
	}

	switch ev.Kind {
	case EventButton:
		return e.handleButton(s, from, ev)
	case EventCommand:
		return e.handleCommand(s, ev)
	case EventContact:
		if s.State == session.StateAwaitingPhone && ev.Contact != nil {
			return e.handlePhone(s, ev.Contact.Phone, ev.Contact.Name)
		}
	case EventText:
		switch s.State {
		case session.StateAwaitingPhone:
			return e.handlePhone(s, ev.Text, "")
		case session.StateAwaitingProof:
			return e.handleProof(s, from, ev.Text, now)
		}
	}

	// Anything else lands on the menu without touching an in-flight selection.
	s.State = session.StateMenu
	return e.done(s, e.menuReply(s.Lang))
}

func (e *Engine) handleCommand(s session.Session, ev Event) Result {
	switch ev.Command {
	case CommandHelp:
		return e.done(s, Reply{
			Text: e.texts.T(s.Lang, i18n.KeyHelp),
			Rows: e.menuRows(s.Lang),
		})
	default: // /start and unknown commands show the menu
		s.State = session.StateMenu
		return e.done(s, e.menuReply(s.Lang))
	}
}

func (e *Engine) handleButton(s session.Session, from Identity, ev Event) Result {
	switch ev.Token {
	case TokenLang:
		if e.supported(ev.Payload) {
			s.Lang = ev.Payload
		}
		s.State = session.StateMenu
		return e.done(s, e.menuReply(s.Lang))

	case TokenMoreInfo:
		s.State = session.StateMenu
		return e.done(s, Reply{
			Text: e.texts.T(s.Lang, i18n.KeyMoreInfo),
			Rows: e.menuRows(s.Lang),
		})

	case TokenBackHome:
		s.State = session.StateMenu
		return e.done(s, e.menuReply(s.Lang))

	case TokenSubscribe:
		s.State = session.StatePackageList
		return e.done(s, e.packageListReply(s.Lang))

	case TokenPackage:
		pkg, ok := e.catalog.Get(ev.Payload)
		if !ok {
			// stale button from an older catalog: re-offer the current list
			s.State = session.StatePackageList
			reply := e.packageListReply(s.Lang)
			reply.Text = e.texts.T(s.Lang, i18n.KeyPackageNotFound) + "\n\n" + reply.Text
			return e.done(s, reply)
		}
		s.PackageCode = pkg.Code
		s.State = session.StatePackageDetail
		res := e.done(s, e.packageCardReply(s.Lang, pkg))
		res.Notifications = []Notification{e.selectionNotification(from, pkg)}
		return res

	case TokenAgree:
		pkg, ok := e.catalog.Get(ev.Payload)
		if !ok {
			return e.fallback(s)
		}
		s.PackageCode = pkg.Code
		s.PaymentMethod = pkg.PaymentMethod
		s.State = session.StatePaymentShown
		res := e.done(s, e.paymentReply(s.Lang, pkg))
		res.Notifications = []Notification{e.agreementNotification(from, pkg)}
		return res

	case TokenPaid:
		if _, ok := e.catalog.Get(s.PackageCode); !ok {
			return e.fallback(s)
		}
		// A repeated tap re-issues the pending prompt without side effects.
		if s.State == session.StateAwaitingProof {
			return e.done(s, e.promptReply(s.Lang, i18n.KeyAskProof))
		}
		if e.features.CollectPhone && s.Phone == "" {
			s.State = session.StateAwaitingPhone
			return e.done(s, e.promptReply(s.Lang, i18n.KeyAskPhone))
		}
		s.State = session.StateAwaitingProof
		return e.done(s, e.promptReply(s.Lang, i18n.KeyAskProof))
	}

	return e.fallback(s)
}

func (e *Engine) handlePhone(s session.Session, raw, contactName string) Result {
	normalized, ok := NormalizePhone(raw)
	if !ok {
		return e.done(s, e.promptReply(s.Lang, i18n.KeyPhoneInvalid))
	}
	s.Phone = normalized
	if contactName != "" {
		s.ContactName = contactName
	}
	s.State = session.StateAwaitingProof
	return e.done(s, e.promptReply(s.Lang, i18n.KeyAskProof))
}

func (e *Engine) handleProof(s session.Session, from Identity, text string, now time.Time) Result {
	ref := strings.TrimSpace(text)
	if ref == "" {
		return e.done(s, e.promptReply(s.Lang, i18n.KeyAskProof))
	}
	pkg, ok := e.catalog.Get(s.PackageCode)
	if !ok {
		// selection evaporated mid-flight (catalog reload); recover via menu
		s.ResetForNextOrder(now)
		return e.fallback(s)
	}

	name := s.ContactName
	if name == "" {
		name = from.FullName
	}
	ord := &order.Order{
		ID:             e.newID(),
		ConversationID: s.ConversationID,
		Username:       from.Username,
		ContactName:    name,
		PackageCode:    pkg.Code,
		PackageName:    pkg.Name,
		Price:          pkg.Price,
		Currency:       pkg.Currency,
		Phone:          s.Phone,
		PaymentMethod:  s.PaymentMethod,
		ProofRef:       ref,
		CompletedAt:    now,
	}

	s.ContactName = name
	s.ResetForNextOrder(now)

	res := e.done(s, Reply{
		Text: e.texts.Tf(s.Lang, i18n.KeyThankYou, e.brand),
		Rows: e.menuRows(s.Lang),
	})
	res.Notifications = []Notification{e.newOrderNotification(from, ord)}
	res.Order = ord
	return res
}

// fallback keeps the current state and offers a way back to the menu.
func (e *Engine) fallback(s session.Session) Result {
	return e.done(s, Reply{
		Text: e.texts.T(s.Lang, i18n.KeyUnknownAction),
		Rows: e.menuRows(s.Lang),
	})
}

func (e *Engine) done(s session.Session, reply Reply) Result {
	return Result{Session: s, Reply: reply}
}

func (e *Engine) supported(tag string) bool {
	for _, lang := range e.features.Languages {
		if lang == tag {
			return true
		}
	}
	return false
}

// reply builders

func (e *Engine) menuReply(lang string) Reply {
	return Reply{
		Text: e.texts.Tf(lang, i18n.KeyWelcome, e.brand),
		Rows: e.menuRows(lang),
	}
}

func (e *Engine) menuRows(lang string) [][]Choice {
	return [][]Choice{{
		{Label: e.texts.T(lang, i18n.KeyBtnMoreInfo), Token: TokenMoreInfo},
		{Label: e.texts.T(lang, i18n.KeyBtnSubscribe), Token: TokenSubscribe},
	}}
}

func (e *Engine) languageReply() Reply {
	rows := make([][]Choice, 0, len(e.features.Languages))
	for _, tag := range e.features.Languages {
		rows = append(rows, []Choice{{Label: langLabel(tag), Token: TokenLang, Payload: tag}})
	}
	return Reply{
		Text: e.texts.T(e.features.DefaultLanguage, i18n.KeyChooseLanguage),
		Rows: rows,
	}
}

func (e *Engine) packageListReply(lang string) Reply {
	rows := make([][]Choice, 0, e.catalog.Len()+1)
	for _, pkg := range e.catalog.All() {
		rows = append(rows, []Choice{{Label: pkg.Name, Token: TokenPackage, Payload: pkg.Code}})
	}
	rows = append(rows, []Choice{{Label: e.texts.T(lang, i18n.KeyBtnBackHome), Token: TokenBackHome}})
	return Reply{
		Text: e.texts.T(lang, i18n.KeyPickPackage),
		Rows: rows,
	}
}

func (e *Engine) packageCardReply(lang string, pkg *catalog.Package) Reply {
	details := strings.Join(pkg.Details(lang, e.texts.DefaultLang()), "\n")
	return Reply{
		Text: e.texts.Tf(lang, i18n.KeyPackageCard,
			pkg.Name, pkg.PriceTag(), details, e.texts.T(lang, i18n.KeyTerms)),
		Rows: [][]Choice{
			{{Label: e.texts.T(lang, i18n.KeyBtnAgree), Token: TokenAgree, Payload: pkg.Code}},
			{{Label: e.texts.T(lang, i18n.KeyBtnBack), Token: TokenSubscribe}},
		},
	}
}

func (e *Engine) paymentReply(lang string, pkg *catalog.Package) Reply {
	text := e.texts.Tf(lang, i18n.KeySelectedPackage, pkg.Name) +
		"\n\n" + e.texts.T(lang, i18n.KeyPaymentInstructions)
	rows := [][]Choice{}
	if pkg.PaymentURL != "" {
		rows = append(rows, []Choice{{Label: e.texts.T(lang, i18n.KeyBtnPayNow), URL: pkg.PaymentURL}})
	}
	rows = append(rows,
		[]Choice{{Label: e.texts.T(lang, i18n.KeyBtnPaid), Token: TokenPaid, Payload: pkg.Code}},
		[]Choice{{Label: e.texts.T(lang, i18n.KeyBtnBack), Token: TokenSubscribe}},
	)
	return Reply{Text: text, Rows: rows}
}

func (e *Engine) promptReply(lang string, key i18n.Key) Reply {
	return Reply{Text: e.texts.T(lang, key)}
}

var langNames = map[string]string{
	"en": "English",
	"ar": "العربية",
}

func langLabel(tag string) string {
	if name, ok := langNames[tag]; ok {
		return name
	}
	return strings.ToUpper(tag)
}
