// Package session owns the per-conversation state record and its store.
package session

import (
	"fmt"
	"time"
)

// State identifies the conversation step a session is parked at.
type State string

const (
	// StateNew marks a session created on first contact, before any prompt.
	StateNew State = "new"
	// StateLangPending means the language prompt was shown and no supported
	// language has been chosen yet.
	StateLangPending State = "lang_pending"
	// StateMenu is the main menu. Completed orders reset the session here.
	StateMenu State = "menu"
	// StatePackageList shows the catalog as choices.
	StatePackageList State = "package_list"
	// StatePackageDetail shows one package card with terms.
	StatePackageDetail State = "package_detail"
	// StatePaymentShown means the user agreed to terms and the payment target
	// was revealed. Agreement has no resting state of its own; the affirmative
	// tap moves straight here.
	StatePaymentShown State = "payment_shown"
	// StateAwaitingPhone waits for a contact number after "I paid".
	StateAwaitingPhone State = "awaiting_phone"
	// StateAwaitingProof waits for a payment reference or receipt.
	StateAwaitingProof State = "awaiting_proof"
)

// Session is the mutable per-conversation record. It is passed by value
// through the engine; only the store holds the canonical copy.
type Session struct {
	ConversationID int64
	// Lang is empty until the user picks a supported language.
	Lang          string
	State         State
	PackageCode   string
	ContactName   string
	Phone         string
	PaymentMethod string
	ProofRef      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// New returns a fresh session for a conversation.
func New(conversationID int64, now time.Time) Session {
	return Session{
		ConversationID: conversationID,
		State:          StateNew,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ResetForNextOrder clears order-scoped fields after a completed purchase
// while keeping the language preference and contact details.
func (s *Session) ResetForNextOrder(now time.Time) {
	s.State = StateMenu
	s.PackageCode = ""
	s.PaymentMethod = ""
	s.ProofRef = ""
	s.UpdatedAt = now
}

// Validate checks the field-presence invariant for the current state. A
// violation indicates a programming error in a transition, not bad user input.
func (s *Session) Validate() error {
	switch s.State {
	case StateNew, StateLangPending, StateMenu, StatePackageList:
	case StatePackageDetail, StatePaymentShown:
		if s.PackageCode == "" {
			return fmt.Errorf("session %d: state %s requires a selected package", s.ConversationID, s.State)
		}
	case StateAwaitingPhone, StateAwaitingProof:
		if s.PackageCode == "" {
			return fmt.Errorf("session %d: state %s requires a selected package", s.ConversationID, s.State)
		}
		if s.ProofRef != "" {
			return fmt.Errorf("session %d: state %s must not carry a proof yet", s.ConversationID, s.State)
		}
	default:
		return fmt.Errorf("session %d: unknown state %q", s.ConversationID, s.State)
	}
	return nil
}
