// Package order defines the immutable purchase snapshot written to the ledger.
package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Order captures the session fields at the moment payment proof is accepted.
// It is write-once: created by the engine, appended to the ledger, never read
// back or mutated.
type Order struct {
	ID             string    `db:"id" json:"id"`
	ConversationID int64     `db:"conversation_id" json:"conversation_id"`
	Username       string    `db:"username" json:"username,omitempty"`
	ContactName    string    `db:"contact_name" json:"contact_name,omitempty"`
	PackageCode    string    `db:"package_code" json:"package_code"`
	PackageName    string    `db:"package_name" json:"package_name"`
	Price          int64     `db:"price" json:"price"`
	Currency       string    `db:"currency" json:"currency"`
	Phone          string    `db:"phone" json:"phone,omitempty"`
	PaymentMethod  string    `db:"payment_method" json:"payment_method"`
	ProofRef       string    `db:"proof_ref" json:"proof_ref"`
	CompletedAt    time.Time `db:"completed_at" json:"completed_at"`
}

const (
	idPrefix = "ORD-"
	idLength = 12
)

// NewID generates an order identifier: a fixed prefix plus 12 symbols drawn
// from a random UUID, long enough to make collisions negligible.
func NewID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return idPrefix + strings.ToUpper(raw[:idLength])
}
