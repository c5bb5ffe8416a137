package engine

import (
	"fmt"
	"time"

	"github.com/aeiptv/salesbot/internal/catalog"
	"github.com/aeiptv/salesbot/internal/order"
)

// Admin notifications are rendered in English regardless of the user's
// language; they address the operator, not the customer.

func (e *Engine) selectionNotification(from Identity, pkg *catalog.Package) Notification {
	return Notification{
		Kind: NotificationSelection,
		Text: fmt.Sprintf(
			"📦 Package selected\n\nUser: @%s (id: %d)\nName: %s\nPackage: %s (%s)",
			orNA(from.Username), from.UserID, orNA(from.FullName),
			pkg.Name, pkg.PriceTag(),
		),
	}
}

func (e *Engine) agreementNotification(from Identity, pkg *catalog.Package) Notification {
	return Notification{
		Kind: NotificationAgreement,
		Text: fmt.Sprintf(
			"✅ Terms accepted\n\nUser: @%s (id: %d)\nPackage: %s (%s)",
			orNA(from.Username), from.UserID, pkg.Name, pkg.PriceTag(),
		),
	}
}

func (e *Engine) newOrderNotification(from Identity, ord *order.Order) Notification {
	return Notification{
		Kind: NotificationNewOrder,
		Text: fmt.Sprintf(
			"🆕 New Payment Confirmation\n\n"+
				"Order: %s\nUser: @%s (id: %d)\nName: %s\nPackage: %s\n"+
				"Price: %d %s\nPhone: %s\nProof: %s\nTime: %s",
			ord.ID, orNA(from.Username), from.UserID, orNA(ord.ContactName),
			ord.PackageName, ord.Price, ord.Currency,
			orNA(ord.Phone), ord.ProofRef,
			ord.CompletedAt.UTC().Format(time.RFC3339),
		),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
