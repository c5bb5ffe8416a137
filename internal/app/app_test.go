package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/aeiptv/salesbot/internal/catalog"
	"github.com/aeiptv/salesbot/internal/config"
	"github.com/aeiptv/salesbot/internal/engine"
	"github.com/aeiptv/salesbot/internal/i18n"
	"github.com/aeiptv/salesbot/internal/ledger"
	"github.com/aeiptv/salesbot/internal/order"
	"github.com/aeiptv/salesbot/internal/session"
)

type failingLedger struct{}

func (failingLedger) Append(context.Context, order.Order) error {
	return errors.New("disk full")
}
func (failingLedger) Close() error { return nil }

type recordingNotifier struct {
	mu    sync.Mutex
	kinds []engine.NotificationKind
}

func (r *recordingNotifier) Notify(_ context.Context, n engine.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, n.Kind)
}

func testApp(t *testing.T, led ledger.Ledger, notifier *recordingNotifier) *App {
	t.Helper()
	cat, err := catalog.FromConfig([]config.PackageConfig{
		{Code: "premium", Name: "Premium", Price: 250, Currency: "AED", PaymentURL: "https://pay.example/premium"},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	eng := engine.New("AEIPTV", cat, i18n.New("en"), config.FeatureConfig{
		Languages:       []string{"en"},
		DefaultLanguage: "en",
		CollectPhone:    true,
	})
	return New(eng, session.NewMemoryStore(), led, notifier)
}

func button(token, payload string) engine.Event {
	return engine.Event{Kind: engine.EventButton, Token: token, Payload: payload}
}

func text(s string) engine.Event {
	return engine.Event{Kind: engine.EventText, Text: s}
}

func runPurchase(t *testing.T, a *App, convID int64) engine.Reply {
	t.Helper()
	ctx := context.Background()
	from := engine.Identity{UserID: convID, Username: "buyer"}

	a.HandleEvent(ctx, convID, from, button(engine.TokenSubscribe, ""))
	a.HandleEvent(ctx, convID, from, button(engine.TokenPackage, "premium"))
	a.HandleEvent(ctx, convID, from, button(engine.TokenAgree, "premium"))
	a.HandleEvent(ctx, convID, from, button(engine.TokenPaid, "premium"))
	a.HandleEvent(ctx, convID, from, text("+971501234567"))
	return a.HandleEvent(ctx, convID, from, text("TXN123"))
}

func TestPurchaseAppendsOrderAndNotifies(t *testing.T) {
	led := ledger.NewMemory()
	notifier := &recordingNotifier{}
	a := testApp(t, led, notifier)

	reply := runPurchase(t, a, 42)
	if !strings.Contains(reply.Text, "Thank you") {
		t.Fatalf("final reply = %q", reply.Text)
	}

	orders := led.Orders()
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	if orders[0].PackageCode != "premium" || orders[0].ProofRef != "TXN123" {
		t.Fatalf("order = %+v", orders[0])
	}

	want := []engine.NotificationKind{
		engine.NotificationSelection,
		engine.NotificationAgreement,
		engine.NotificationNewOrder,
	}
	if len(notifier.kinds) != len(want) {
		t.Fatalf("notifications = %v", notifier.kinds)
	}
	for i, k := range want {
		if notifier.kinds[i] != k {
			t.Errorf("notification[%d] = %s, want %s", i, notifier.kinds[i], k)
		}
	}
}

func TestLedgerFailureDoesNotBlockReply(t *testing.T) {
	notifier := &recordingNotifier{}
	a := testApp(t, failingLedger{}, notifier)

	reply := runPurchase(t, a, 7)
	if !strings.Contains(reply.Text, "Thank you") {
		t.Fatalf("ledger failure leaked to the user: %q", reply.Text)
	}
	// the new-order notification still goes out
	if len(notifier.kinds) == 0 || notifier.kinds[len(notifier.kinds)-1] != engine.NotificationNewOrder {
		t.Fatalf("notifications = %v", notifier.kinds)
	}
}

func TestConcurrentConversationsStayIsolated(t *testing.T) {
	led := ledger.NewMemory()
	notifier := &recordingNotifier{}
	a := testApp(t, led, notifier)

	const conversations = 8
	var wg sync.WaitGroup
	wg.Add(conversations)
	for i := 0; i < conversations; i++ {
		go func(convID int64) {
			defer wg.Done()
			runPurchase(t, a, convID)
		}(int64(i + 1))
	}
	wg.Wait()

	orders := led.Orders()
	if len(orders) != conversations {
		t.Fatalf("orders = %d, want %d", len(orders), conversations)
	}
	seen := make(map[int64]bool, conversations)
	for _, ord := range orders {
		if seen[ord.ConversationID] {
			t.Errorf("conversation %d produced more than one order", ord.ConversationID)
		}
		seen[ord.ConversationID] = true
	}
}
