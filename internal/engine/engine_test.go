package engine

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aeiptv/salesbot/internal/catalog"
	"github.com/aeiptv/salesbot/internal/config"
	"github.com/aeiptv/salesbot/internal/i18n"
	"github.com/aeiptv/salesbot/internal/session"
)

func testEngine(t *testing.T, features config.FeatureConfig) *Engine {
	t.Helper()
	cat, err := catalog.FromConfig([]config.PackageConfig{
		{Code: "kids", Name: "Kids", Price: 70, Currency: "AED", PaymentURL: "https://pay.example/kids"},
		{Code: "premium", Name: "Premium", Price: 250, Currency: "AED", PaymentURL: "https://pay.example/premium",
			Details: map[string][]string{"en": {"• 12 months", "• All channels"}}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	e := New("AEIPTV", cat, i18n.New("en"), features)
	seq := 0
	e.newID = func() string {
		seq++
		return fmt.Sprintf("ORD-%012d", seq)
	}
	e.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return e
}

func multiLang() config.FeatureConfig {
	return config.FeatureConfig{
		Languages:       []string{"en", "ar"},
		DefaultLanguage: "en",
		CollectPhone:    true,
	}
}

func button(token, payload string) Event {
	return Event{Kind: EventButton, Token: token, Payload: payload}
}

func text(s string) Event {
	return Event{Kind: EventText, Text: s}
}

// step applies an event and returns the result while carrying the session
// forward through the scenario.
func step(t *testing.T, e *Engine, s *session.Session, from Identity, ev Event) Result {
	t.Helper()
	res := e.Handle(*s, from, ev)
	if err := res.Session.Validate(); err != nil {
		t.Fatalf("transition broke session invariant: %v", err)
	}
	*s = res.Session
	return res
}

func TestFullPurchaseScenario(t *testing.T) {
	e := testEngine(t, multiLang())
	from := Identity{UserID: 42, Username: "buyer", FullName: "Some Buyer"}
	s := session.New(42, time.Now())

	var notifications []Notification
	var orders int

	run := func(ev Event) Result {
		res := step(t, e, &s, from, ev)
		notifications = append(notifications, res.Notifications...)
		if res.Order != nil {
			orders++
		}
		return res
	}

	// first contact prompts for language
	res := run(text("hello"))
	if s.State != session.StateLangPending {
		t.Fatalf("state after first contact = %s", s.State)
	}
	if len(res.Reply.Rows) != 2 {
		t.Fatalf("expected one row per language, got %d", len(res.Reply.Rows))
	}

	run(button(TokenLang, "en"))
	if s.State != session.StateMenu || s.Lang != "en" {
		t.Fatalf("after language choice: state=%s lang=%q", s.State, s.Lang)
	}

	run(button(TokenSubscribe, ""))
	if s.State != session.StatePackageList {
		t.Fatalf("state = %s", s.State)
	}

	res = run(button(TokenPackage, "premium"))
	if s.State != session.StatePackageDetail || s.PackageCode != "premium" {
		t.Fatalf("after selection: state=%s pkg=%q", s.State, s.PackageCode)
	}
	if !strings.Contains(res.Reply.Text, "250 AED") {
		t.Errorf("package card misses price tag: %q", res.Reply.Text)
	}

	run(button(TokenAgree, "premium"))
	if s.State != session.StatePaymentShown {
		t.Fatalf("state = %s", s.State)
	}

	run(button(TokenPaid, "premium"))
	if s.State != session.StateAwaitingPhone {
		t.Fatalf("state = %s", s.State)
	}

	run(text("+971501234567"))
	if s.State != session.StateAwaitingProof || s.Phone != "+971501234567" {
		t.Fatalf("after phone: state=%s phone=%q", s.State, s.Phone)
	}

	res = run(text("TXN123"))
	if orders != 1 {
		t.Fatalf("orders = %d, want 1", orders)
	}
	ord := res.Order
	if ord.PackageName != "Premium" || ord.Price != 250 || ord.Phone != "+971501234567" || ord.ProofRef != "TXN123" {
		t.Fatalf("order snapshot mismatch: %+v", ord)
	}
	if s.State != session.StateMenu {
		t.Fatalf("completed purchase must land on menu, got %s", s.State)
	}
	if s.Lang != "en" || s.Phone != "+971501234567" {
		t.Error("language or phone lost after completion")
	}

	wantKinds := []NotificationKind{NotificationSelection, NotificationAgreement, NotificationNewOrder}
	if len(notifications) != len(wantKinds) {
		t.Fatalf("notifications = %d, want %d", len(notifications), len(wantKinds))
	}
	for i, n := range notifications {
		if n.Kind != wantKinds[i] {
			t.Errorf("notification[%d].Kind = %s, want %s", i, n.Kind, wantKinds[i])
		}
	}
	if !strings.Contains(notifications[2].Text, "New Payment Confirmation") ||
		!strings.Contains(notifications[2].Text, "+971501234567") {
		t.Errorf("new-order notification text: %q", notifications[2].Text)
	}
}

func TestSecondOrderGetsDistinctID(t *testing.T) {
	e := testEngine(t, multiLang())
	from := Identity{UserID: 7, Username: "repeat"}
	s := session.New(7, time.Now())

	buy := func(proof string) string {
		step(t, e, &s, from, button(TokenLang, "en"))
		step(t, e, &s, from, button(TokenSubscribe, ""))
		step(t, e, &s, from, button(TokenPackage, "kids"))
		step(t, e, &s, from, button(TokenAgree, "kids"))
		step(t, e, &s, from, button(TokenPaid, "kids"))
		if s.State == session.StateAwaitingPhone {
			step(t, e, &s, from, text("+971501234567"))
		}
		final := step(t, e, &s, from, text(proof))
		if final.Order == nil {
			t.Fatalf("no order for proof %q (state %s)", proof, s.State)
		}
		return final.Order.ID
	}

	first := buy("TXN-A")
	// phone is retained, so the second run must skip the phone prompt
	second := buy("TXN-B")
	if first == second {
		t.Fatalf("order ids must differ, both %q", first)
	}
}

func TestHandleIsDeterministic(t *testing.T) {
	e := testEngine(t, multiLang())
	from := Identity{UserID: 1, Username: "u"}
	s := session.New(1, time.Now())
	s.Lang = "en"
	s.State = session.StatePackageList

	a := e.Handle(s, from, button(TokenPackage, "premium"))
	b := e.Handle(s, from, button(TokenPackage, "premium"))
	if a.Session != b.Session {
		t.Errorf("sessions differ:\n%+v\n%+v", a.Session, b.Session)
	}
	if a.Reply.Text != b.Reply.Text || len(a.Reply.Rows) != len(b.Reply.Rows) {
		t.Error("replies differ for identical input")
	}
}

func TestUnknownPackageReoffersList(t *testing.T) {
	e := testEngine(t, multiLang())
	s := session.New(1, time.Now())
	s.Lang = "en"
	s.State = session.StatePackageList

	res := e.Handle(s, Identity{UserID: 1}, button(TokenPackage, "gone"))
	if res.Session.State != session.StatePackageList {
		t.Errorf("state = %s", res.Session.State)
	}
	if res.Session.PackageCode != "" {
		t.Error("unknown code must not stick to the session")
	}
	if len(res.Notifications) != 0 || res.Order != nil {
		t.Error("unknown package must not emit side effects")
	}
	if !strings.Contains(res.Reply.Text, "not found") {
		t.Errorf("reply = %q", res.Reply.Text)
	}
}

func TestUnknownTokenFallsBack(t *testing.T) {
	e := testEngine(t, multiLang())
	s := session.New(1, time.Now())
	s.Lang = "en"
	s.State = session.StatePackageDetail
	s.PackageCode = "premium"

	res := e.Handle(s, Identity{UserID: 1}, button("bogus", "x"))
	if res.Session.State != session.StatePackageDetail {
		t.Errorf("fallback must keep state, got %s", res.Session.State)
	}
	if len(res.Reply.Rows) == 0 {
		t.Error("fallback reply must offer a way out")
	}
}

func TestRepeatedPaidTapIsIdempotent(t *testing.T) {
	e := testEngine(t, multiLang())
	from := Identity{UserID: 9}
	s := session.New(9, time.Now())
	s.Lang = "en"
	s.State = session.StatePaymentShown
	s.PackageCode = "premium"
	s.Phone = "+971501234567"

	first := step(t, e, &s, from, button(TokenPaid, "premium"))
	if s.State != session.StateAwaitingProof {
		t.Fatalf("state = %s", s.State)
	}
	second := step(t, e, &s, from, button(TokenPaid, "premium"))
	if s.State != session.StateAwaitingProof {
		t.Fatalf("second tap moved state to %s", s.State)
	}
	if first.Reply.Text != second.Reply.Text {
		t.Error("repeated tap should re-issue the same prompt")
	}
	if len(second.Notifications) != 0 || second.Order != nil {
		t.Error("repeated tap must not emit side effects")
	}
}

func TestSingleLanguageSkipsPrompt(t *testing.T) {
	e := testEngine(t, config.FeatureConfig{
		Languages:       []string{"en"},
		DefaultLanguage: "en",
		CollectPhone:    false,
	})
	s := session.New(5, time.Now())

	res := e.Handle(s, Identity{UserID: 5}, text("hi"))
	if res.Session.State != session.StateMenu || res.Session.Lang != "en" {
		t.Fatalf("state=%s lang=%q", res.Session.State, res.Session.Lang)
	}
}

func TestPhoneCollectionDisabled(t *testing.T) {
	e := testEngine(t, config.FeatureConfig{
		Languages:       []string{"en"},
		DefaultLanguage: "en",
		CollectPhone:    false,
	})
	s := session.New(5, time.Now())
	s.Lang = "en"
	s.State = session.StatePaymentShown
	s.PackageCode = "kids"

	res := e.Handle(s, Identity{UserID: 5}, button(TokenPaid, "kids"))
	if res.Session.State != session.StateAwaitingProof {
		t.Fatalf("state = %s, want proof prompt without phone step", res.Session.State)
	}
}

func TestInvalidPhoneReprompts(t *testing.T) {
	e := testEngine(t, multiLang())
	s := session.New(2, time.Now())
	s.Lang = "en"
	s.State = session.StateAwaitingPhone
	s.PackageCode = "premium"

	for _, raw := range []string{"abc", "123", "+971 call me"} {
		res := e.Handle(s, Identity{UserID: 2}, text(raw))
		if res.Session.State != session.StateAwaitingPhone {
			t.Errorf("%q: state = %s", raw, res.Session.State)
		}
		if res.Session.Phone != "" {
			t.Errorf("%q: phone stored as %q", raw, res.Session.Phone)
		}
	}
}

func TestSharedContactAcceptedAsPhone(t *testing.T) {
	e := testEngine(t, multiLang())
	s := session.New(3, time.Now())
	s.Lang = "en"
	s.State = session.StateAwaitingPhone
	s.PackageCode = "premium"

	res := e.Handle(s, Identity{UserID: 3}, Event{
		Kind:    EventContact,
		Contact: &Contact{Phone: "00971 50 123 4567", Name: "Jo Buyer"},
	})
	if res.Session.Phone != "+971501234567" {
		t.Errorf("phone = %q", res.Session.Phone)
	}
	if res.Session.ContactName != "Jo Buyer" {
		t.Errorf("contact name = %q", res.Session.ContactName)
	}
	if res.Session.State != session.StateAwaitingProof {
		t.Errorf("state = %s", res.Session.State)
	}
}

func TestEmptyProofReprompts(t *testing.T) {
	e := testEngine(t, multiLang())
	s := session.New(4, time.Now())
	s.Lang = "en"
	s.State = session.StateAwaitingProof
	s.PackageCode = "kids"
	s.Phone = "+971501234567"

	res := e.Handle(s, Identity{UserID: 4}, text("   "))
	if res.Order != nil || res.Session.State != session.StateAwaitingProof {
		t.Errorf("blank proof accepted: order=%v state=%s", res.Order, res.Session.State)
	}
}

func TestFreeTextMidFlowShowsMenuWithoutLosingSelection(t *testing.T) {
	e := testEngine(t, multiLang())
	s := session.New(6, time.Now())
	s.Lang = "en"
	s.State = session.StatePackageDetail
	s.PackageCode = "premium"

	res := e.Handle(s, Identity{UserID: 6}, text("what is this"))
	if res.Session.State != session.StateMenu {
		t.Errorf("state = %s", res.Session.State)
	}
	if res.Session.PackageCode != "premium" {
		t.Error("free text must not clear the selection")
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"+971501234567", "+971501234567", true},
		{"00971 50 123 4567", "+971501234567", true},
		{"050-123-4567", "0501234567", true},
		{"(971) 50.123.4567", "971501234567", true},
		{"abc", "", false},
		{"123", "", false},
		{"+9715012345678901234", "", false},
		{"50+1234567", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizePhone(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
