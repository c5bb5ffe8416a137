package catalog

import (
	"testing"

	"github.com/aeiptv/salesbot/internal/config"
)

func testPackages() []config.PackageConfig {
	return []config.PackageConfig{
		{
			Code:       "kids",
			Name:       "AEIPTV Kids",
			Price:      70,
			PaymentURL: "https://pay.example/kids",
			Details: map[string][]string{
				"en": {"Kids-safe channels", "Works on 1 device"},
			},
		},
		{
			Code:       "premium",
			Name:       "AEIPTV Premium",
			Price:      250,
			Currency:   "AED",
			PaymentURL: "https://pay.example/premium",
			Details: map[string][]string{
				"en": {"Full package combo"},
				"ar": {"الباقة الكاملة"},
			},
		},
	}
}

func TestFromConfigOrderAndLookup(t *testing.T) {
	c, err := FromConfig(testPackages())
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	all := c.All()
	if all[0].Code != "kids" || all[1].Code != "premium" {
		t.Fatalf("order not preserved: %s, %s", all[0].Code, all[1].Code)
	}
	p, ok := c.Get("premium")
	if !ok {
		t.Fatal("premium not found")
	}
	if p.PriceTag() != "250 AED" {
		t.Errorf("PriceTag = %q", p.PriceTag())
	}
	if p.PaymentMethod != "link" {
		t.Errorf("default payment method = %q, want link", p.PaymentMethod)
	}
	if _, ok := c.Get("nope"); ok {
		t.Error("unexpected hit for unknown code")
	}
}

func TestDetailsFallback(t *testing.T) {
	c, err := FromConfig(testPackages())
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	kids, _ := c.Get("kids")
	lines := kids.Details("ar", "en")
	if len(lines) != 2 || lines[0] != "Kids-safe channels" {
		t.Errorf("expected fallback to en lines, got %v", lines)
	}
	premium, _ := c.Get("premium")
	if got := premium.Details("ar", "en"); len(got) != 1 || got[0] != "الباقة الكاملة" {
		t.Errorf("expected ar lines, got %v", got)
	}
}

func TestFromConfigDuplicate(t *testing.T) {
	pkgs := testPackages()
	pkgs[1].Code = "kids"
	if _, err := FromConfig(pkgs); err == nil {
		t.Fatal("expected duplicate code error")
	}
}
