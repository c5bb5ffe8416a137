// Package catalog holds the immutable registry of purchasable packages.
// It is built once from configuration at startup and is safe for
// unsynchronized concurrent reads afterwards.
package catalog

import (
	"fmt"

	"github.com/aeiptv/salesbot/internal/config"
)

// Package is one purchasable subscription offer.
type Package struct {
	Code          string
	Name          string
	Price         int64
	Currency      string
	PaymentURL    string
	PaymentMethod string
	// details maps a language tag to description lines.
	details map[string][]string
}

// Details returns the description lines for the given language, falling back
// to the provided default language when the requested one is missing.
func (p *Package) Details(lang, fallback string) []string {
	if lines, ok := p.details[lang]; ok && len(lines) > 0 {
		return lines
	}
	return p.details[fallback]
}

// PriceTag renders the price with its currency, e.g. "250 AED".
func (p *Package) PriceTag() string {
	return fmt.Sprintf("%d %s", p.Price, p.Currency)
}

// Catalog is an ordered, code-addressable set of packages.
type Catalog struct {
	byCode  map[string]*Package
	ordered []*Package
}

// FromConfig builds the catalog from the validated configuration section.
func FromConfig(packages []config.PackageConfig) (*Catalog, error) {
	if len(packages) == 0 {
		return nil, fmt.Errorf("catalog: no packages configured")
	}
	c := &Catalog{byCode: make(map[string]*Package, len(packages))}
	for _, pc := range packages {
		if _, dup := c.byCode[pc.Code]; dup {
			return nil, fmt.Errorf("catalog: duplicate package code %q", pc.Code)
		}
		method := pc.PaymentMethod
		if method == "" {
			method = "link"
		}
		currency := pc.Currency
		if currency == "" {
			currency = "AED"
		}
		details := make(map[string][]string, len(pc.Details))
		for lang, lines := range pc.Details {
			details[lang] = append([]string(nil), lines...)
		}
		p := &Package{
			Code:          pc.Code,
			Name:          pc.Name,
			Price:         pc.Price,
			Currency:      currency,
			PaymentURL:    pc.PaymentURL,
			PaymentMethod: method,
			details:       details,
		}
		c.byCode[p.Code] = p
		c.ordered = append(c.ordered, p)
	}
	return c, nil
}

// Get returns the package for the given code.
func (c *Catalog) Get(code string) (*Package, bool) {
	p, ok := c.byCode[code]
	return p, ok
}

// All returns packages in configuration order for stable choice rendering.
func (c *Catalog) All() []*Package {
	return c.ordered
}

// Len reports the number of packages.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
