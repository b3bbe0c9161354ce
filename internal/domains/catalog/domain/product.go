package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/shared/pricing"
)

var (
	ErrEmptyProductName = errors.New("product name is required")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrInvalidDiscount  = errors.New("discount must be between 0 and 100")
	ErrMissingBrand     = errors.New("product brand is required")
)

// Product is a catalog item. Prices are in whole currency units.
type Product struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	DiscountPercent *int
	BrandID         string
	Image           string
	SizeIDs         []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate enforces the product invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyProductName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.DiscountPercent != nil && (*p.DiscountPercent < 0 || *p.DiscountPercent > 100) {
		return ErrInvalidDiscount
	}
	if strings.TrimSpace(p.BrandID) == "" {
		return ErrMissingBrand
	}
	return nil
}

// EffectivePrice is the discounted, unrounded price.
func (p *Product) EffectivePrice() (decimal.Decimal, error) {
	return pricing.EffectivePrice(p.Price, p.DiscountPercent)
}

// HasSize reports whether sizeID is in the product's size set.
func (p *Product) HasSize(sizeID string) bool {
	for _, id := range p.SizeIDs {
		if id == sizeID {
			return true
		}
	}
	return false
}

// ReplaceSize swaps oldID for newID in the size set. It reports whether anything changed.
func (p *Product) ReplaceSize(oldID, newID string) bool {
	changed := false
	for i, id := range p.SizeIDs {
		if id == oldID {
			p.SizeIDs[i] = newID
			changed = true
		}
	}
	return changed
}

// Clone returns a deep copy.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	if p.DiscountPercent != nil {
		d := *p.DiscountPercent
		clone.DiscountPercent = &d
	}
	clone.SizeIDs = append([]string{}, p.SizeIDs...)
	return &clone
}
