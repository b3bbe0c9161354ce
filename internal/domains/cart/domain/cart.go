package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/shared/pricing"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrMissingProduct  = errors.New("cart entry has no product id")
	ErrDuplicateEntry  = errors.New("cart holds the product twice")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrTooManyUnits    = errors.New("cart quantity is too large")
)

// ProductSnapshot is a copy of a catalog product taken when it was put in the cart.
type ProductSnapshot struct {
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

// Clone returns a deep copy.
func (p ProductSnapshot) Clone() ProductSnapshot {
	clone := p
	if p.DiscountPercent != nil {
		d := *p.DiscountPercent
		clone.DiscountPercent = &d
	}
	clone.SizeIDs = append([]string(nil), p.SizeIDs...)
	return clone
}

// Entry is one product line in the cart.
type Entry struct {
	Product  ProductSnapshot
	Quantity int
}

// PricingLine projects the entry for the pricing package.
func (e Entry) PricingLine() pricing.Line {
	return pricing.Line{
		BasePrice:       e.Product.Price,
		DiscountPercent: e.Product.DiscountPercent,
		Quantity:        e.Quantity,
	}
}

// Cart keeps one entry per product in insertion order.
type Cart struct {
	entries []Entry
}

func NewCart() *Cart {
	return &Cart{}
}

// Restore builds a cart from persisted entries, rejecting anything a live cart could not hold.
func Restore(entries []Entry) (*Cart, error) {
	c := &Cart{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		c.entries = append(c.entries, Entry{Product: e.Product.Clone(), Quantity: e.Quantity})
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that every entry names a distinct product with a positive
// quantity and that the unit count fits in an int.
func (c *Cart) Validate() error {
	units := 0
	for i, e := range c.entries {
		if e.Product.ID == "" {
			return ErrMissingProduct
		}
		if e.Quantity < 1 {
			return fmt.Errorf("product %q: %w", e.Product.ID, ErrInvalidQuantity)
		}
		if units > math.MaxInt-e.Quantity {
			return fmt.Errorf("product %q: %w", e.Product.ID, ErrTooManyUnits)
		}
		units += e.Quantity
		if c.index(e.Product.ID) != i {
			return fmt.Errorf("product %q: %w", e.Product.ID, ErrDuplicateEntry)
		}
	}
	return nil
}

// Add increments the entry for product, appending one when absent.
func (c *Cart) Add(product ProductSnapshot, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if product.ID == "" {
		return ErrMissingProduct
	}
	if c.ItemCount() > math.MaxInt-quantity {
		return ErrTooManyUnits
	}
	if idx := c.index(product.ID); idx >= 0 {
		c.entries[idx].Quantity += quantity
		return nil
	}
	c.entries = append(c.entries, Entry{Product: product.Clone(), Quantity: quantity})
	return nil
}

// Remove deletes the entry for productID and reports whether one existed.
func (c *Cart) Remove(productID string) bool {
	idx := c.index(productID)
	if idx < 0 {
		return false
	}
	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	return true
}

// UpdateQuantity sets the quantity. Zero or less removes the entry.
// It reports whether an entry was touched.
func (c *Cart) UpdateQuantity(productID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return c.Remove(productID), nil
	}
	idx := c.index(productID)
	if idx < 0 {
		return false, nil
	}
	if c.ItemCount()-c.entries[idx].Quantity > math.MaxInt-quantity {
		return false, ErrTooManyUnits
	}
	c.entries[idx].Quantity = quantity
	return true, nil
}

func (c *Cart) Clear() {
	c.entries = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// Entries returns copies in display order.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, Entry{Product: e.Product.Clone(), Quantity: e.Quantity})
	}
	return out
}

func (c *Cart) ItemCount() int {
	return pricing.ItemCount(c.lines())
}

// Total is the unrounded sum of effective prices times quantities.
func (c *Cart) Total() (decimal.Decimal, error) {
	return pricing.CartTotal(c.lines())
}

func (c *Cart) lines() []pricing.Line {
	lines := make([]pricing.Line, 0, len(c.entries))
	for _, e := range c.entries {
		lines = append(lines, e.PricingLine())
	}
	return lines
}

func (c *Cart) index(productID string) int {
	for i, e := range c.entries {
		if e.Product.ID == productID {
			return i
		}
	}
	return -1
}
