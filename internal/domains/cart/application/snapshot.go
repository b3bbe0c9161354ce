package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// ErrMalformedSnapshot marks persisted cart data that cannot be decoded.
var ErrMalformedSnapshot = errors.New("malformed cart snapshot")

type snapshotEntry struct {
	Product  snapshotProduct `json:"product"`
	Quantity int             `json:"quantity"`
}

type snapshotProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Discount    *int            `json:"discount,omitempty"`
	BrandID     string          `json:"brandId"`
	Image       string          `json:"image,omitempty"`
	Sizes       []string        `json:"sizes"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// EncodeSnapshot serializes entries as a JSON array with ISO-8601 dates.
func EncodeSnapshot(entries []domain.Entry) (string, error) {
	out := make([]snapshotEntry, 0, len(entries))
	for _, e := range entries {
		p := e.Product
		sizes := p.SizeIDs
		if sizes == nil {
			sizes = []string{}
		}
		out = append(out, snapshotEntry{
			Product: snapshotProduct{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				Discount:    p.DiscountPercent,
				BrandID:     p.BrandID,
				Image:       p.Image,
				Sizes:       sizes,
				CreatedAt:   formatTime(p.CreatedAt),
				UpdatedAt:   formatTime(p.UpdatedAt),
			},
			Quantity: e.Quantity,
		})
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeSnapshot parses a value written by EncodeSnapshot. Any failure wraps ErrMalformedSnapshot.
func DecodeSnapshot(value string) (*domain.Cart, error) {
	if strings.TrimSpace(value) == "" {
		return domain.NewCart(), nil
	}
	var raw []snapshotEntry
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	entries := make([]domain.Entry, 0, len(raw))
	for _, e := range raw {
		created, err := parseTime(e.Product.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: product %q createdAt: %w", ErrMalformedSnapshot, e.Product.ID, err)
		}
		updated, err := parseTime(e.Product.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: product %q updatedAt: %w", ErrMalformedSnapshot, e.Product.ID, err)
		}
		if e.Product.Price.IsNegative() {
			return nil, fmt.Errorf("%w: product %q has a negative price", ErrMalformedSnapshot, e.Product.ID)
		}
		if d := e.Product.Discount; d != nil && (*d < 0 || *d > 100) {
			return nil, fmt.Errorf("%w: product %q discount out of range", ErrMalformedSnapshot, e.Product.ID)
		}
		entries = append(entries, domain.Entry{
			Product: domain.ProductSnapshot{
				ID:              e.Product.ID,
				Name:            e.Product.Name,
				Description:     e.Product.Description,
				Price:           e.Product.Price,
				DiscountPercent: e.Product.Discount,
				BrandID:         e.Product.BrandID,
				Image:           e.Product.Image,
				SizeIDs:         e.Product.Sizes,
				CreatedAt:       created,
				UpdatedAt:       updated,
			},
			Quantity: e.Quantity,
		})
	}
	cart, err := domain.Restore(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	return cart, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
