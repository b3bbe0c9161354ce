package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/shared/pricing"
)

// Status enumerates order progression.
type Status string

const (
	StatusPendingPayment       Status = "pending_payment"
	StatusProcessing           Status = "processing"
	StatusAwaitingShipment     Status = "awaiting_shipment"
	StatusShipped              Status = "shipped"
	StatusInTransit            Status = "in_transit"
	StatusDelivered            Status = "delivered"
	StatusCancelled            Status = "cancelled"
	StatusAwaitingConfirmation Status = "awaiting_confirmation"
)

const (
	// DefaultLineImage replaces a missing product image on order lines.
	DefaultLineImage = "https://placehold.co/80x100.png"
	// DefaultShippingAddress is attached to every new order until addresses are collected.
	DefaultShippingAddress = "1 Example Street, Apt 2, Moscow"
)

var (
	ErrEmptyCart       = errors.New("cannot place an order from an empty cart")
	ErrMissingUser     = errors.New("user id is required")
	ErrMissingID       = errors.New("order id and number are required")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidStatus   = errors.New("order status is invalid")
)

// Item is what the customer is buying: the catalog fields needed to price and describe one line.
type Item struct {
	ProductID       string
	Name            string
	Image           string
	Price           decimal.Decimal
	DiscountPercent *int
	Quantity        int
}

// Line is an immutable snapshot of a purchased product.
type Line struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Image       string
}

// Total is the already rounded unit price times quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order models a placed purchase.
type Order struct {
	ID              string
	UserID          string
	Number          string
	OrderDate       time.Time
	Lines           []Line
	Total           decimal.Decimal
	Status          Status
	ShippingAddress string
	TrackingNumber  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder derives an order from the items being bought. Unit prices are
// frozen at derivation time and the total is the sum of line totals.
// New orders always start as awaiting confirmation.
func NewOrder(id, number, userID string, items []Item, at time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingUser
	}
	if strings.TrimSpace(id) == "" || strings.TrimSpace(number) == "" {
		return nil, ErrMissingID
	}
	lines := make([]Line, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		unit, err := pricing.UnitPrice(item.Price, item.DiscountPercent)
		if err != nil {
			return nil, err
		}
		image := item.Image
		if strings.TrimSpace(image) == "" {
			image = DefaultLineImage
		}
		line := Line{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   unit,
			Image:       image,
		}
		lines = append(lines, line)
		total = total.Add(line.Total())
	}
	return &Order{
		ID:              id,
		UserID:          userID,
		Number:          number,
		OrderDate:       at,
		Lines:           lines,
		Total:           total,
		Status:          StatusAwaitingConfirmation,
		ShippingAddress: DefaultShippingAddress,
		CreatedAt:       at,
		UpdatedAt:       at,
	}, nil
}

// Validate re-checks stored invariants before persistence.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" || strings.TrimSpace(o.Number) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(o.UserID) == "" {
		return ErrMissingUser
	}
	if len(o.Lines) == 0 {
		return ErrEmptyCart
	}
	if !o.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// ItemCount sums line quantities.
func (o *Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Lines = append([]Line(nil), o.Lines...)
	return &c
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusProcessing, StatusAwaitingShipment, StatusShipped,
		StatusInTransit, StatusDelivered, StatusCancelled, StatusAwaitingConfirmation:
		return true
	default:
		return false
	}
}

// SortNewestFirst orders by order date descending, keeping the input order for ties.
func SortNewestFirst(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
}
