package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// ErrProductNotFound is returned by a ProductCatalog for unknown product ids.
var ErrProductNotFound = errors.New("product not found")

// ErrCheckoutSkipped may be returned by a PlaceFunc to leave the cart untouched
// without reporting a failed checkout.
var ErrCheckoutSkipped = errors.New("checkout skipped")

// SnapshotStore is a string-valued key/value store for serialized carts.
type SnapshotStore interface {
	Save(ctx context.Context, key, value string) error
	// Load reports ok=false when nothing is stored under key.
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Clear(ctx context.Context, key string) error
}

// NotificationKind distinguishes success toasts from destructive ones.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a user-facing message emitted by cart and checkout flows.
type Notification struct {
	Kind    NotificationKind
	Title   string
	Message string
	CartID  string
}

// Notifier delivers notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// ProductCatalog resolves product ids into snapshots for the cart.
type ProductCatalog interface {
	Product(ctx context.Context, id string) (domain.ProductSnapshot, error)
}
