package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pricing"
)

// Store owns one cart and writes the whole collection through to a SnapshotStore after every change.
type Store struct {
	key       string
	cart      *domain.Cart
	snapshots ports.SnapshotStore
	notifier  ports.Notifier
	logger    *slog.Logger
}

// StoreOption customises a Store.
type StoreOption func(*Store)

func WithNotifier(n ports.Notifier) StoreOption {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open rehydrates the cart stored under key. A malformed snapshot is logged,
// cleared, and replaced by an empty cart; storage errors are returned.
func Open(ctx context.Context, key string, snapshots ports.SnapshotStore, opts ...StoreOption) (*Store, error) {
	if snapshots == nil {
		return nil, errors.New("cart snapshot store is nil")
	}
	s := &Store{
		key:       key,
		cart:      domain.NewCart(),
		snapshots: snapshots,
		notifier:  noopNotifier{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	value, ok, err := snapshots.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load cart %q: %w", key, err)
	}
	if !ok {
		return s, nil
	}
	cart, err := DecodeSnapshot(value)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding malformed cart snapshot",
			slog.String("cart.key", key), slog.String("error", err.Error()))
		if clearErr := snapshots.Clear(ctx, key); clearErr != nil {
			return nil, fmt.Errorf("clear malformed cart %q: %w", key, clearErr)
		}
		return s, nil
	}
	s.cart = cart
	return s, nil
}

func (s *Store) Key() string { return s.key }

// Add puts quantity units of product in the cart.
func (s *Store) Add(ctx context.Context, product domain.ProductSnapshot, quantity int) error {
	if err := s.cart.Add(product, quantity); err != nil {
		return err
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notify(ctx, ports.NotificationSuccess, "Added to cart", fmt.Sprintf("%s was added to your cart.", product.Name))
	return nil
}

// Remove drops the product. Removing an absent product is not an error.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.cart.Remove(productID)
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notify(ctx, ports.NotificationError, "Removed from cart", "The item was removed from your cart.")
	return nil
}

// UpdateQuantity sets the quantity; zero or less behaves like Remove.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}
	if _, err := s.cart.UpdateQuantity(productID, quantity); err != nil {
		return err
	}
	return s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.Drain(ctx); err != nil {
		return err
	}
	s.notify(ctx, ports.NotificationSuccess, "Cart cleared", "All items were removed from your cart.")
	return nil
}

// Drain empties the cart without notifying; checkout reports its own outcome.
func (s *Store) Drain(ctx context.Context) error {
	s.cart.Clear()
	return s.persist(ctx)
}

func (s *Store) Entries() []domain.Entry { return s.cart.Entries() }

func (s *Store) IsEmpty() bool { return s.cart.IsEmpty() }

func (s *Store) ItemCount() int { return s.cart.ItemCount() }

// Total is the unrounded cart total.
func (s *Store) Total() (decimal.Decimal, error) { return s.cart.Total() }

// View assembles the read model, rounding the total for display only.
func (s *Store) View() (*ports.CartView, error) {
	total, err := s.cart.Total()
	if err != nil {
		return nil, err
	}
	return &ports.CartView{
		ID:           s.key,
		Entries:      s.cart.Entries(),
		ItemCount:    s.cart.ItemCount(),
		Total:        total,
		DisplayTotal: pricing.DisplayAmount(total),
	}, nil
}

func (s *Store) notify(ctx context.Context, kind ports.NotificationKind, title, message string) {
	s.notifier.Notify(ctx, ports.Notification{Kind: kind, Title: title, Message: message, CartID: s.key})
}

// persist refuses to write a cart that Open could not load back.
func (s *Store) persist(ctx context.Context) error {
	if err := s.cart.Validate(); err != nil {
		return err
	}
	value, err := EncodeSnapshot(s.cart.Entries())
	if err != nil {
		return fmt.Errorf("encode cart %q: %w", s.key, err)
	}
	if err := s.snapshots.Save(ctx, s.key, value); err != nil {
		return fmt.Errorf("save cart %q: %w", s.key, err)
	}
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, ports.Notification) {}
