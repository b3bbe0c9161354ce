package application

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

const lockStripes = 64

// Service runs cart use cases for many carts. Calls for the same cart id are
// serialized in-process; each call reloads the snapshot, mutates, and writes it back.
type Service struct {
	snapshots ports.SnapshotStore
	catalog   ports.ProductCatalog
	notifier  ports.Notifier
	logger    *slog.Logger
	locks     [lockStripes]sync.Mutex
}

type Option func(*Service)

func WithServiceNotifier(n ports.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the cart service.
func NewService(snapshots ports.SnapshotStore, catalog ports.ProductCatalog, opts ...Option) *Service {
	s := &Service{
		snapshots: snapshots,
		catalog:   catalog,
		notifier:  noopNotifier{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) GetCart(ctx context.Context, cartID string) (*ports.CartView, error) {
	var view *ports.CartView
	err := s.withStore(ctx, cartID, func(store *Store) error {
		var err error
		view, err = store.View()
		return err
	})
	return view, mapError(err)
}

// AddItem resolves productID through the catalog and adds quantity units of it.
func (s *Service) AddItem(ctx context.Context, cartID, productID string, quantity int) (*ports.CartView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, mapError(domain.ErrMissingProduct)
	}
	if quantity < 1 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	var view *ports.CartView
	err = s.withStore(ctx, cartID, func(store *Store) error {
		if err := store.Add(ctx, product, quantity); err != nil {
			return err
		}
		var err error
		view, err = store.View()
		return err
	})
	return view, mapError(err)
}

// UpdateItem sets the quantity of productID; zero or less removes it.
func (s *Service) UpdateItem(ctx context.Context, cartID, productID string, quantity int) (*ports.CartView, error) {
	var view *ports.CartView
	err := s.withStore(ctx, cartID, func(store *Store) error {
		if err := store.UpdateQuantity(ctx, productID, quantity); err != nil {
			return err
		}
		var err error
		view, err = store.View()
		return err
	})
	return view, mapError(err)
}

func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (*ports.CartView, error) {
	var view *ports.CartView
	err := s.withStore(ctx, cartID, func(store *Store) error {
		if err := store.Remove(ctx, productID); err != nil {
			return err
		}
		var err error
		view, err = store.View()
		return err
	})
	return view, mapError(err)
}

func (s *Service) Clear(ctx context.Context, cartID string) (*ports.CartView, error) {
	var view *ports.CartView
	err := s.withStore(ctx, cartID, func(store *Store) error {
		if err := store.Clear(ctx); err != nil {
			return err
		}
		var err error
		view, err = store.View()
		return err
	})
	return view, mapError(err)
}

// Checkout passes the current entries to place while holding the cart lock.
// The cart is cleared only when place succeeds.
func (s *Service) Checkout(ctx context.Context, cartID string, place ports.PlaceFunc) error {
	if place == nil {
		return errors.New("checkout requires a place function")
	}
	err := s.withStore(ctx, cartID, func(store *Store) error {
		if store.IsEmpty() {
			s.notify(ctx, cartID, ports.NotificationError, "Cart is empty", "Add items to your cart before checking out.")
			return domain.ErrEmptyCart
		}
		if err := place(ctx, store.Entries()); err != nil {
			if errors.Is(err, ports.ErrCheckoutSkipped) {
				return err
			}
			s.notify(ctx, cartID, ports.NotificationError, "Checkout failed", "The order could not be placed. Please try again.")
			return err
		}
		if err := store.Drain(ctx); err != nil {
			return err
		}
		s.notify(ctx, cartID, ports.NotificationSuccess, "Order placed", "Your order was placed and is awaiting confirmation.")
		return nil
	})
	return mapError(err)
}

func (s *Service) withStore(ctx context.Context, cartID string, fn func(*Store) error) error {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return validation.Field("cartId", "is required")
	}
	mu := s.lockFor(cartID)
	mu.Lock()
	defer mu.Unlock()

	store, err := Open(ctx, cartID, s.snapshots, WithNotifier(s.notifier), WithStoreLogger(s.logger))
	if err != nil {
		return err
	}
	return fn(store)
}

func (s *Service) lockFor(cartID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(cartID))
	return &s.locks[h.Sum32()%lockStripes]
}

func (s *Service) notify(ctx context.Context, cartID string, kind ports.NotificationKind, title, message string) {
	s.notifier.Notify(ctx, ports.Notification{Kind: kind, Title: title, Message: message, CartID: cartID})
}

var _ ports.Service = (*Service)(nil)
