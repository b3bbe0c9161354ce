package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	types "github.com/Apurer/go-gin-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

// Service orchestrates order derivation, checkout, and history.
type Service struct {
	repo        ports.Repository
	ids         ports.IDGenerator
	now         func() time.Time
	cart        ports.Cart
	store       ports.StoreStatus
	workflows   ports.WorkflowOrchestrator
	idempotency ports.IdempotencyStore
	logger      *slog.Logger
}

type Option func(*Service)

func WithIDGenerator(ids ports.IDGenerator) Option {
	return func(s *Service) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithCart enables Checkout by wiring the cart it drains.
func WithCart(cart ports.Cart) Option {
	return func(s *Service) {
		s.cart = cart
	}
}

func WithStoreStatus(store ports.StoreStatus) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithWorkflows routes order placement during checkout through an orchestrator.
// Without one, Checkout calls CreateOrder directly.
func WithWorkflows(o ports.WorkflowOrchestrator) Option {
	return func(s *Service) {
		s.workflows = o
	}
}

func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the orders service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		ids:    RandomIDs{},
		now:    func() time.Time { return time.Now().UTC() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder derives an order from the items and stores it.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error) {
	if err := validation.Struct(input); err != nil {
		return nil, mapError(err)
	}
	id, number := input.OrderID, input.Number
	if id == "" {
		id = s.ids.NewID()
	}
	if number == "" {
		number = s.ids.NewNumber()
	}
	order, err := domain.NewOrder(id, number, input.UserID, input.Items, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Checkout places an order from the cart's current contents and clears the cart.
// With an idempotency key, a retry of the same checkout returns the order placed first.
func (s *Service) Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Order, error) {
	if s.cart == nil {
		return nil, errors.New("orders service has no cart configured")
	}
	input.CartID = strings.TrimSpace(input.CartID)
	input.UserID = strings.TrimSpace(input.UserID)
	input.IdempotencyKey = strings.TrimSpace(input.IdempotencyKey)
	if err := validation.Struct(input); err != nil {
		return nil, mapError(err)
	}

	var fingerprint string
	if input.IdempotencyKey != "" && s.idempotency != nil {
		var err error
		fingerprint, err = FingerprintCheckout(input)
		if err != nil {
			return nil, err
		}
		replayed, err := s.replay(ctx, input.IdempotencyKey, fingerprint)
		if err != nil || replayed != nil {
			return replayed, mapError(err)
		}
	}

	if s.store != nil {
		closed, err := s.store.IsClosed(ctx)
		if err != nil {
			return nil, err
		}
		if closed {
			return nil, mapError(ports.ErrStoreClosed)
		}
	}

	var placed *domain.Order
	err := s.cart.Checkout(ctx, input.CartID, func(ctx context.Context, items []domain.Item) error {
		if fingerprint != "" {
			// Checked again under the cart lock: a concurrent retry may have placed the order meanwhile.
			replayed, err := s.replay(ctx, input.IdempotencyKey, fingerprint)
			if err != nil {
				return err
			}
			if replayed != nil {
				placed = replayed
				return ports.ErrAlreadyPlaced
			}
		}
		order, err := s.place(ctx, types.CreateOrderInput{UserID: input.UserID, Items: items})
		if err != nil {
			return err
		}
		placed = order
		if fingerprint != "" {
			placed = s.remember(ctx, input.IdempotencyKey, fingerprint, order)
		}
		return nil
	})
	switch {
	case errors.Is(err, ports.ErrAlreadyPlaced) && placed != nil:
		return placed, nil
	case errors.Is(err, domain.ErrEmptyCart) && fingerprint != "":
		// The retry lost the race for the cart lock to the checkout that emptied it.
		replayed, replayErr := s.replay(ctx, input.IdempotencyKey, fingerprint)
		if replayErr != nil {
			return nil, mapError(replayErr)
		}
		if replayed != nil {
			return replayed, nil
		}
	}
	if err != nil {
		if placed != nil {
			s.logger.ErrorContext(ctx, "order placed but the cart was not emptied",
				slog.String("order.id", placed.ID), slog.String("cart.id", input.CartID), slog.String("error", err.Error()))
		}
		return nil, mapError(err)
	}
	return placed, nil
}

// remember records the idempotency key before the cart is emptied, so a retry
// after a failed clear replays the order instead of placing a second one.
// It returns the canonical order for the key.
func (s *Service) remember(ctx context.Context, key, fingerprint string, order *domain.Order) *domain.Order {
	record, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
		Key:         key,
		RequestHash: fingerprint,
		OrderID:     order.ID,
	})
	switch {
	case err == nil:
		return order
	case errors.Is(err, ports.ErrIdempotencyConflict) && record != nil && record.RequestHash == fingerprint:
		// Another process recorded its order first; both orders exist, the first one is canonical.
		s.logger.WarnContext(ctx, "concurrent checkout with the same idempotency key",
			slog.String("order.id", order.ID), slog.String("order.canonical_id", record.OrderID))
		if canonical, getErr := s.repo.GetByID(ctx, record.OrderID); getErr == nil {
			return canonical
		}
		return order
	default:
		s.logger.ErrorContext(ctx, "failed to record idempotency key",
			slog.String("order.id", order.ID), slog.String("error", err.Error()))
		return order
	}
}

// GetOrder loads a single order.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// OrderHistory lists the user's orders, newest first, whatever the storage order.
func (s *Service) OrderHistory(ctx context.Context, userID string) ([]*domain.Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, mapError(domain.ErrMissingUser)
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	domain.SortNewestFirst(orders)
	return orders, nil
}

func (s *Service) place(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error) {
	if s.workflows != nil {
		return s.workflows.PlaceOrder(ctx, input)
	}
	return s.CreateOrder(ctx, input)
}

func (s *Service) replay(ctx context.Context, key, fingerprint string) (*domain.Order, error) {
	record, err := s.idempotency.Get(ctx, key)
	if err != nil || record == nil {
		return nil, err
	}
	if record.RequestHash != fingerprint {
		return nil, ports.ErrIdempotencyConflict
	}
	return s.repo.GetByID(ctx, record.OrderID)
}

var _ ports.Service = (*Service)(nil)
