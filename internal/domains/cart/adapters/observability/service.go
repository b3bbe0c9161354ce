package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core cart service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) GetCart(ctx context.Context, cartID string) (*ports.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart", trace.WithAttributes(attribute.String("cart.id", cartID)))
	defer span.End()

	view, err := s.inner.GetCart(ctx, cartID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart", slog.String("cart.id", cartID))
	}
	recordView(span, view)
	return view, nil
}

func (s *Service) AddItem(ctx context.Context, cartID, productID string, quantity int) (*ports.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem", trace.WithAttributes(
		attribute.String("cart.id", cartID),
		attribute.String("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	))
	defer span.End()

	view, err := s.inner.AddItem(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add cart item",
			slog.String("cart.id", cartID), slog.String("product.id", productID))
	}
	s.metrics.recordItemsAdded(ctx, quantity)
	recordView(span, view)
	s.logInfo(ctx, "cart item added", slog.String("cart.id", cartID), slog.String("product.id", productID), slog.Int("quantity", quantity))
	return view, nil
}

func (s *Service) UpdateItem(ctx context.Context, cartID, productID string, quantity int) (*ports.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateItem", trace.WithAttributes(
		attribute.String("cart.id", cartID),
		attribute.String("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	))
	defer span.End()

	view, err := s.inner.UpdateItem(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update cart item",
			slog.String("cart.id", cartID), slog.String("product.id", productID))
	}
	recordView(span, view)
	return view, nil
}

func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (*ports.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem", trace.WithAttributes(
		attribute.String("cart.id", cartID),
		attribute.String("product.id", productID),
	))
	defer span.End()

	view, err := s.inner.RemoveItem(ctx, cartID, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove cart item",
			slog.String("cart.id", cartID), slog.String("product.id", productID))
	}
	recordView(span, view)
	return view, nil
}

func (s *Service) Clear(ctx context.Context, cartID string) (*ports.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear", trace.WithAttributes(attribute.String("cart.id", cartID)))
	defer span.End()

	view, err := s.inner.Clear(ctx, cartID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart", slog.String("cart.id", cartID))
	}
	s.logInfo(ctx, "cart cleared", slog.String("cart.id", cartID))
	return view, nil
}

func (s *Service) Checkout(ctx context.Context, cartID string, place ports.PlaceFunc) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Checkout", trace.WithAttributes(attribute.String("cart.id", cartID)))
	defer span.End()

	err := s.inner.Checkout(ctx, cartID, func(ctx context.Context, entries []domain.Entry) error {
		span.SetAttributes(attribute.Int("cart.entries", len(entries)))
		return place(ctx, entries)
	})
	if err != nil {
		return s.handleError(ctx, span, err, "cart checkout failed", slog.String("cart.id", cartID))
	}
	s.metrics.recordCheckout(ctx)
	s.logInfo(ctx, "cart checked out", slog.String("cart.id", cartID))
	return nil
}

func recordView(span trace.Span, view *ports.CartView) {
	if view == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("cart.item_count", view.ItemCount),
		attribute.String("cart.total", view.DisplayTotal.String()),
	)
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	itemsAdded metric.Int64Counter
	checkouts  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Units added to carts"))
	checkouts, _ := m.Int64Counter("cart.service.checkouts", metric.WithDescription("Carts checked out"))
	return serviceMetrics{itemsAdded: itemsAdded, checkouts: checkouts}
}

func (m serviceMetrics) recordItemsAdded(ctx context.Context, quantity int) {
	if m.itemsAdded != nil {
		m.itemsAdded.Add(ctx, int64(quantity))
	}
}

func (m serviceMetrics) recordCheckout(ctx context.Context) {
	if m.checkouts != nil {
		m.checkouts.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
