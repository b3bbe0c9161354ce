package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Apurer/go-gin-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
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

// New wraps the core orders service.
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

func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CreateOrder", trace.WithAttributes(
		attribute.String("user.id", input.UserID),
		attribute.Int("order.items", len(input.Items)),
	))
	defer span.End()

	order, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("user.id", input.UserID))
	}
	recordOrder(span, order)
	s.metrics.recordPlaced(ctx, order)
	s.logInfo(ctx, "order created",
		slog.String("order.id", order.ID),
		slog.String("order.number", order.Number),
		slog.String("order.total", order.Total.String()))
	return order, nil
}

func (s *Service) Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Checkout", trace.WithAttributes(
		attribute.String("cart.id", input.CartID),
		attribute.String("user.id", input.UserID),
		attribute.Bool("checkout.idempotent", input.IdempotencyKey != ""),
	))
	defer span.End()

	order, err := s.inner.Checkout(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx)
		return nil, s.handleError(ctx, span, err, "checkout failed",
			slog.String("cart.id", input.CartID), slog.String("user.id", input.UserID))
	}
	recordOrder(span, order)
	s.logInfo(ctx, "checkout completed",
		slog.String("cart.id", input.CartID),
		slog.String("order.id", order.ID),
		slog.String("order.number", order.Number))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get order", slog.String("order.id", id))
	}
	recordOrder(span, order)
	return order, nil
}

func (s *Service) OrderHistory(ctx context.Context, userID string) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.OrderHistory", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	orders, err := s.inner.OrderHistory(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("user.id", userID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

func recordOrder(span trace.Span, order *domain.Order) {
	if order == nil {
		return
	}
	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.String("order.number", order.Number),
		attribute.String("order.status", string(order.Status)),
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
	placed   metric.Int64Counter
	units    metric.Int64Counter
	rejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Orders placed"))
	units, _ := m.Int64Counter("orders.service.units_ordered", metric.WithDescription("Product units across placed orders"))
	rejected, _ := m.Int64Counter("orders.service.checkouts_rejected", metric.WithDescription("Checkouts that did not produce an order"))
	return serviceMetrics{placed: placed, units: units, rejected: rejected}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order *domain.Order) {
	attrs := metric.WithAttributes(attribute.String("order.status", string(order.Status)))
	if m.placed != nil {
		m.placed.Add(ctx, 1, attrs)
	}
	if m.units != nil {
		m.units.Add(ctx, int64(order.ItemCount()), attrs)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	if m.rejected != nil {
		m.rejected.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
