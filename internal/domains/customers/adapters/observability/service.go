package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Apurer/go-gin-storefront/internal/domains/customers/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/customers/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/customers/adapters/observability/service"

// Service decorates the customers service with tracing, logging, and metrics.
type Service struct {
	inner          ports.Service
	tracer         trace.Tracer
	logger         *slog.Logger
	profileUpdates metric.Int64Counter
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
		if m == nil {
			return
		}
		s.profileUpdates, _ = m.Int64Counter("customers.service.profile_updates", metric.WithDescription("Customer profile updates"))
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner, tracer: nooptrace.NewTracerProvider().Tracer(tracerName)}
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

func (s *Service) GetProfile(ctx context.Context, id string) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomersService.GetProfile", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()

	customer, err := s.inner.GetProfile(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get customer profile", slog.String("user.id", id))
	}
	return customer, nil
}

func (s *Service) UpdateProfile(ctx context.Context, input types.UpdateProfileInput) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomersService.UpdateProfile", trace.WithAttributes(attribute.String("user.id", input.ID)))
	defer span.End()

	customer, err := s.inner.UpdateProfile(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update customer profile", slog.String("user.id", input.ID))
	}
	if s.profileUpdates != nil {
		s.profileUpdates.Add(ctx, 1)
	}
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "customer profile updated", slog.String("user.id", customer.ID))
	}
	return customer, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
