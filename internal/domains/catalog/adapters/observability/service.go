package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
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

// New wraps the core catalog service.
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

func (s *Service) ListProducts(ctx context.Context, input types.ListProductsInput) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts", trace.WithAttributes(
		attribute.String("filter.brand_id", input.BrandID),
		attribute.String("filter.size_id", input.SizeID),
	))
	defer span.End()

	result, err := s.inner.ListProducts(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.String("product.id", id))
	}
	return result, nil
}

func (s *Service) AddProduct(ctx context.Context, input types.AddProductInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddProduct")
	defer span.End()

	s.logInfo(ctx, "adding product")
	result, err := s.inner.AddProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add product")
	}
	span.SetAttributes(attribute.String("product.id", result.ID))
	s.metrics.recordMutation(ctx, domain.EntityProduct, "add")
	s.logInfo(ctx, "product added", slog.String("product.id", result.ID), slog.String("brand.id", result.BrandID))
	return result, nil
}

func (s *Service) UpdateProduct(ctx context.Context, input types.UpdateProductInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateProduct", trace.WithAttributes(attribute.String("product.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "updating product", slog.String("product.id", input.ID))
	result, err := s.inner.UpdateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update product", slog.String("product.id", input.ID))
	}
	s.metrics.recordMutation(ctx, domain.EntityProduct, "update")
	return result, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	if err := s.inner.DeleteProduct(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.String("product.id", id))
	}
	s.metrics.recordMutation(ctx, domain.EntityProduct, "delete")
	s.logInfo(ctx, "product deleted", slog.String("product.id", id))
	return nil
}

func (s *Service) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListBrands")
	defer span.End()

	result, err := s.inner.ListBrands(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list brands")
	}
	span.SetAttributes(attribute.Int("brands.count", len(result)))
	return result, nil
}

func (s *Service) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetBrand", trace.WithAttributes(attribute.String("brand.id", id)))
	defer span.End()

	result, err := s.inner.GetBrand(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load brand", slog.String("brand.id", id))
	}
	return result, nil
}

func (s *Service) AddBrand(ctx context.Context, input types.BrandInput) (*domain.Brand, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddBrand", trace.WithAttributes(attribute.String("brand.name", input.Name)))
	defer span.End()

	result, err := s.inner.AddBrand(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add brand", slog.String("brand.name", input.Name))
	}
	s.metrics.recordMutation(ctx, domain.EntityBrand, "add")
	s.logInfo(ctx, "brand added", slog.String("brand.id", result.ID), slog.String("brand.name", result.Name))
	return result, nil
}

func (s *Service) RenameBrand(ctx context.Context, id string, input types.BrandInput) (*domain.Brand, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.RenameBrand", trace.WithAttributes(attribute.String("brand.id", id)))
	defer span.End()

	result, err := s.inner.RenameBrand(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to rename brand", slog.String("brand.id", id))
	}
	s.metrics.recordMutation(ctx, domain.EntityBrand, "rename")
	s.logInfo(ctx, "brand renamed", slog.String("brand.id", id), slog.String("brand.name", result.Name))
	return result, nil
}

func (s *Service) DeleteBrand(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteBrand", trace.WithAttributes(attribute.String("brand.id", id)))
	defer span.End()

	if err := s.inner.DeleteBrand(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete brand", slog.String("brand.id", id))
	}
	s.metrics.recordMutation(ctx, domain.EntityBrand, "delete")
	s.logInfo(ctx, "brand deleted", slog.String("brand.id", id))
	return nil
}

func (s *Service) GetOrCreateBrand(ctx context.Context, name string) (*domain.Brand, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetOrCreateBrand", trace.WithAttributes(attribute.String("brand.name", name)))
	defer span.End()

	result, err := s.inner.GetOrCreateBrand(ctx, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to resolve brand", slog.String("brand.name", name))
	}
	return result, nil
}

func (s *Service) ListSizes(ctx context.Context) ([]*domain.Size, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListSizes")
	defer span.End()

	result, err := s.inner.ListSizes(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list sizes")
	}
	span.SetAttributes(attribute.Int("sizes.count", len(result)))
	return result, nil
}

func (s *Service) GetSize(ctx context.Context, id string) (*domain.Size, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetSize", trace.WithAttributes(attribute.String("size.id", id)))
	defer span.End()

	result, err := s.inner.GetSize(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load size", slog.String("size.id", id))
	}
	return result, nil
}

func (s *Service) AddSize(ctx context.Context, input types.SizeInput) (*domain.Size, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddSize", trace.WithAttributes(attribute.String("size.name", input.Name)))
	defer span.End()

	result, err := s.inner.AddSize(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add size", slog.String("size.name", input.Name))
	}
	s.metrics.recordMutation(ctx, domain.EntitySize, "add")
	s.logInfo(ctx, "size added", slog.String("size.id", result.ID))
	return result, nil
}

func (s *Service) RenameSize(ctx context.Context, id string, input types.SizeInput) (*domain.Size, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.RenameSize", trace.WithAttributes(attribute.String("size.id", id)))
	defer span.End()

	result, err := s.inner.RenameSize(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to rename size", slog.String("size.id", id))
	}
	s.metrics.recordMutation(ctx, domain.EntitySize, "rename")
	s.logInfo(ctx, "size renamed", slog.String("size.old_id", id), slog.String("size.id", result.ID))
	return result, nil
}

func (s *Service) DeleteSize(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteSize", trace.WithAttributes(attribute.String("size.id", id)))
	defer span.End()

	if err := s.inner.DeleteSize(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete size", slog.String("size.id", id))
	}
	s.metrics.recordMutation(ctx, domain.EntitySize, "delete")
	s.logInfo(ctx, "size deleted", slog.String("size.id", id))
	return nil
}

func (s *Service) GetSettings(ctx context.Context) (domain.StoreSettings, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetSettings")
	defer span.End()

	result, err := s.inner.GetSettings(ctx)
	if err != nil {
		return domain.StoreSettings{}, s.handleError(ctx, span, err, "failed to load store settings")
	}
	span.SetAttributes(attribute.Bool("store.closed", result.IsStoreClosed))
	return result, nil
}

func (s *Service) UpdateSettings(ctx context.Context, input types.SettingsInput) (domain.StoreSettings, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateSettings")
	defer span.End()

	result, err := s.inner.UpdateSettings(ctx, input)
	if err != nil {
		return domain.StoreSettings{}, s.handleError(ctx, span, err, "failed to update store settings")
	}
	s.logInfo(ctx, "store settings updated", slog.Bool("store.closed", result.IsStoreClosed))
	return result, nil
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
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("catalog.service.mutations", metric.WithDescription("Number of catalog mutations by entity and action"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) recordMutation(ctx context.Context, entity, action string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(
			attribute.String("catalog.entity", entity),
			attribute.String("catalog.action", action),
		))
	}
}

var _ ports.Service = (*Service)(nil)
