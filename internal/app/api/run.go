package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"

	cartcatalog "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/notify"
	cartobs "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence/postgres"
	cartredis "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/redis"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"

	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"

	customersmemory "github.com/Apurer/go-gin-storefront/internal/domains/customers/adapters/memory"
	customersobs "github.com/Apurer/go-gin-storefront/internal/domains/customers/adapters/observability"
	customerspostgres "github.com/Apurer/go-gin-storefront/internal/domains/customers/adapters/persistence/postgres"
	customersapp "github.com/Apurer/go-gin-storefront/internal/domains/customers/application"
	customersports "github.com/Apurer/go-gin-storefront/internal/domains/customers/ports"

	orderscart "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/cart"
	orderscatalog "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"

	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-storefront/internal/platform/redis"
	platformtemporal "github.com/Apurer/go-gin-storefront/internal/platform/temporal"
)

const serviceName = "storefront-api"

// Run boots the storefront HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Telemetry(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer closeDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	catalogRepo := buildCatalogRepository(db)
	orderRepo, idempotency := buildOrderRepositories(db)
	customerRepo := buildCustomerRepository(db)
	if cfg.SeedCatalog {
		if err := seed(ctx, catalogRepo, orderRepo, customerRepo); err != nil {
			return fmt.Errorf("failed to seed storefront data: %w", err)
		}
		logger.Info("storefront demo data seeded")
	}

	catalogService := catalogobs.New(
		catalogapp.NewService(catalogRepo),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	snapshots, closeSnapshots := buildSnapshotStore(ctx, cfg, db, logger)
	defer closeSnapshots()
	notifier, closeNotifier := buildNotifier(cfg, logger)
	defer closeNotifier()
	cartService := cartobs.New(
		cartapp.NewService(
			snapshots,
			cartcatalog.NewProductCatalog(catalogService),
			cartapp.WithServiceNotifier(notifier),
			cartapp.WithLogger(logger),
		),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	orderTracer := instruments.Tracer("internal.orders.application")
	orderMeter := instruments.Meter("internal.orders.application")
	persistOrders := ordersobs.New(
		ordersapp.NewService(orderRepo, ordersapp.WithLogger(logger)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(orderTracer),
		ordersobs.WithMeter(orderMeter),
	)
	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(persistOrders)
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
		Logger:    logger,
		Tracer:    instruments.Tracer("temporal-client"),
	})
	if err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	orderService := ordersobs.New(
		ordersapp.NewService(
			orderRepo,
			ordersapp.WithCart(orderscart.NewCheckout(cartService)),
			ordersapp.WithStoreStatus(orderscatalog.NewStoreStatus(catalogService)),
			ordersapp.WithWorkflows(orderWorkflows),
			ordersapp.WithIdempotencyStore(idempotency),
			ordersapp.WithLogger(logger),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(orderTracer),
		ordersobs.WithMeter(orderMeter),
	)

	customerService := customersobs.New(
		customersapp.NewService(customerRepo),
		customersobs.WithLogger(logger),
		customersobs.WithTracer(instruments.Tracer("internal.customers.application")),
		customersobs.WithMeter(instruments.Meter("internal.customers.application")),
	)

	handlers := storefrontserver.ApiHandleFunctions{
		CatalogAPI:   storefrontserver.NewCatalogAPI(catalogService),
		AdminAPI:     storefrontserver.NewAdminAPI(catalogService),
		CartAPI:      storefrontserver.NewCartAPI(cartService),
		OrdersAPI:    storefrontserver.NewOrdersAPI(orderService),
		CustomersAPI: storefrontserver.NewCustomersAPI(customerService),
	}
	router := storefrontserver.NewRouter(handlers, otelgin.Middleware(serviceName))
	return serve(ctx, logger, &http.Server{Addr: ":" + cfg.Port, Handler: router, ReadHeaderTimeout: 10 * time.Second})
}

func serve(ctx context.Context, logger *slog.Logger, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Storefront API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Storefront API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("Storefront API shutting down")
	return server.Shutdown(shutdownCtx)
}

func seed(ctx context.Context, catalog catalogports.Repository, orders ordersports.Repository, customers customersports.Repository) error {
	if err := catalogapp.SeedCatalog(ctx, catalog); err != nil {
		return err
	}
	if err := customersapp.SeedCustomers(ctx, customers); err != nil {
		return err
	}
	return ordersapp.SeedOrders(ctx, orders)
}

func buildCatalogRepository(db *gorm.DB) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewStore()
	}
	return catalogpostgres.NewRepository(db)
}

func buildOrderRepositories(db *gorm.DB) (ordersports.Repository, ordersports.IdempotencyStore) {
	if db == nil {
		return ordersmemory.NewRepository(), ordersmemory.NewIdempotencyStore()
	}
	return orderspostgres.NewRepository(db), orderspostgres.NewIdempotencyStore(db)
}

func buildCustomerRepository(db *gorm.DB) customersports.Repository {
	if db == nil {
		return customersmemory.NewRepository()
	}
	return customerspostgres.NewRepository(db)
}

// buildSnapshotStore prefers Redis, then Postgres, then process memory.
func buildSnapshotStore(ctx context.Context, cfg Config, db *gorm.DB, logger *slog.Logger) (cartports.SnapshotStore, func()) {
	client, closeRedis := platformredis.ConnectOptional(ctx, platformredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, logger)
	if client != nil {
		logger.Info("cart snapshots stored in redis", slog.Duration("ttl", cfg.CartSnapshotTTL))
		return cartredis.NewSnapshotStore(client, cfg.CartSnapshotTTL), closeRedis
	}
	if db != nil {
		logger.Info("cart snapshots stored in postgres", slog.Duration("ttl", cfg.CartSnapshotTTL))
		return cartpostgres.NewSnapshotStore(db, cfg.CartSnapshotTTL), func() {}
	}
	logger.Warn("cart snapshots kept in memory; carts do not survive restarts")
	return cartmemory.NewSnapshotStore(), func() {}
}

func buildNotifier(cfg Config, logger *slog.Logger) (cartports.Notifier, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return notify.NewLogNotifier(logger), func() {}
	}
	kafkaNotifier, err := notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaNotificationsTopic, logger)
	if err != nil {
		logger.Warn("kafka notifier unavailable, logging notifications", slog.String("error", err.Error()))
		return notify.NewLogNotifier(logger), func() {}
	}
	logger.Info("notifications published to kafka", slog.String("topic", cfg.KafkaNotificationsTopic))
	return kafkaNotifier, func() {
		if err := kafkaNotifier.Close(); err != nil {
			logger.Warn("failed to close kafka notifier", slog.String("error", err.Error()))
		}
	}
}
