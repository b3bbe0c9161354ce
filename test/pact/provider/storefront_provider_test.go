//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/Apurer/go-gin-storefront/test/pact"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"
	cartcatalog "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartobs "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	customersmemory "github.com/Apurer/go-gin-storefront/internal/domains/customers/adapters/memory"
	customersobs "github.com/Apurer/go-gin-storefront/internal/domains/customers/adapters/observability"
	customersapp "github.com/Apurer/go-gin-storefront/internal/domains/customers/application"
	orderscart "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/cart"
	orderscatalog "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateCartEmpty: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateCartHoldsItem: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.fillCart(t, pacttest.CartID, pacttest.ExistingProductID, 2)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp swaps in a freshly seeded in-memory storefront on every reset.
type contractProviderApp struct {
	mu     sync.RWMutex
	engine *gin.Engine
	cart   cartports.Service
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		engine := app.engine
		app.mu.RUnlock()
		engine.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	ctx := context.Background()

	catalogRepo := catalogmemory.NewStore()
	require.NoError(t, catalogapp.SeedCatalog(ctx, catalogRepo))
	catalogService := catalogobs.New(catalogapp.NewService(catalogRepo))

	cartService := cartobs.New(cartapp.NewService(cartmemory.NewSnapshotStore(), cartcatalog.NewProductCatalog(catalogService)))

	orderRepo := ordersmemory.NewRepository()
	persist := ordersobs.New(ordersapp.NewService(orderRepo))
	orderService := ordersobs.New(ordersapp.NewService(orderRepo,
		ordersapp.WithCart(orderscart.NewCheckout(cartService)),
		ordersapp.WithStoreStatus(orderscatalog.NewStoreStatus(catalogService)),
		ordersapp.WithWorkflows(ordersworkflows.NewInlineOrderWorkflows(persist)),
		ordersapp.WithIdempotencyStore(ordersmemory.NewIdempotencyStore()),
	))

	customerRepo := customersmemory.NewRepository()
	require.NoError(t, customersapp.SeedCustomers(ctx, customerRepo))
	customerService := customersobs.New(customersapp.NewService(customerRepo))

	handlers := storefrontserver.ApiHandleFunctions{
		CatalogAPI:   storefrontserver.NewCatalogAPI(catalogService),
		AdminAPI:     storefrontserver.NewAdminAPI(catalogService),
		CartAPI:      storefrontserver.NewCartAPI(cartService),
		OrdersAPI:    storefrontserver.NewOrdersAPI(orderService),
		CustomersAPI: storefrontserver.NewCustomersAPI(customerService),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = storefrontserver.NewRouterWithGinEngine(router, handlers)

	a.mu.Lock()
	a.engine = router
	a.cart = cartService
	a.mu.Unlock()
}

func (a *contractProviderApp) fillCart(t testing.TB, cartID, productID string, quantity int) {
	t.Helper()
	a.mu.RLock()
	cart := a.cart
	a.mu.RUnlock()
	_, err := cart.AddItem(context.Background(), cartID, productID, quantity)
	require.NoError(t, err)
}
