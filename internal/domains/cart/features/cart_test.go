package features

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

type cartTestContext struct {
	ctx       context.Context
	snapshots *memory.SnapshotStore
	products  map[string]domain.ProductSnapshot
	key       string
	store     *application.Store
	err       error
}

func (c *cartTestContext) reset() {
	c.ctx = context.Background()
	c.snapshots = memory.NewSnapshotStore()
	c.products = map[string]domain.ProductSnapshot{}
	c.key = ""
	c.store = nil
	c.err = nil
}

func (c *cartTestContext) product(id string, price int64, discount *int) {
	created := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	c.products[id] = domain.ProductSnapshot{
		ID:              id,
		Name:            "Product " + id,
		Price:           decimal.NewFromInt(price),
		DiscountPercent: discount,
		BrandID:         "1",
		SizeIDs:         []string{"m"},
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

func (c *cartTestContext) aProductPriced(id string, price int) error {
	c.product(id, int64(price), nil)
	return nil
}

func (c *cartTestContext) aProductPricedWithDiscount(id string, price, discount int) error {
	c.product(id, int64(price), &discount)
	return nil
}

func (c *cartTestContext) anEmptyCart(key string) error {
	c.key = key
	return c.iReopenTheCart()
}

func (c *cartTestContext) theStoredSnapshotIs(key, value string) error {
	c.key = key
	return c.snapshots.Save(c.ctx, key, value)
}

func (c *cartTestContext) iReopenTheCart() error {
	store, err := application.Open(c.ctx, c.key, c.snapshots)
	if err != nil {
		return err
	}
	c.store = store
	return nil
}

func (c *cartTestContext) iAdd(quantity int, id string) error {
	p, ok := c.products[id]
	if !ok {
		return fmt.Errorf("unknown product %q", id)
	}
	return c.store.Add(c.ctx, p, quantity)
}

func (c *cartTestContext) iTryToAdd(quantity int, id string) error {
	c.err = c.iAdd(quantity, id)
	return nil
}

func (c *cartTestContext) iSetTheQuantity(id string, quantity int) error {
	return c.store.UpdateQuantity(c.ctx, id, quantity)
}

func (c *cartTestContext) theCartOperationFails() error {
	if c.err == nil {
		return errors.New("expected the operation to fail")
	}
	if !errors.Is(c.err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("expected invalid quantity, got %v", c.err)
	}
	return nil
}

func (c *cartTestContext) theCartHasEntries(n int) error {
	if got := len(c.store.Entries()); got != n {
		return fmt.Errorf("expected %d entries, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) theItemCountIs(n int) error {
	if got := c.store.ItemCount(); got != n {
		return fmt.Errorf("expected item count %d, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) theCartTotalIs(expected string) error {
	view, err := c.store.View()
	if err != nil {
		return err
	}
	if view.DisplayTotal.String() != expected {
		return fmt.Errorf("expected total %s, got %s", expected, view.DisplayTotal.String())
	}
	return nil
}

func (c *cartTestContext) theQuantityOfProductIs(id string, quantity int) error {
	for _, e := range c.store.Entries() {
		if e.Product.ID == id {
			if e.Quantity != quantity {
				return fmt.Errorf("expected quantity %d for %q, got %d", quantity, id, e.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("product %q not in cart", id)
}

func (c *cartTestContext) theCartIsEmpty() error {
	if !c.store.IsEmpty() {
		return fmt.Errorf("expected empty cart, got %d entries", len(c.store.Entries()))
	}
	return nil
}

func (c *cartTestContext) noSnapshotIsStored(key string) error {
	_, ok, err := c.snapshots.Load(c.ctx, key)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("expected no snapshot for %q", key)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a product "([^"]*)" priced (\d+)$`, tc.aProductPriced)
	ctx.Step(`^a product "([^"]*)" priced (\d+) with a (\d+) percent discount$`, tc.aProductPricedWithDiscount)
	ctx.Step(`^an empty cart "([^"]*)"$`, tc.anEmptyCart)
	ctx.Step(`^the stored snapshot for "([^"]*)" is "([^"]*)"$`, tc.theStoredSnapshotIs)

	// When steps
	ctx.Step(`^I add (\d+) of product "([^"]*)"$`, tc.iAdd)
	ctx.Step(`^I try to add (-?\d+) of product "([^"]*)"$`, tc.iTryToAdd)
	ctx.Step(`^I set the quantity of product "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantity)
	ctx.Step(`^I reopen the cart$`, tc.iReopenTheCart)

	// Then steps
	ctx.Step(`^the cart operation fails$`, tc.theCartOperationFails)
	ctx.Step(`^the cart has (\d+) entries$`, tc.theCartHasEntries)
	ctx.Step(`^the item count is (\d+)$`, tc.theItemCountIs)
	ctx.Step(`^the cart total is "([^"]*)"$`, tc.theCartTotalIs)
	ctx.Step(`^the quantity of product "([^"]*)" is (\d+)$`, tc.theQuantityOfProductIs)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^no snapshot is stored for "([^"]*)"$`, tc.noSnapshotIsStored)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "cart",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
