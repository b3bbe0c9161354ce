package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	types "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// UnknownBrand is displayed when a product points at a brand that no longer resolves.
const UnknownBrand = "Unknown brand"

// Product is the HTTP representation of a catalog product.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Discount       *int      `json:"discount,omitempty"`
	EffectivePrice float64   `json:"effectivePrice"`
	BrandID        string    `json:"brandId"`
	BrandName      string    `json:"brandName"`
	Image          string    `json:"image,omitempty"`
	Sizes          []string  `json:"sizes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ProductPayload captures admin create/update bodies while preserving field presence.
type ProductPayload struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	Discount       *int             `json:"discount"`
	RemoveDiscount bool             `json:"removeDiscount"`
	BrandName      *string          `json:"brandName"`
	Image          *string          `json:"image"`
	Sizes          *[]string        `json:"sizes"`
}

// Brand is the HTTP representation of a brand.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Size is the HTTP representation of a size.
type Size struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NamePayload is the body for brand and size mutations.
type NamePayload struct {
	Name string `json:"name"`
}

// StoreSettings is the HTTP representation of the storefront settings.
type StoreSettings struct {
	IsStoreClosed bool   `json:"isStoreClosed"`
	LogoURL       string `json:"logoUrl,omitempty"`
}

// SettingsPayload is the partial update body for store settings.
type SettingsPayload struct {
	IsStoreClosed *bool   `json:"isStoreClosed"`
	LogoURL       *string `json:"logoUrl"`
}

// ToMutationInput maps the payload onto the application input.
func ToMutationInput(payload ProductPayload) types.ProductMutationInput {
	return types.ProductMutationInput{
		Name:            payload.Name,
		Description:     payload.Description,
		Price:           payload.Price,
		DiscountPercent: payload.Discount,
		RemoveDiscount:  payload.RemoveDiscount,
		BrandName:       payload.BrandName,
		Image:           payload.Image,
		SizeIDs:         payload.Sizes,
	}
}

func ToSettingsInput(payload SettingsPayload) types.SettingsInput {
	return types.SettingsInput{IsStoreClosed: payload.IsStoreClosed, LogoURL: payload.LogoURL}
}

// BrandNames indexes brand display names by id.
func BrandNames(brands []*domain.Brand) map[string]string {
	names := make(map[string]string, len(brands))
	for _, b := range brands {
		names[b.ID] = b.Name
	}
	return names
}

// FromDomainProduct maps a product, resolving its brand name through names.
func FromDomainProduct(p *domain.Product, names map[string]string) Product {
	if p == nil {
		return Product{}
	}
	brandName, ok := names[p.BrandID]
	if !ok {
		brandName = UnknownBrand
	}
	effective, err := p.EffectivePrice()
	if err != nil {
		effective = p.Price
	}
	var discount *int
	if p.DiscountPercent != nil {
		d := *p.DiscountPercent
		discount = &d
	}
	sizes := append([]string{}, p.SizeIDs...)
	return Product{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price.InexactFloat64(),
		Discount:       discount,
		EffectivePrice: effective.InexactFloat64(),
		BrandID:        p.BrandID,
		BrandName:      brandName,
		Image:          p.Image,
		Sizes:          sizes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromDomainProducts(products []*domain.Product, names map[string]string) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromDomainProduct(p, names))
	}
	return out
}

func FromDomainBrands(brands []*domain.Brand) []Brand {
	out := make([]Brand, 0, len(brands))
	for _, b := range brands {
		out = append(out, Brand{ID: b.ID, Name: b.Name})
	}
	return out
}

func FromDomainSizes(sizes []*domain.Size) []Size {
	out := make([]Size, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, Size{ID: s.ID, Name: s.Name})
	}
	return out
}

func FromDomainSettings(settings domain.StoreSettings) StoreSettings {
	return StoreSettings{IsStoreClosed: settings.IsStoreClosed, LogoURL: settings.LogoURL}
}
