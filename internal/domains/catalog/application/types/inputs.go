package types

import "github.com/shopspring/decimal"

// ListProductsInput filters the product listing.
type ListProductsInput struct {
	BrandID string
	SizeID  string
}

// ProductMutationInput carries product fields. Nil fields are left untouched on update.
type ProductMutationInput struct {
	Name            *string          `json:"name" validate:"omitempty,min=3"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	DiscountPercent *int             `json:"discount" validate:"omitempty,gte=0,lte=100"`
	RemoveDiscount  bool             `json:"removeDiscount"`
	BrandName       *string          `json:"brandName" validate:"omitempty,notblank"`
	Image           *string          `json:"image" validate:"omitempty,optional_url"`
	SizeIDs         *[]string        `json:"sizes"`
}

// AddProductInput creates a product. Name, price and brand name are required.
type AddProductInput struct {
	ProductMutationInput
}

// UpdateProductInput applies a partial update to an existing product.
type UpdateProductInput struct {
	ID string
	ProductMutationInput
}

// BrandInput names a brand.
type BrandInput struct {
	Name string `json:"name" validate:"notblank,min=2"`
}

// SizeInput names a size.
type SizeInput struct {
	Name string `json:"name" validate:"notblank,min=1"`
}

// SettingsInput updates the storefront settings. Nil fields are left untouched.
type SettingsInput struct {
	IsStoreClosed *bool   `json:"isStoreClosed"`
	LogoURL       *string `json:"logoUrl" validate:"omitempty,optional_url"`
}
