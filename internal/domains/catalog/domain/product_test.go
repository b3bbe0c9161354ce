package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "xl", Slugify("XL"))
	require.Equal(t, "extra-large", Slugify("Extra  Large"))
	require.Equal(t, "one-size", Slugify("  One\tSize "))
	require.Equal(t, "extra-large", Slugify("Extra\u00a0Large"))
	require.Equal(t, "one-size", Slugify("One\u3000\u2009Size"))
	require.Equal(t, "x-l", Slugify("X\vL"))
}

func TestNewSize_DerivesID(t *testing.T) {
	size, err := NewSize(" Extra Small ")
	require.NoError(t, err)
	require.Equal(t, "extra-small", size.ID)
	require.Equal(t, "Extra Small", size.Name)

	_, err = NewSize("   ")
	require.ErrorIs(t, err, ErrEmptySizeName)
}

func TestProductValidate(t *testing.T) {
	discount := 101
	p := &Product{Name: "Tee", Price: decimal.NewFromInt(10), BrandID: "1", DiscountPercent: &discount}
	require.ErrorIs(t, p.Validate(), ErrInvalidDiscount)

	p.DiscountPercent = nil
	p.Price = decimal.NewFromInt(-1)
	require.ErrorIs(t, p.Validate(), ErrNegativePrice)

	p.Price = decimal.NewFromInt(10)
	p.BrandID = ""
	require.ErrorIs(t, p.Validate(), ErrMissingBrand)
}

func TestProductClone_IsIndependent(t *testing.T) {
	discount := 10
	p := &Product{ID: "p1", SizeIDs: []string{"s", "m"}, DiscountPercent: &discount}
	clone := p.Clone()
	clone.SizeIDs[0] = "xl"
	*clone.DiscountPercent = 50

	require.Equal(t, "s", p.SizeIDs[0])
	require.Equal(t, 10, *p.DiscountPercent)
}

func TestReplaceSize(t *testing.T) {
	p := &Product{SizeIDs: []string{"s", "m"}}
	require.True(t, p.ReplaceSize("m", "medium"))
	require.Equal(t, []string{"s", "medium"}, p.SizeIDs)
	require.False(t, p.ReplaceSize("xl", "x"))
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	require.True(t, errors.Is(&NotFoundError{Entity: EntityBrand, ID: "9"}, ErrNotFound))
	require.True(t, errors.Is(&DuplicateNameError{Entity: EntityBrand, Name: "Nike"}, ErrDuplicateName))
	require.True(t, errors.Is(&ReferentialIntegrityError{Entity: EntitySize, ID: "m"}, ErrReferenced))
	require.True(t, errors.Is(&UnknownReferenceError{Entity: EntitySize, ID: "q"}, ErrUnknownSize))
	require.False(t, errors.Is(&UnknownReferenceError{Entity: EntitySize, ID: "q"}, ErrUnknownBrand))
}
