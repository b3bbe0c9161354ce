package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     *string `json:"name" validate:"omitempty,min=3"`
	Discount *int    `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Logo     string  `json:"logoUrl" validate:"optional_url"`
	Brand    string  `json:"brandName" validate:"notblank"`
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestStruct_ReportsFieldsByJSONName(t *testing.T) {
	err := Struct(sample{Name: strPtr("ab"), Discount: intPtr(120), Logo: "not a url", Brand: "  "})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrValidation)

	fields, ok := FieldsOf(err)
	require.True(t, ok)
	require.Equal(t, "must be at least 3 characters", fields["name"])
	require.Equal(t, "must be less than or equal to 100", fields["discount"])
	require.Equal(t, "must be a valid URL", fields["logoUrl"])
	require.Equal(t, "is required", fields["brandName"])
}

func TestStruct_AcceptsZeroDiscountAndEmptyURL(t *testing.T) {
	err := Struct(sample{Discount: intPtr(0), Logo: "", Brand: "CasualWear"})
	require.NoError(t, err)
}

func TestFieldsOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", Field("price", "must be greater than 0"))
	fields, ok := FieldsOf(err)
	require.True(t, ok)
	require.Equal(t, map[string]string{"price": "must be greater than 0"}, fields)
	require.True(t, errors.Is(err, ErrValidation))
}

func TestMerge_KeepsFirstMessage(t *testing.T) {
	merged := Field("name", "first").Merge(New("x", map[string]string{"name": "second", "price": "bad"}))
	require.Equal(t, "first", merged.Fields["name"])
	require.Equal(t, "bad", merged.Fields["price"])
}

func TestIsOptionalURL(t *testing.T) {
	require.True(t, IsOptionalURL(""))
	require.True(t, IsOptionalURL("https://placehold.co/600x800.png"))
	require.False(t, IsOptionalURL("/relative/path.png"))
	require.False(t, IsOptionalURL("ftp://example.com/file"))
}
