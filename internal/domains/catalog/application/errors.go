package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid catalog input")
	// ErrConflict signals the request collides with existing catalog state.
	ErrConflict = errors.New("catalog conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, validation.ErrValidation):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrReferenced):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, domain.ErrUnknownBrand):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("brandName", err.Error()).Wrap(err))
	case errors.Is(err, domain.ErrUnknownSize):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("sizes", err.Error()).Wrap(err))
	case errors.Is(err, domain.ErrEmptyProductName):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("name", "is required").Wrap(err))
	case errors.Is(err, domain.ErrNegativePrice):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("price", "must be greater than 0").Wrap(err))
	case errors.Is(err, domain.ErrInvalidDiscount):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("discount", "must be between 0 and 100").Wrap(err))
	case errors.Is(err, domain.ErrMissingBrand):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("brandName", "is required").Wrap(err))
	case errors.Is(err, domain.ErrEmptyBrandName), errors.Is(err, domain.ErrEmptySizeName):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("name", "is required").Wrap(err))
	}
	return err
}
