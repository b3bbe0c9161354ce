package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

var (
	// ErrInvalidInput signals a malformed cart request.
	ErrInvalidInput = errors.New("invalid cart input")
	// ErrUnprocessable signals a well-formed request the cart cannot act on.
	ErrUnprocessable = errors.New("cart cannot process request")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, validation.ErrValidation):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("quantity", "must be at least 1").Wrap(err))
	case errors.Is(err, domain.ErrTooManyUnits):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("quantity", "is too large").Wrap(err))
	case errors.Is(err, domain.ErrMissingProduct):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("productId", "is required").Wrap(err))
	case errors.Is(err, domain.ErrEmptyCart):
		return fmt.Errorf("%w: %w", ErrUnprocessable, err)
	}
	return err
}
