package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrConflict signals an idempotency key was reused for a different checkout.
	ErrConflict = errors.New("order conflict")
	// ErrUnprocessable signals a well-formed request that cannot be fulfilled in the current state.
	ErrUnprocessable = errors.New("order cannot be placed")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrConflict), errors.Is(err, ErrUnprocessable):
		return err
	case errors.Is(err, validation.ErrValidation):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrMissingUser):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("userId", "is required").Wrap(err))
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("quantity", "must be at least 1").Wrap(err))
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrMissingID):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, ports.ErrStoreClosed):
		return fmt.Errorf("%w: %w", ErrUnprocessable, err)
	case errors.Is(err, ports.ErrIdempotencyConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
