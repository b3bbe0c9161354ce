package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

// ErrInvalidInput signals the request violated a customer invariant.
var ErrInvalidInput = errors.New("invalid customer input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, validation.ErrValidation):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrEmptyID):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("id", "is required").Wrap(err))
	case errors.Is(err, domain.ErrEmptyName):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("name", "is required").Wrap(err))
	case errors.Is(err, domain.ErrInvalidEmail):
		return fmt.Errorf("%w: %w", ErrInvalidInput, validation.Field("email", "must be a valid email address").Wrap(err))
	}
	return err
}
