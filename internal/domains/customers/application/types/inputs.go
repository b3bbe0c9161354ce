package types

// UpdateProfileInput replaces the profile fields of an existing customer, or creates it.
type UpdateProfileInput struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"notblank"`
	TelegramID string `json:"telegramId" validate:"max=64"`
	Email      string `json:"email" validate:"omitempty,email"`
}
