package mapper

import (
	types "github.com/Apurer/go-gin-storefront/internal/domains/customers/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/customers/domain"
)

// Customer is the HTTP representation of a shopper profile.
type Customer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TelegramID string `json:"telegramId,omitempty"`
	Email      string `json:"email,omitempty"`
}

// ProfilePayload is the body of PUT /users/:userId.
type ProfilePayload struct {
	Name       string `json:"name"`
	TelegramID string `json:"telegramId"`
	Email      string `json:"email"`
}

func (p ProfilePayload) ToInput(id string) types.UpdateProfileInput {
	return types.UpdateProfileInput{ID: id, Name: p.Name, TelegramID: p.TelegramID, Email: p.Email}
}

func FromDomainCustomer(c *domain.Customer) Customer {
	if c == nil {
		return Customer{}
	}
	return Customer{ID: c.ID, Name: c.Name, TelegramID: c.TelegramID, Email: c.Email}
}
