package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyID      = errors.New("customer id is required")
	ErrEmptyName    = errors.New("customer name is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
)

// Customer is the storefront shopper profile.
type Customer struct {
	ID         string
	Name       string
	TelegramID string
	Email      string
}

// NewCustomer builds a customer ensuring required invariants.
func NewCustomer(id, name string) (*Customer, error) {
	c := &Customer{ID: strings.TrimSpace(id)}
	if c.ID == "" {
		return nil, ErrEmptyID
	}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename trims and validates the display name.
func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// UpdateContacts sets the optional contact handles. A leading '@' on the Telegram handle is dropped.
func (c *Customer) UpdateContacts(telegramID, email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Email = email
	c.TelegramID = strings.TrimPrefix(strings.TrimSpace(telegramID), "@")
	return nil
}

// Validate re-applies core invariants for persistence.
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyID
	}
	if err := c.Rename(c.Name); err != nil {
		return err
	}
	return c.UpdateContacts(c.TelegramID, c.Email)
}
