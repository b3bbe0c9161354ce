package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer(" user123 ", "  Ivan Ivanov ")
	require.NoError(t, err)
	require.Equal(t, "user123", c.ID)
	require.Equal(t, "Ivan Ivanov", c.Name)

	_, err = NewCustomer("", "Ivan")
	require.ErrorIs(t, err, ErrEmptyID)
	_, err = NewCustomer("user123", " ")
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestUpdateContacts(t *testing.T) {
	c := &Customer{ID: "user123", Name: "Ivan"}
	require.NoError(t, c.UpdateContacts("@ivan_telegram", " ivan@example.com "))
	require.Equal(t, "ivan_telegram", c.TelegramID)
	require.Equal(t, "ivan@example.com", c.Email)

	require.ErrorIs(t, c.UpdateContacts("", "not-an-email"), ErrInvalidEmail)
	require.Equal(t, "ivan@example.com", c.Email)

	require.NoError(t, c.UpdateContacts("", ""))
	require.Empty(t, c.Email)
	require.NoError(t, c.Validate())
}
