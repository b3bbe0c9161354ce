package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	types "github.com/Apurer/go-gin-storefront/internal/domains/orders/application/types"
)

type normalizedCheckout struct {
	CartID string `json:"cartId"`
	UserID string `json:"userId"`
}

// FingerprintCheckout hashes the checkout target (excluding the idempotency key).
// Cart contents are left out because a successful checkout empties the cart a retry would see.
func FingerprintCheckout(input types.CheckoutInput) (string, error) {
	payload, err := json.Marshal(normalizedCheckout{
		CartID: strings.TrimSpace(input.CartID),
		UserID: strings.TrimSpace(input.UserID),
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
