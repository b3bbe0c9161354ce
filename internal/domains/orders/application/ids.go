package application

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// RandomIDs issues UUID order ids and RF-prefixed five digit order numbers.
type RandomIDs struct{}

func (RandomIDs) NewID() string { return uuid.NewString() }

// NewNumber returns RF10000 through RF99999.
func (RandomIDs) NewNumber() string {
	return fmt.Sprintf("RF%d", 10000+rand.Intn(90000))
}

var _ ports.IDGenerator = RandomIDs{}
