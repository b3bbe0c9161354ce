package storefrontserver

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	customersapp "github.com/Apurer/go-gin-storefront/internal/domains/customers/application"
	customersports "github.com/Apurer/go-gin-storefront/internal/domains/customers/ports"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// responder maps every bounded context's errors onto problem details.
// Validation runs first so field maps survive the sentinel mappers.
var responder = apierrors.NewChainedResponder("",
	apierrors.MapValidation,
	apierrors.MapSentinel(apierrors.ErrNotFound,
		catalogdomain.ErrNotFound,
		cartports.ErrProductNotFound,
		ordersports.ErrNotFound,
		customersports.ErrNotFound,
	),
	apierrors.MapSentinel(apierrors.ErrConflict,
		catalogapp.ErrConflict,
		ordersapp.ErrConflict,
	),
	apierrors.MapSentinel(apierrors.ErrUnprocessable,
		cartapp.ErrUnprocessable,
		ordersapp.ErrUnprocessable,
	),
	apierrors.MapSentinel(apierrors.ErrValidation,
		catalogapp.ErrInvalidInput,
		cartapp.ErrInvalidInput,
		ordersapp.ErrInvalidInput,
		customersapp.ErrInvalidInput,
	),
)

func respondServiceError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

// respondBindError reports a body or parameter that could not be decoded.
func respondBindError(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}
