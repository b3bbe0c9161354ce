package catalog

import (
	"context"

	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var _ ports.StoreStatus = (*StoreStatus)(nil)

// StoreStatus reads the closed flag from the catalog's store settings.
type StoreStatus struct {
	catalog catalogports.Service
}

func NewStoreStatus(catalog catalogports.Service) *StoreStatus {
	return &StoreStatus{catalog: catalog}
}

func (s *StoreStatus) IsClosed(ctx context.Context) (bool, error) {
	settings, err := s.catalog.GetSettings(ctx)
	if err != nil {
		return false, err
	}
	return settings.IsStoreClosed, nil
}
