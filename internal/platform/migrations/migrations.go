package migrations

import (
	"gorm.io/gorm"

	cartpg "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/persistence/postgres"
	catalogpg "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	customerspg "github.com/Apurer/go-gin-storefront/internal/domains/customers/adapters/persistence/postgres"
	orderspg "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/persistence/postgres"
)

// Models lists every table owned by the storefront's Postgres adapters.
func Models() []any {
	var models []any
	models = append(models, catalogpg.Models()...)
	models = append(models, cartpg.Models()...)
	models = append(models, orderspg.Models()...)
	models = append(models, customerspg.Models()...)
	return models
}

// Run applies the schema for every bounded context.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(Models()...)
}
