package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the catalog in PostgreSQL using GORM.
// Multi-table checks run inside serializable transactions.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID              string          `gorm:"primaryKey;column:id;size:64"`
	Seq             int64           `gorm:"column:seq;autoIncrement"`
	Name            string          `gorm:"column:name"`
	Description     string          `gorm:"column:description"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric"`
	DiscountPercent *int            `gorm:"column:discount_percent"`
	BrandID         string          `gorm:"column:brand_id;size:64;index"`
	Image           string          `gorm:"column:image"`
	SizeIDs         pq.StringArray  `gorm:"column:size_ids;type:text[]"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "catalog_products" }

type brandRecord struct {
	ID      string `gorm:"primaryKey;column:id;size:64"`
	Seq     int64  `gorm:"column:seq;autoIncrement"`
	Name    string `gorm:"column:name"`
	NameKey string `gorm:"column:name_key;uniqueIndex"`
}

func (brandRecord) TableName() string { return "catalog_brands" }

type sizeRecord struct {
	ID      string `gorm:"primaryKey;column:id;size:64"`
	Seq     int64  `gorm:"column:seq;autoIncrement"`
	Name    string `gorm:"column:name"`
	NameKey string `gorm:"column:name_key;uniqueIndex"`
}

func (sizeRecord) TableName() string { return "catalog_sizes" }

type settingsRecord struct {
	ID            int    `gorm:"primaryKey;column:id"`
	IsStoreClosed bool   `gorm:"column:is_store_closed"`
	LogoURL       string `gorm:"column:logo_url"`
}

func (settingsRecord) TableName() string { return "store_settings" }

const settingsRowID = 1

// Models lists the records owned by this adapter for schema migration.
func Models() []any {
	return []any{&productRecord{}, &brandRecord{}, &sizeRecord{}, &settingsRecord{}}
}

func (r *Repository) ListProducts(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("seq")
	if filter.BrandID != "" {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.SizeID != "" {
		query = query.Where("? = ANY(size_ids)", filter.SizeID)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toProductRecord(product)
	err := r.serializable(ctx, func(tx *gorm.DB) error {
		if err := checkReferences(tx, product); err != nil {
			return err
		}
		return tx.Omit("seq").Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, product.ID)
}

func (r *Repository) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toProductRecord(product)
	err := r.serializable(ctx, func(tx *gorm.DB) error {
		if err := checkReferences(tx, product); err != nil {
			return err
		}
		result := tx.Model(&productRecord{}).Where("id = ?", product.ID).Updates(map[string]any{
			"name":             record.Name,
			"description":      record.Description,
			"price":            record.Price,
			"discount_percent": record.DiscountPercent,
			"brand_id":         record.BrandID,
			"image":            record.Image,
			"size_ids":         record.SizeIDs,
			"updated_at":       record.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &domain.NotFoundError{Entity: domain.EntityProduct, ID: product.ID}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, product.ID)
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	return nil
}

func (r *Repository) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []brandRecord
	if err := r.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	brands := make([]*domain.Brand, 0, len(records))
	for _, rec := range records {
		brands = append(brands, &domain.Brand{ID: rec.ID, Name: rec.Name})
	}
	return brands, nil
}

func (r *Repository) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record brandRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: domain.EntityBrand, ID: id}
		}
		return nil, err
	}
	return &domain.Brand{ID: record.ID, Name: record.Name}, nil
}

func (r *Repository) AddBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, errors.New("brand is nil")
	}
	record := brandRecord{ID: brand.ID, Name: brand.Name, NameKey: domain.NameKey(brand.Name)}
	if err := r.db.WithContext(ctx).Omit("seq").Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &domain.DuplicateNameError{Entity: domain.EntityBrand, Name: brand.Name}
		}
		return nil, err
	}
	return brand.Clone(), nil
}

func (r *Repository) UpdateBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, errors.New("brand is nil")
	}
	result := r.db.WithContext(ctx).Model(&brandRecord{}).Where("id = ?", brand.ID).Updates(map[string]any{
		"name":     brand.Name,
		"name_key": domain.NameKey(brand.Name),
	})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, &domain.DuplicateNameError{Entity: domain.EntityBrand, Name: brand.Name}
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, &domain.NotFoundError{Entity: domain.EntityBrand, ID: brand.ID}
	}
	return brand.Clone(), nil
}

func (r *Repository) DeleteBrand(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.serializable(ctx, func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&brandRecord{}, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &domain.NotFoundError{Entity: domain.EntityBrand, ID: id}
			}
			return err
		}
		var refs int64
		if err := tx.Model(&productRecord{}).Where("brand_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return &domain.ReferentialIntegrityError{Entity: domain.EntityBrand, ID: id, References: int(refs)}
		}
		return tx.Delete(&brandRecord{}, "id = ?", id).Error
	})
}

func (r *Repository) GetOrCreateBrand(ctx context.Context, candidate *domain.Brand) (*domain.Brand, bool, error) {
	if err := r.ensureDB(); err != nil {
		return nil, false, err
	}
	if candidate == nil {
		return nil, false, errors.New("brand is nil")
	}
	record := brandRecord{ID: candidate.ID, Name: candidate.Name, NameKey: domain.NameKey(candidate.Name)}
	result := r.db.WithContext(ctx).
		Omit("seq").
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name_key"}}, DoNothing: true}).
		Create(&record)
	if result.Error != nil {
		return nil, false, result.Error
	}
	created := result.RowsAffected > 0
	var stored brandRecord
	if err := r.db.WithContext(ctx).First(&stored, "name_key = ?", record.NameKey).Error; err != nil {
		return nil, false, err
	}
	return &domain.Brand{ID: stored.ID, Name: stored.Name}, created, nil
}

func (r *Repository) ListSizes(ctx context.Context) ([]*domain.Size, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []sizeRecord
	if err := r.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	sizes := make([]*domain.Size, 0, len(records))
	for _, rec := range records {
		sizes = append(sizes, &domain.Size{ID: rec.ID, Name: rec.Name})
	}
	return sizes, nil
}

func (r *Repository) GetSize(ctx context.Context, id string) (*domain.Size, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record sizeRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: domain.EntitySize, ID: id}
		}
		return nil, err
	}
	return &domain.Size{ID: record.ID, Name: record.Name}, nil
}

func (r *Repository) AddSize(ctx context.Context, size *domain.Size) (*domain.Size, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if size == nil {
		return nil, errors.New("size is nil")
	}
	record := sizeRecord{ID: size.ID, Name: size.Name, NameKey: domain.NameKey(size.Name)}
	if err := r.db.WithContext(ctx).Omit("seq").Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &domain.DuplicateNameError{Entity: domain.EntitySize, Name: size.Name}
		}
		return nil, err
	}
	return size.Clone(), nil
}

func (r *Repository) RenameSize(ctx context.Context, oldID string, size *domain.Size) (*domain.Size, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if size == nil {
		return nil, errors.New("size is nil")
	}
	err := r.serializable(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&sizeRecord{}).Where("id = ?", oldID).Updates(map[string]any{
			"id":       size.ID,
			"name":     size.Name,
			"name_key": domain.NameKey(size.Name),
		})
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return &domain.DuplicateNameError{Entity: domain.EntitySize, Name: size.Name}
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &domain.NotFoundError{Entity: domain.EntitySize, ID: oldID}
		}
		if oldID == size.ID {
			return nil
		}
		return tx.Model(&productRecord{}).
			Where("? = ANY(size_ids)", oldID).
			Update("size_ids", gorm.Expr("array_replace(size_ids, ?, ?)", oldID, size.ID)).Error
	})
	if err != nil {
		return nil, err
	}
	return size.Clone(), nil
}

func (r *Repository) DeleteSize(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.serializable(ctx, func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&sizeRecord{}, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &domain.NotFoundError{Entity: domain.EntitySize, ID: id}
			}
			return err
		}
		var refs int64
		if err := tx.Model(&productRecord{}).Where("? = ANY(size_ids)", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return &domain.ReferentialIntegrityError{Entity: domain.EntitySize, ID: id, References: int(refs)}
		}
		return tx.Delete(&sizeRecord{}, "id = ?", id).Error
	})
}

func (r *Repository) GetSettings(ctx context.Context) (domain.StoreSettings, error) {
	if err := r.ensureDB(); err != nil {
		return domain.StoreSettings{}, err
	}
	var record settingsRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", settingsRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.StoreSettings{}, nil
		}
		return domain.StoreSettings{}, err
	}
	return domain.StoreSettings{IsStoreClosed: record.IsStoreClosed, LogoURL: record.LogoURL}, nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings domain.StoreSettings) (domain.StoreSettings, error) {
	if err := r.ensureDB(); err != nil {
		return domain.StoreSettings{}, err
	}
	record := settingsRecord{ID: settingsRowID, IsStoreClosed: settings.IsStoreClosed, LogoURL: settings.LogoURL}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_store_closed", "logo_url"}),
		}).Create(&record).Error; err != nil {
		return domain.StoreSettings{}, err
	}
	return settings, nil
}

func (r *Repository) serializable(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func checkReferences(tx *gorm.DB, product *domain.Product) error {
	var brands int64
	if err := tx.Model(&brandRecord{}).Where("id = ?", product.BrandID).Count(&brands).Error; err != nil {
		return err
	}
	if brands == 0 {
		return &domain.UnknownReferenceError{Entity: domain.EntityBrand, ID: product.BrandID}
	}
	if len(product.SizeIDs) == 0 {
		return nil
	}
	var known []string
	if err := tx.Model(&sizeRecord{}).Where("id IN ?", product.SizeIDs).Pluck("id", &known).Error; err != nil {
		return err
	}
	found := make(map[string]struct{}, len(known))
	for _, id := range known {
		found[id] = struct{}{}
	}
	for _, id := range product.SizeIDs {
		if _, ok := found[id]; !ok {
			return &domain.UnknownReferenceError{Entity: domain.EntitySize, ID: id}
		}
	}
	return nil
}

func toProductRecord(p *domain.Product) productRecord {
	var discount *int
	if p.DiscountPercent != nil {
		d := *p.DiscountPercent
		discount = &d
	}
	return productRecord{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DiscountPercent: discount,
		BrandID:         p.BrandID,
		Image:           p.Image,
		SizeIDs:         pq.StringArray(append([]string{}, p.SizeIDs...)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DiscountPercent: r.DiscountPercent,
		BrandID:         r.BrandID,
		Image:           r.Image,
		SizeIDs:         append([]string{}, r.SizeIDs...),
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
}
