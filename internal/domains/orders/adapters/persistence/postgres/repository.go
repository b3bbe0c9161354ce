package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Lines are stored as a JSON column.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID              string          `gorm:"primaryKey;column:id;size:64"`
	Seq             int64           `gorm:"column:seq;autoIncrement"`
	UserID          string          `gorm:"column:user_id;size:64;index:idx_orders_user_date"`
	Number          string          `gorm:"column:number;size:16"`
	OrderDate       time.Time       `gorm:"column:order_date;index:idx_orders_user_date"`
	Lines           []lineRecord    `gorm:"column:lines;serializer:json"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric"`
	Status          string          `gorm:"column:status;type:varchar(32)"`
	ShippingAddress string          `gorm:"column:shipping_address"`
	TrackingNumber  string          `gorm:"column:tracking_number"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type lineRecord struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Image       string          `json:"image"`
}

// Models lists the records owned by this adapter for schema migration.
func Models() []any {
	return []any{&orderRecord{}, &idempotencyRecord{}}
}

// Save inserts the order. An order whose id already exists is left untouched and returned.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Omit("seq").
		Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByUser returns the user's orders in insertion order.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("seq").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	lines := make([]lineRecord, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, lineRecord{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Image:       l.Image,
		})
	}
	return orderRecord{
		ID:              order.ID,
		UserID:          order.UserID,
		Number:          order.Number,
		OrderDate:       order.OrderDate,
		Lines:           lines,
		Total:           order.Total,
		Status:          string(order.Status),
		ShippingAddress: order.ShippingAddress,
		TrackingNumber:  order.TrackingNumber,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	lines := make([]domain.Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, domain.Line{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Image:       l.Image,
		})
	}
	return &domain.Order{
		ID:              r.ID,
		UserID:          r.UserID,
		Number:          r.Number,
		OrderDate:       r.OrderDate.UTC(),
		Lines:           lines,
		Total:           r.Total,
		Status:          domain.Status(r.Status),
		ShippingAddress: r.ShippingAddress,
		TrackingNumber:  r.TrackingNumber,
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
}
