package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// DefaultSnapshotTTL applies when no TTL is configured.
const DefaultSnapshotTTL = 7 * 24 * time.Hour

// SnapshotStore persists serialized carts in PostgreSQL.
// Expired rows are invisible to Load and removed by PurgeExpired.
type SnapshotStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewSnapshotStore wires a PostgreSQL-backed snapshot store. Caller owns DB lifecycle.
func NewSnapshotStore(db *gorm.DB, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotStore{db: db, ttl: ttl, now: time.Now}
}

type snapshotRecord struct {
	Key       string    `gorm:"primaryKey;column:cart_key;size:255"`
	Payload   string    `gorm:"column:payload;type:text"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (snapshotRecord) TableName() string { return "cart_snapshots" }

// Models lists the records owned by this adapter for schema migration.
func Models() []any {
	return []any{&snapshotRecord{}}
}

func (s *SnapshotStore) Save(ctx context.Context, key, value string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("cart key is required")
	}
	rec := snapshotRecord{Key: key, Payload: value, ExpiresAt: s.now().Add(s.ttl)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

func (s *SnapshotStore) Load(ctx context.Context, key string) (string, bool, error) {
	if err := s.ensureDB(); err != nil {
		return "", false, err
	}
	var rec snapshotRecord
	err := s.db.WithContext(ctx).
		Where("cart_key = ? AND expires_at > ?", key, s.now()).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Payload, true, nil
}

func (s *SnapshotStore) Clear(ctx context.Context, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&snapshotRecord{}, "cart_key = ?", key).Error
}

// PurgeExpired removes expired snapshots and reports how many went. Use for housekeeping or cron.
func (s *SnapshotStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&snapshotRecord{})
	return result.RowsAffected, result.Error
}

func (s *SnapshotStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres cart snapshot store not configured")
	}
	return nil
}
