package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

const defaultPrefix = "storefront:cart:"

// SnapshotStore keeps serialized carts in Redis. Each save refreshes the TTL.
type SnapshotStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewSnapshotStore wires a Redis-backed store. A zero ttl keeps snapshots forever.
func NewSnapshotStore(client redis.UniversalClient, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{client: client, prefix: defaultPrefix, ttl: ttl}
}

func (s *SnapshotStore) Save(ctx context.Context, key, value string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

func (s *SnapshotStore) Load(ctx context.Context, key string) (string, bool, error) {
	if err := s.ensureClient(); err != nil {
		return "", false, err
	}
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SnapshotStore) Clear(ctx context.Context, key string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *SnapshotStore) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis cart snapshot store not configured")
	}
	return nil
}
