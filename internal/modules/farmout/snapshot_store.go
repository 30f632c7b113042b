// README: Snapshot store backed by Redis. The assignment projection is
// disposable, so it lives under a single key and is replaced wholesale.
package farmout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisSnapshotStore struct {
	redis *redis.Client
	key   string
}

func NewRedisSnapshotStore(redisClient *redis.Client, key string) *RedisSnapshotStore {
	return &RedisSnapshotStore{redis: redisClient, key: key}
}

func (s *RedisSnapshotStore) Persist(ctx context.Context, snapshots []AssignmentSnapshot) error {
	data, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.redis.Set(ctx, s.key, data, 0).Err()
}

// Load reads the last persisted projection; a missing key is an empty list.
func (s *RedisSnapshotStore) Load(ctx context.Context) ([]AssignmentSnapshot, error) {
	data, err := s.redis.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return []AssignmentSnapshot{}, nil
	}
	if err != nil {
		return nil, err
	}
	var out []AssignmentSnapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return out, nil
}
