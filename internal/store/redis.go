package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/portal-provas/exam-service/internal/models"
)

// RedisStore keeps the snapshot under a single namespaced key. It gives the
// portal a shared store across instances, but note the package-level caveat:
// load-mutate-save is only safe while writers are serialized.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    prefix + Namespace,
	}
}

func (s *RedisStore) Load(ctx context.Context) (*models.State, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return SeedState(), nil
		}
		return nil, fmt.Errorf("failed to load snapshot from redis: %w", err)
	}

	var state models.State
	if err := json.Unmarshal(data, &state); err != nil {
		return SeedState(), fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, state *models.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot to redis: %w", err)
	}
	return nil
}
