package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oddscope/oddscope/internal/pkg/config"
	"github.com/oddscope/oddscope/internal/pkg/models"
)

const redisSnapshotKey = "oddscope:snapshot"

var _ Store = (*RedisStore)(nil)

// RedisStore keeps the snapshot as one JSON value under a fixed key. SET is
// atomic, so readers never see a partial document.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("redis snapshot storage initialized", "addr", cfg.Addr)
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Read(ctx context.Context) (models.RootSnapshot, error) {
	data, err := s.client.Get(ctx, redisSnapshotKey).Bytes()
	if err == redis.Nil {
		return models.EmptyRoot(), nil
	}
	if err != nil {
		slog.Error("redis snapshot unreadable, serving empty snapshot", "error", err)
		return models.EmptyRoot(), nil
	}

	var snap models.RootSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Warn("redis snapshot corrupt, serving empty snapshot", "error", err)
		return models.EmptyRoot(), nil
	}
	if snap.Odds == nil {
		snap.Odds = map[string]models.SportSnapshot{}
	}
	return snap, nil
}

func (s *RedisStore) Write(ctx context.Context, snap models.RootSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, redisSnapshotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
