// Package snapshot persists the latest aggregated odds as a single JSON
// document. The file backend is the default; Postgres and Redis backends
// store the same document for deployments that already run those services.
package snapshot

import (
	"context"
	"fmt"

	"github.com/oddscope/oddscope/internal/pkg/config"
	"github.com/oddscope/oddscope/internal/pkg/models"
)

// Store reads and replaces the persisted RootSnapshot. Read degrades to an
// empty snapshot when nothing usable is stored; Write replaces the whole
// document atomically so no reader observes a partial snapshot.
type Store interface {
	Read(ctx context.Context) (models.RootSnapshot, error)
	Write(ctx context.Context, snap models.RootSnapshot) error
	Close() error
}

// Open builds the store selected by config.
func Open(cfg *config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.File.Path)
	case "postgres":
		return NewPostgresStore(&cfg.Postgres)
	case "redis":
		return NewRedisStore(&cfg.Redis)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
