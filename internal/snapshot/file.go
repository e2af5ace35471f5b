package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/oddscope/oddscope/internal/pkg/models"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the snapshot as one pretty-printed JSON file. Writes go to
// a temp file in the same directory followed by a rename, so concurrent
// readers always see a complete document and the last writer wins.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = "data/odds.json"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	s := &FileStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.Write(context.Background(), models.EmptyRoot()); err != nil {
			return nil, fmt.Errorf("failed to initialize snapshot file: %w", err)
		}
	}
	return s, nil
}

func (s *FileStore) Read(ctx context.Context) (models.RootSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.EmptyRoot(), nil
		}
		slog.Error("snapshot file unreadable, serving empty snapshot", "path", s.path, "error", err)
		return models.EmptyRoot(), nil
	}

	var snap models.RootSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Warn("snapshot file corrupt, serving empty snapshot", "path", s.path, "error", err)
		return models.EmptyRoot(), nil
	}
	if snap.Odds == nil {
		snap.Odds = map[string]models.SportSnapshot{}
	}
	return snap, nil
}

func (s *FileStore) Write(ctx context.Context, snap models.RootSnapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".odds-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
