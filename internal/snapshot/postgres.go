package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/oddscope/oddscope/internal/pkg/config"
	"github.com/oddscope/oddscope/internal/pkg/models"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore keeps the snapshot as a single JSONB row. The upsert makes
// each commit atomic; the last writer wins.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(cfg *config.PostgresConfig) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("postgres snapshot storage initialized")
	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS odds_snapshot (
		id INT PRIMARY KEY CHECK (id = 1),
		doc JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *PostgresStore) Read(ctx context.Context) (models.RootSnapshot, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM odds_snapshot WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return models.EmptyRoot(), nil
	}
	if err != nil {
		slog.Error("postgres snapshot unreadable, serving empty snapshot", "error", err)
		return models.EmptyRoot(), nil
	}

	var snap models.RootSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Warn("postgres snapshot corrupt, serving empty snapshot", "error", err)
		return models.EmptyRoot(), nil
	}
	if snap.Odds == nil {
		snap.Odds = map[string]models.SportSnapshot{}
	}
	return snap, nil
}

func (s *PostgresStore) Write(ctx context.Context, snap models.RootSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
	INSERT INTO odds_snapshot (id, doc, updated_at) VALUES (1, $1, NOW())
	ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`
	if _, err := s.db.ExecContext(ctx, query, data); err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }
