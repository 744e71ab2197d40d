// Package store persists raw activity records and ranking snapshots behind a
// backend-agnostic interface with SQLite and Postgres implementations.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/recruiting-analytics/internal/config"
	"github.com/sells-group/recruiting-analytics/internal/model"
)

// Snapshot is one persisted ranking run result.
type Snapshot struct {
	ID        string          `json:"id"`
	Mode      string          `json:"mode"`
	CreatedAt time.Time       `json:"created_at"`
	Results   json.RawMessage `json:"results"`
}

// Store defines persistence for the analytics pipeline. ListRecords performs
// the date/company/contract filtering the engine itself never does; the
// returned slice feeds the ranker directly.
type Store interface {
	InsertRecords(ctx context.Context, records []model.ActivityRecord) (int, error)
	ListRecords(ctx context.Context, filter model.FilterSelection) ([]model.ActivityRecord, error)

	SaveSnapshot(ctx context.Context, mode model.Mode, results any) (string, error)
	ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
