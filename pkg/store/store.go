// Package store keeps the last notified title per source. Two backends are provided,
// SQLite (default) and bbolt, both implementing atomic compare-and-set per source.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/umputun/newsbot/pkg/domain"
)

// Config represents store configuration
type Config struct {
	Type            string // sqlite or bolt
	DSN             string // sqlite connection string
	Path            string // bolt file
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Store is a change store with close support
type Store interface {
	LastTitle(ctx context.Context, id domain.SourceID) (string, bool)
	CompareAndSet(ctx context.Context, id domain.SourceID, title string) (bool, error)
	Records(ctx context.Context) ([]domain.SourceRecord, error)
	Close() error
}

// New makes a store for the configured backend
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Type {
	case "", "sqlite":
		return NewSQLite(ctx, cfg)
	case "bolt":
		return NewBolt(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported store type %q", cfg.Type)
	}
}
