// Package ledger persists completed orders. The ledger is append-only: orders
// are written once at completion and never read back by the bot. Three drivers
// are provided: process memory, a JSON-lines file, and Postgres.
package ledger

import (
	"context"
	"fmt"

	"github.com/aeiptv/salesbot/internal/config"
	"github.com/aeiptv/salesbot/internal/order"
)

// Ledger records completed orders.
type Ledger interface {
	// Append writes one order. Implementations must be safe for concurrent use.
	Append(ctx context.Context, ord order.Order) error
	// Close releases underlying resources.
	Close() error
}

// Open builds the ledger selected by the storage configuration. For the
// postgres driver pending migrations are applied first.
func Open(cfg config.StorageConfig) (Ledger, error) {
	switch cfg.Driver {
	case config.StorageMemory:
		return NewMemory(), nil
	case config.StorageFile:
		return OpenFile(cfg.Path)
	case config.StoragePostgres:
		if err := RunMigrations(cfg.Database); err != nil {
			return nil, fmt.Errorf("ledger: %w", err)
		}
		db, err := Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("ledger: %w", err)
		}
		return NewPostgres(db), nil
	default:
		return nil, fmt.Errorf("ledger: unknown storage driver %q", cfg.Driver)
	}
}
