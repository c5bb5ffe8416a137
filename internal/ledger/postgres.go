package ledger

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/aeiptv/salesbot/internal/config"
	"github.com/aeiptv/salesbot/internal/logger"
	"github.com/aeiptv/salesbot/internal/order"
)

// Connect opens the database connection, configures the pool, and verifies
// connectivity.
func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	took := time.Since(start)
	if err != nil {
		logger.DB.Error("db connect failed",
			slog.String("event", "db.connect"),
			slog.String("driver", "postgres"),
			slog.String("host", cfg.Host),
			slog.String("port", cfg.Port),
			slog.String("db", cfg.Name),
			slog.Duration("duration", logger.RoundMS(took)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("db connect: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxConnections)

	logger.DB.Info("db connected",
		slog.String("event", "db.connect"),
		slog.String("driver", "postgres"),
		slog.String("host", cfg.Host),
		slog.String("port", cfg.Port),
		slog.String("db", cfg.Name),
		slog.Int("pool_open", cfg.MaxConnections),
		slog.Duration("duration", logger.RoundMS(took)),
	)

	return db, nil
}

const insertOrder = `
INSERT INTO orders (
    id, conversation_id, username, contact_name,
    package_code, package_name, price, currency,
    phone, payment_method, proof_ref, completed_at
) VALUES (
    :id, :conversation_id, :username, :contact_name,
    :package_code, :package_name, :price, :currency,
    :phone, :payment_method, :proof_ref, :completed_at
)`

// PostgresLedger writes each order as one row in the orders table.
type PostgresLedger struct {
	db *sqlx.DB
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sqlx.DB) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Append inserts the order row.
func (l *PostgresLedger) Append(ctx context.Context, ord order.Order) error {
	start := time.Now()
	if _, err := l.db.NamedExecContext(ctx, insertOrder, ord); err != nil {
		return fmt.Errorf("insert order %s: %w", ord.ID, err)
	}
	logger.DB.Debug("order inserted",
		slog.String("event", "ledger.append"),
		slog.String("order_id", ord.ID),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}

// Close closes the connection pool.
func (l *PostgresLedger) Close() error {
	return l.db.Close()
}
