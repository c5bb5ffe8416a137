package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"log/slog"

	"github.com/aeiptv/salesbot/internal/logger"
	"github.com/aeiptv/salesbot/internal/order"
)

// FileLedger appends one JSON document per line to a single file. Lines are
// written whole under a mutex, so concurrent appends never interleave.
type FileLedger struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// OpenFile opens (or creates) the JSONL ledger at path, creating parent
// directories as needed.
func OpenFile(path string) (*FileLedger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ledger dir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	logger.DB.Info("ledger opened",
		slog.String("event", "ledger.open"),
		slog.String("driver", "file"),
		slog.String("path", path),
	)
	return &FileLedger{f: f, path: path}, nil
}

// Append marshals the order and writes it as one line.
func (l *FileLedger) Append(_ context.Context, ord order.Order) error {
	line, err := json.Marshal(ord)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", ord.ID, err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.Write(line); err != nil {
		return fmt.Errorf("append order %s to %s: %w", ord.ID, l.path, err)
	}
	return nil
}

// Close flushes and closes the ledger file.
func (l *FileLedger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("sync ledger %s: %w", l.path, err)
	}
	return l.f.Close()
}
