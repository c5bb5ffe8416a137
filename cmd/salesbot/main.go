package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/aeiptv/salesbot/internal/buildinfo"
	"github.com/aeiptv/salesbot/internal/catalog"
	"github.com/aeiptv/salesbot/internal/config"
	"github.com/aeiptv/salesbot/internal/engine"
	"github.com/aeiptv/salesbot/internal/i18n"
	"github.com/aeiptv/salesbot/internal/ledger"
	"github.com/aeiptv/salesbot/internal/logger"
	"github.com/aeiptv/salesbot/internal/session"
	"github.com/aeiptv/salesbot/internal/telegram"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("salesbot: %v", err)
	}
}

func run() error {
	startedAt := time.Now()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", cfgPath, err)
	}

	if err := logger.Init(cfg.Logging); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	appLog := logger.Component("app")
	appLog.Info("starting",
		slog.String("event", "start"),
		slog.String("version", buildinfo.Version),
		slog.String("commit", buildinfo.Commit),
	)

	cat, err := catalog.FromConfig(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	led, err := ledger.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer func() {
		if err := led.Close(); err != nil {
			appLog.Warn("ledger close failed",
				slog.String("event", "shutdown"),
				slog.String("err", err.Error()),
			)
		}
	}()

	eng := engine.New(cfg.Brand, cat, i18n.New(cfg.Features.DefaultLanguage), cfg.Features)
	store := session.NewMemoryStore()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	appLog.Info("app ready",
		slog.String("event", "ready"),
		slog.Int("count", cat.Len()),
		slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
	)

	err = telegram.Run(ctx, cfg, telegram.Deps{
		Store:  store,
		Engine: eng,
		Ledger: led,
	})

	appLog.Info("shutting down...",
		slog.String("event", "shutdown"),
	)
	return err
}
