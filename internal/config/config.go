package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/aeiptv/salesbot/internal/logger"
)

// TelegramConfig holds bot transport settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// RateLimitConfig holds settings for per-user rate limiting.
// ExcludeUpdates accepts update types to bypass limiting: "callback",
// "message", "contact".
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
	// UpdateContact identifies shared-contact updates for rate limit exclusions.
	UpdateContact = "contact"
)

// FeatureConfig toggles optional parts of the sales flow.
type FeatureConfig struct {
	// Languages lists supported language tags; a single entry disables the
	// language selection step.
	Languages []string `yaml:"languages"`
	// DefaultLanguage is used when the user has not chosen a language and as
	// the localization fallback. Must be one of Languages.
	DefaultLanguage string `yaml:"default_language"`
	// CollectPhone asks for a contact number before the payment proof.
	CollectPhone bool `yaml:"collect_phone"`
}

// PackageConfig describes one purchasable package from the catalog section.
type PackageConfig struct {
	Code          string              `yaml:"code"`
	Name          string              `yaml:"name"`
	Price         int64               `yaml:"price"`
	Currency      string              `yaml:"currency"`
	PaymentURL    string              `yaml:"payment_url"`
	PaymentMethod string              `yaml:"payment_method"`
	// Details maps a language tag to description lines shown on the package card.
	Details map[string][]string `yaml:"details"`
}

// StorageConfig selects the order ledger backend.
type StorageConfig struct {
	// Driver is one of "memory", "file", "postgres".
	Driver string `yaml:"driver" envconfig:"STORAGE_DRIVER"`
	// Path is the JSONL ledger file location for the file driver.
	Path     string         `yaml:"path" envconfig:"STORAGE_PATH"`
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds Postgres connection settings for the postgres driver.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

const (
	// StorageMemory keeps orders in process memory only.
	StorageMemory = "memory"
	// StorageFile appends orders to a JSON-lines file.
	StorageFile = "file"
	// StoragePostgres inserts orders into a Postgres table.
	StoragePostgres = "postgres"
)

// Config aggregates the full application configuration.
type Config struct {
	Brand     string          `yaml:"brand"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   logger.Settings `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Features  FeatureConfig   `yaml:"features"`
	Storage   StorageConfig   `yaml:"storage"`
	Catalog   []PackageConfig `yaml:"catalog"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required configuration fields and adjusts defaults.
// Failures here are startup-fatal; nothing below runs with a partial config.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if cfg.Telegram.AdminID == 0 {
		return fmt.Errorf("telegram.admin_id is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	allowedUpdates := map[string]struct{}{
		UpdateCallback: {},
		UpdateMessage:  {},
		UpdateContact:  {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowedUpdates[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message, contact", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}

	if err := normalizeFeatures(&cfg.Features); err != nil {
		return err
	}
	if err := normalizeCatalog(cfg.Catalog); err != nil {
		return err
	}
	if err := normalizeStorage(&cfg.Storage); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.Brand) == "" {
		cfg.Brand = "AEIPTV"
	}
	return nil
}

func normalizeFeatures(f *FeatureConfig) error {
	if len(f.Languages) == 0 {
		f.Languages = []string{"en"}
	}
	for i, lang := range f.Languages {
		tag := strings.ToLower(strings.TrimSpace(lang))
		if tag == "" {
			return fmt.Errorf("features.languages contains an empty tag")
		}
		f.Languages[i] = tag
	}
	if f.DefaultLanguage == "" {
		f.DefaultLanguage = f.Languages[0]
	}
	f.DefaultLanguage = strings.ToLower(strings.TrimSpace(f.DefaultLanguage))
	for _, lang := range f.Languages {
		if lang == f.DefaultLanguage {
			return nil
		}
	}
	return fmt.Errorf("features.default_language %q is not in features.languages", f.DefaultLanguage)
}

func normalizeCatalog(packages []PackageConfig) error {
	if len(packages) == 0 {
		return fmt.Errorf("catalog must contain at least one package")
	}
	seen := make(map[string]struct{}, len(packages))
	for i, p := range packages {
		code := strings.TrimSpace(p.Code)
		if code == "" {
			return fmt.Errorf("catalog[%d]: code is required", i)
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("catalog: duplicate package code %q", code)
		}
		seen[code] = struct{}{}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("catalog[%d] (%s): name is required", i, code)
		}
		if p.Price <= 0 {
			return fmt.Errorf("catalog[%d] (%s): price must be > 0", i, code)
		}
		if strings.TrimSpace(p.PaymentURL) == "" {
			return fmt.Errorf("catalog[%d] (%s): payment_url is required", i, code)
		}
	}
	return nil
}

func normalizeStorage(s *StorageConfig) error {
	driver := strings.ToLower(strings.TrimSpace(s.Driver))
	if driver == "" {
		driver = StorageMemory
	}
	switch driver {
	case StorageMemory:
	case StorageFile:
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("storage.path is required when storage.driver is 'file'")
		}
	case StoragePostgres:
		if strings.TrimSpace(s.Database.Host) == "" {
			return fmt.Errorf("storage.database.host is required when storage.driver is 'postgres'")
		}
		if strings.TrimSpace(s.Database.Name) == "" {
			return fmt.Errorf("storage.database.name is required when storage.driver is 'postgres'")
		}
		if s.Database.Port == "" {
			s.Database.Port = "5432"
		}
		if s.Database.SSLMode == "" {
			s.Database.SSLMode = "disable"
		}
		if s.Database.MaxConnections <= 0 {
			s.Database.MaxConnections = 4
		}
	default:
		return fmt.Errorf("invalid storage.driver %q; allowed: memory, file, postgres", s.Driver)
	}
	s.Driver = driver
	return nil
}
