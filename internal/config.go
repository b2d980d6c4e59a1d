package internal

import (
	"fmt"
	"time"
)

// Storage drivers. Badger is embedded and single-node; Postgres shares both
// the posts and the rate-limit state across instances.
const (
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

type Config struct {
	Host      string `env:"HOST,default=localhost"`
	Port      int    `env:"PORT,default=8080"`
	LogLevel  string `env:"LOG_LEVEL,default=INFO"`
	JWTSecret string `env:"JWT_SECRET,required=true"`

	StorageDriver  string `env:"STORAGE_DRIVER,default=badger"`
	BadgerFilepath string `env:"BADGER_FILEPATH"`
	PostgresDSN    string `env:"POSTGRES_DSN"`

	DirectoryBaseURL string        `env:"DIRECTORY_BASE_URL,required=true"`
	DirectoryToken   string        `env:"DIRECTORY_TOKEN"`
	DirectoryTimeout time.Duration `env:"DIRECTORY_TIMEOUT,default=5s"`
	StoreTimeout     time.Duration `env:"STORE_TIMEOUT,default=5s"`

	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX,default=3"`
	RateLimitScope  string        `env:"RATE_LIMIT_SCOPE,default=author"`

	FeedPageSize int `env:"FEED_PAGE_SIZE,default=10"`
}

// ValidateStorage checks that the selected driver has the settings it needs.
func ValidateStorage(cfg Config) error {
	switch cfg.StorageDriver {
	case DriverBadger:
		if cfg.BadgerFilepath == "" {
			return fmt.Errorf("BADGER_FILEPATH is required with STORAGE_DRIVER=badger")
		}
	case DriverPostgres:
		if cfg.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required with STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q, want %q or %q", cfg.StorageDriver, DriverBadger, DriverPostgres)
	}
	return nil
}
