package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_SERVER_URL points at a running server; tests skip when unset.
	ServerURL string `envconfig:"E2E_SERVER_URL"`
	// E2E_AUTH_TOKEN is a bearer token for the write-path checks; those are
	// skipped when unset so the suite stays read-only by default.
	AuthToken string `envconfig:"E2E_AUTH_TOKEN"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
