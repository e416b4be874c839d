package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ErrMissingSessionSecret is returned when SESSION_SECRET is not set. The
// session signing key has to come from the operator; there is no default.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set")

// AppConfig bundles everything the server needs to run.
type AppConfig struct {
	ListenAddr        string `env:"LISTEN_ADDR"`
	Port              string `env:"PORT" envDefault:"8080"`
	DatabasePath      string `env:"DATABASE_PATH" envDefault:"nemosite.db"`
	SessionSecret     string `env:"SESSION_SECRET"`
	GinMode           string `env:"GIN_MODE" envDefault:"release"`
	UploadDir         string `env:"UPLOAD_DIR" envDefault:"web/static/uploads"`
	UploadURLPath     string `env:"UPLOAD_URL_PATH" envDefault:"/static/uploads"`
	ContentDir        string `env:"CONTENT_DIR" envDefault:"posts"`
	ContentExt        string `env:"CONTENT_EXT" envDefault:".md"`
	ContentAutoReload bool   `env:"CONTENT_AUTO_RELOAD" envDefault:"true"`
	ContentSource     string `env:"CONTENT_SOURCE" envDefault:"files"`
	SiteName          string `env:"SITE_NAME" envDefault:"NEMO"`
}

// Load reads the application configuration from environment variables.
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.SessionSecret = strings.TrimSpace(cfg.SessionSecret)
	if cfg.SessionSecret == "" {
		return AppConfig{}, ErrMissingSessionSecret
	}

	if strings.TrimSpace(cfg.ListenAddr) == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}

	if !strings.HasPrefix(cfg.ContentExt, ".") {
		cfg.ContentExt = "." + cfg.ContentExt
	}

	switch cfg.ContentSource {
	case "files", "database":
	default:
		return AppConfig{}, fmt.Errorf("unknown CONTENT_SOURCE %q", cfg.ContentSource)
	}

	return cfg, nil
}
