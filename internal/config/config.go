package config

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/fx"
)

// Config carries process-wide settings resolved from the environment.
type Config struct {
	Environment  string
	HTTPAddr     string
	DatabaseURL  string
	PublicOrigin string
	StorageDir   string
	JWTSecret    string
	OTLPEndpoint string

	Bootstrap BootstrapConfig
}

// BootstrapConfig controls startup seeding.
type BootstrapConfig struct {
	EnsureDefaultAdmin bool
}

// IsProduction reports whether the process runs with production safeguards.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load resolves configuration from environment variables with development
// defaults.
func Load() Config {
	return Config{
		Environment:  envOr("CREDCAR_ENV", "development"),
		HTTPAddr:     envOr("CREDCAR_HTTP_ADDR", ":8080"),
		DatabaseURL:  envOr("CREDCAR_DATABASE_URL", ""),
		PublicOrigin: envOr("CREDCAR_PUBLIC_ORIGIN", "http://localhost:8080"),
		StorageDir:   envOr("CREDCAR_STORAGE_DIR", "data/uploads"),
		JWTSecret:    envOr("CREDCAR_JWT_SECRET", "dev-secret"),
		OTLPEndpoint: envOr("CREDCAR_OTLP_ENDPOINT", ""),
		Bootstrap: BootstrapConfig{
			EnsureDefaultAdmin: envBool("CREDCAR_BOOTSTRAP_ADMIN", true),
		},
	}
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
