package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/choufli-storefront/internal/platform/database"
	platformtemporal "github.com/Apurer/choufli-storefront/internal/platform/temporal"
)

// Config carries environment-driven settings for the intake API and worker processes.
type Config struct {
	Port               string
	PostgresDSN        string
	DataDir            string
	DBPath             string
	AdminUser          string
	AdminPassword      string
	StaticDir          string
	OrderRatePerMinute float64
	OrderRateBurst     int
	TemporalAddress    string
	TemporalNamespace  string
	TemporalDisabled   bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	dataDir := envDefault("DATA_DIR", "data")
	cfg := Config{
		Port:              envDefault("PORT", "8000"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		DataDir:           dataDir,
		DBPath:            envDefault("DB_PATH", filepath.Join(dataDir, "orders.db")),
		AdminUser:         "admin",
		AdminPassword:     envDefault("ADMIN_PASSWORD", "admin"),
		StaticDir:         strings.TrimSpace(os.Getenv("STATIC_DIR")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}
	rate, err := positiveFloat("ORDER_RATE_PER_MINUTE", 30)
	if err != nil {
		return Config{}, err
	}
	cfg.OrderRatePerMinute = rate
	burst, err := positiveInt("ORDER_RATE_BURST", 10)
	if err != nil {
		return Config{}, err
	}
	cfg.OrderRateBurst = burst
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Database selects Postgres when POSTGRES_DSN is set and SQLite at DB_PATH otherwise.
func (c Config) Database() database.Config {
	return database.Config{PostgresDSN: c.PostgresDSN, SQLitePath: c.DBPath}
}

// Temporal returns the client settings.
func (c Config) Temporal() platformtemporal.Config {
	return platformtemporal.Config{
		Address:   c.TemporalAddress,
		Namespace: c.TemporalNamespace,
		Disabled:  c.TemporalDisabled,
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func positiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}

func positiveFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", key)
	}
	return n, nil
}
