package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// Backend names accepted by DATA_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendBaaS     = "baas"
)

// Config carries everything the persistence and auth core needs. Missing or
// malformed backend settings do not fail Load; each backend is validated
// independently so a deployment with a single backend still starts.
type Config struct {
	// Postgres backend.
	DatabaseURL string

	// BaaS backend (managed data + identity API).
	BaaSURL     string
	BaaSAnonKey string

	// Which backend the repository selector activates at startup.
	DataBackend string

	BcryptCost int
	JWTSecret  string

	// Optional profile cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Consumed only by the one-time seed routine.
	AdminEmail    string
	AdminPassword string
	DemoEmail     string
	DemoPassword  string

	// Admin allow-list used when the BaaS backend is active and no
	// admin-role table exists.
	AdminAllowList []string

	LogLevel string
}

// Load reads the configuration from the environment. It never fails: backend
// configuration problems surface later as Disabled handles, not here.
func Load() *Config {
	cfg := &Config{
		DatabaseURL: GetEnv("DATABASE_URL", ""),
		BaaSURL:     GetEnv("BAAS_URL", ""),
		BaaSAnonKey: GetEnv("BAAS_ANON_KEY", ""),
		DataBackend: GetEnv("DATA_BACKEND", BackendPostgres),
		BcryptCost:  GetIntEnv("BCRYPT_COST", 12),
		JWTSecret:   GetEnv("JWT_SECRET", ""),

		RedisAddr:     GetEnv("REDIS_ADDR", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetIntEnv("REDIS_DB", 0),

		AdminEmail:    GetEnv("DEFAULT_ADMIN_EMAIL", ""),
		AdminPassword: GetEnv("DEFAULT_ADMIN_PASSWORD", ""),
		DemoEmail:     GetEnv("DEMO_USER_EMAIL", ""),
		DemoPassword:  GetEnv("DEMO_USER_PASSWORD", ""),

		LogLevel: GetEnv("LOG_LEVEL", "info"),
	}

	if raw := GetEnv("ADMIN_ALLOW_LIST", ""); raw != "" {
		for _, e := range strings.Split(raw, ",") {
			if e = strings.TrimSpace(strings.ToLower(e)); e != "" {
				cfg.AdminAllowList = append(cfg.AdminAllowList, e)
			}
		}
	}

	return cfg
}

// ValidatePostgres reports whether the Postgres connection string is usable.
func (c *Config) ValidatePostgres() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL scheme %q is not a postgres scheme", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("DATABASE_URL has no host")
	}
	return nil
}

// ValidateBaaS reports whether the managed backend settings are usable.
func (c *Config) ValidateBaaS() error {
	if c.BaaSURL == "" {
		return fmt.Errorf("BAAS_URL is not set")
	}
	u, err := url.Parse(c.BaaSURL)
	if err != nil {
		return fmt.Errorf("BAAS_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("BAAS_URL scheme %q is not http(s)", u.Scheme)
	}
	if c.BaaSAnonKey == "" {
		return fmt.Errorf("BAAS_ANON_KEY is not set")
	}
	return nil
}

// IsAdminAllowed checks the configured allow-list, case-insensitively.
func (c *Config) IsAdminAllowed(email string) bool {
	email = strings.ToLower(email)
	for _, e := range c.AdminAllowList {
		if e == email {
			return true
		}
	}
	return false
}
