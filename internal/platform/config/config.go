// Package config assembles runtime configuration from defaults, an
// optional .env file, and environment variables.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultEnvFile       = ".env"
	defaultAddr          = ":8080"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultIdleTimeout   = 120 * time.Second
	defaultCatalogPath   = "data/melons.yaml"
	defaultCustomersPath = "data/customers.txt"
	defaultCookieName    = "ubermelon_session"
	defaultTemplatesDir  = "templates"
	defaultAssetsDir     = "public/assets"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Session SessionConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TemplatesDir string
	AssetsDir    string
}

// DataConfig locates the seed files both stores load at startup.
type DataConfig struct {
	CatalogPath   string
	CustomersPath string
}

// SessionConfig controls the session cookie. HashKey signs the cookie;
// BlockKey additionally encrypts it. An empty HashKey makes the
// composition root generate a process-ephemeral one (dev only).
type SessionConfig struct {
	CookieName string
	HashKey    string
	BlockKey   string
	Secure     bool
}

// ValidationError is returned when required configuration fields are
// missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups.
// Values in the map take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on
// provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the application configuration by combining defaults,
// .env overrides, and environment variables.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:         stringWithDefault(lookup, "SHOP_ADDR", defaultAddr),
			ReadTimeout:  durationWithDefault(lookup, "SHOP_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "SHOP_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "SHOP_IDLE_TIMEOUT", defaultIdleTimeout),
			TemplatesDir: stringWithDefault(lookup, "SHOP_TEMPLATES_DIR", defaultTemplatesDir),
			AssetsDir:    stringWithDefault(lookup, "SHOP_ASSETS_DIR", defaultAssetsDir),
		},
		Data: DataConfig{
			CatalogPath:   stringWithDefault(lookup, "SHOP_CATALOG_PATH", defaultCatalogPath),
			CustomersPath: stringWithDefault(lookup, "SHOP_CUSTOMERS_PATH", defaultCustomersPath),
		},
		Session: SessionConfig{
			CookieName: stringWithDefault(lookup, "SHOP_SESSION_COOKIE", defaultCookieName),
			HashKey:    stringWithDefault(lookup, "SHOP_SESSION_HASH_KEY", ""),
			BlockKey:   stringWithDefault(lookup, "SHOP_SESSION_BLOCK_KEY", ""),
			Secure:     boolWithDefault(lookup, "SHOP_SESSION_SECURE", false),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		missing = append(missing, "Server.Addr")
	}
	if strings.TrimSpace(cfg.Server.TemplatesDir) == "" {
		missing = append(missing, "Server.TemplatesDir")
	}
	if strings.TrimSpace(cfg.Data.CatalogPath) == "" {
		missing = append(missing, "Data.CatalogPath")
	}
	if strings.TrimSpace(cfg.Data.CustomersPath) == "" {
		missing = append(missing, "Data.CustomersPath")
	}
	if strings.TrimSpace(cfg.Session.CookieName) == "" {
		missing = append(missing, "Session.CookieName")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		value = strings.Trim(value, "\"'")
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
