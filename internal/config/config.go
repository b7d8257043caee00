// Package config loads server settings from defaults, an optional YAML file
// and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sushant-k-tiwari/TravelSplit/internal/calculator"
)

// Marks backends.
const (
	MarksBackendSQLite = "sqlite"
	MarksBackendRedis  = "redis"
)

// Config holds every server setting.
type Config struct {
	Port       int    `yaml:"port"`
	DBPath     string `yaml:"db_path"`
	StaticPath string `yaml:"static_path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// LedgerPolicy selects whether settled expenses count toward balances.
	LedgerPolicy string `yaml:"ledger_policy"`

	MarksBackend  string `yaml:"marks_backend"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// AuthSecret enables token auth when set.
	AuthSecret         string        `yaml:"auth_secret"`
	AuthPassphraseHash string        `yaml:"auth_passphrase_hash"`
	TokenTTL           time.Duration `yaml:"token_ttl"`

	CORSOrigins     []string      `yaml:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:            8080,
		DBPath:          "./data/travelsplit.db",
		StaticPath:      "./static",
		LogLevel:        "info",
		LogFormat:       "text",
		LedgerPolicy:    string(calculator.DefaultPolicy),
		MarksBackend:    MarksBackendSQLite,
		RedisAddr:       "localhost:6379",
		TokenTTL:        24 * time.Hour,
		CORSOrigins:     []string{"*"},
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds the configuration. The YAML file named by CONFIG_FILE is
// optional; environment variables override it.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.DBPath, "DB_PATH")
	setString(&c.StaticPath, "STATIC_PATH")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")
	setString(&c.LedgerPolicy, "LEDGER_POLICY")
	setString(&c.MarksBackend, "MARKS_BACKEND")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setString(&c.AuthSecret, "AUTH_SECRET")
	setString(&c.AuthPassphraseHash, "AUTH_PASSPHRASE_HASH")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = strings.Split(v, ",")
		for i := range c.CORSOrigins {
			c.CORSOrigins[i] = strings.TrimSpace(c.CORSOrigins[i])
		}
	}

	if err := setInt(&c.Port, "PORT"); err != nil {
		return err
	}
	if err := setInt(&c.RedisDB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setDuration(&c.TokenTTL, "TOKEN_TTL"); err != nil {
		return err
	}
	return setDuration(&c.ShutdownTimeout, "SHUTDOWN_TIMEOUT")
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if _, err := calculator.ParsePolicy(c.LedgerPolicy); err != nil {
		errs = append(errs, err)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log_format %q", c.LogFormat))
	}

	switch c.MarksBackend {
	case MarksBackendSQLite:
	case MarksBackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("redis_addr is required for the redis marks backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown marks_backend %q", c.MarksBackend))
	}

	if c.AuthPassphraseHash != "" && c.AuthSecret == "" {
		errs = append(errs, errors.New("auth_passphrase_hash requires auth_secret"))
	}
	if c.AuthSecret != "" && c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token_ttl must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}

	return errors.Join(errs...)
}

// AuthEnabled reports whether RPCs require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}

// Policy returns the parsed ledger policy. Call after Validate.
func (c *Config) Policy() calculator.Policy {
	p, err := calculator.ParsePolicy(c.LedgerPolicy)
	if err != nil {
		return calculator.DefaultPolicy
	}
	return p
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
