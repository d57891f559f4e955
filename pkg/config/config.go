package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers accepted in storage.driver.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config represents the tonlinkd configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	TonConnect TonConnectConfig `yaml:"tonconnect"`
	Storage    StorageConfig    `yaml:"storage"`
	Explorer   ExplorerConfig   `yaml:"explorer"`
	Auth       AuthConfig       `yaml:"auth"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8090" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	// ShutdownTimeout bounds graceful shutdown of the listener.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// TonConnectConfig contains the deep-link client settings
type TonConnectConfig struct {
	ManifestURL           string         `yaml:"manifest_url" validate:"required,url"`
	ReturnScheme          string         `yaml:"return_scheme" validate:"required"`
	StoragePrefix         string         `yaml:"storage_prefix" default:"tonconnect_"`
	PreferredWallet       string         `yaml:"preferred_wallet" default:"tonkeeper"`
	RequestProof          bool           `yaml:"request_proof"`
	ProofMode             string         `yaml:"proof_mode" default:"compatible" validate:"oneof=compatible strict"`
	ProofDomain           string         `yaml:"proof_domain"`
	Network               string         `yaml:"network" validate:"omitempty,oneof=-239 -3"`
	StrictAddressChecksum bool           `yaml:"strict_address_checksum"`
	Timeouts              TimeoutsConfig `yaml:"timeouts"`
	// MaxOperations bounds the daemon's table of tracked operations.
	MaxOperations         int            `yaml:"max_operations" default:"1024" validate:"min=1"`
}

// TimeoutsConfig holds per-kind operation timeouts
type TimeoutsConfig struct {
	Connect     time.Duration `yaml:"connect" default:"300s"`
	Transaction time.Duration `yaml:"transaction" default:"300s"`
	SignData    time.Duration `yaml:"sign_data" default:"300s"`
}

// StorageConfig selects and configures the session storage driver
type StorageConfig struct {
	Driver   string         `yaml:"driver" default:"memory" validate:"oneof=memory redis postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
}

// RedisConfig contains redis connection settings
type RedisConfig struct {
	Addrs    []string      `yaml:"addrs" default:"[\"localhost:6379\"]"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"tonlink"`
	SSLMode  string `yaml:"ssl_mode" default:"disable"`
}

// ExplorerConfig contains the blockchain explorer client settings
type ExplorerConfig struct {
	BaseURL    string        `yaml:"base_url" default:"https://toncenter.com/api/v2" validate:"url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout" default:"10s"`
	RetryCount int           `yaml:"retry_count" default:"2" validate:"min=0,max=10"`
}

// AuthConfig contains bearer token settings for the HTTP API
type AuthConfig struct {
	Enabled   bool   `yaml:"enabled"`
	JWTSecret string `yaml:"jwt_secret"`
	Issuer    string `yaml:"issuer" default:"tonlinkd"`
	Audience  string `yaml:"audience"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled     bool `yaml:"enabled" default:"true"`
	MetricsPort int  `yaml:"metrics_port" default:"9090" validate:"min=1,max=65535"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadEnv loads the given .env files into the process environment. Missing
// files are skipped.
func LoadEnv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

// Load reads a YAML config file, expands ${VAR} references from the
// environment, applies defaults and validates the result.
func Load(configPath string) (*Config, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(raw)
}

// Parse is Load for an in-memory document.
func Parse(raw []byte) (*Config, error) {
	cfg := new(Config)
	// defaults first so explicit zero values in the file survive
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints and the rules that span sections.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Storage.Driver {
	case StorageRedis:
		if len(c.Storage.Redis.Addrs) == 0 {
			return errors.New("storage.redis.addrs is required for the redis driver")
		}
	case StoragePostgres:
		if c.Storage.Database.User == "" {
			return errors.New("storage.database.user is required for the postgres driver")
		}
	}

	if c.Auth.Enabled && len(c.Auth.JWTSecret) < 32 {
		return errors.New("auth.jwt_secret must be at least 32 characters when auth is enabled")
	}
	for name, d := range map[string]time.Duration{
		"connect":     c.TonConnect.Timeouts.Connect,
		"transaction": c.TonConnect.Timeouts.Transaction,
		"sign_data":   c.TonConnect.Timeouts.SignData,
	} {
		if d < 0 {
			return fmt.Errorf("tonconnect.timeouts.%s must not be negative", name)
		}
	}
	return nil
}
