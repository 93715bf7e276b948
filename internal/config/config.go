package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the gatekeeper service.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Storage      StorageConfig      `yaml:"storage"`
	SES          SESConfig          `yaml:"ses"`
	Accounts     AccountsConfig     `yaml:"accounts"`
	Redis        RedisConfig        `yaml:"redis"`
	Verification VerificationConfig `yaml:"verification"`
	Site         SiteConfig         `yaml:"site"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with ECS detection.
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// StorageConfig holds the bounce table configuration. An empty BounceTable
// puts the registry in degraded mode: suppression checks are skipped rather
// than failing.
type StorageConfig struct {
	BounceTable string `yaml:"bounce_table"`
	AWSRegion   string `yaml:"aws_region"`
	AWSProfile  string `yaml:"aws_profile"` // Empty string uses default credential chain (IAM role on ECS)
}

// GetAWSProfile returns the AWS profile, with environment variable override.
func (c StorageConfig) GetAWSProfile() string {
	if envProfile := os.Getenv("AWS_PROFILE_OVERRIDE"); envProfile != "" {
		if envProfile == "none" || envProfile == "iam" {
			return ""
		}
		return envProfile
	}
	// On ECS/Lambda, don't use a profile - use IAM role
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return ""
	}
	return c.AWSProfile
}

// SESConfig holds AWS SES API configuration for the mail transport.
type SESConfig struct {
	Region         string `yaml:"region"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration.
func (c SESConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AccountsConfig holds the account directory database settings.
type AccountsConfig struct {
	DatabaseURL string `yaml:"database_url"`
}

// RedisConfig holds the validation result cache settings. Disabled when
// Addr is empty.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// VerificationConfig controls the active email-validation path. When Enabled
// is false the format check is skipped entirely and treated as valid.
type VerificationConfig struct {
	Enabled           bool     `yaml:"enabled"`
	CheckRegex        bool     `yaml:"check_regex"`
	CheckMX           bool     `yaml:"check_mx"`
	CheckDisposable   bool     `yaml:"check_disposable"`
	CheckSMTP         bool     `yaml:"check_smtp"`
	CacheTTLSeconds   int      `yaml:"cache_ttl_seconds"`
	DisposableDomains []string `yaml:"disposable_domains"`
	ProbeHELO         string   `yaml:"probe_helo"`
	ProbeFrom         string   `yaml:"probe_from"`
}

// CacheTTL returns the validation cache TTL as a duration.
func (c VerificationConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// SiteConfig supplies sender identity and branding for rendered messages.
type SiteConfig struct {
	Name          string `yaml:"name"`
	SenderName    string `yaml:"sender_name"`
	SenderAddress string `yaml:"sender_address"`
	LogoURL       string `yaml:"logo_url"`
	BaseURL       string `yaml:"base_url"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Storage.AWSRegion == "" {
		cfg.Storage.AWSRegion = "us-east-1"
	}
	if cfg.SES.Region == "" {
		cfg.SES.Region = "us-east-1"
	}
	if cfg.SES.TimeoutSeconds == 0 {
		cfg.SES.TimeoutSeconds = 30
	}
	if cfg.Verification.CacheTTLSeconds == 0 {
		cfg.Verification.CacheTTLSeconds = 3600
	}
	if cfg.Verification.ProbeHELO == "" {
		cfg.Verification.ProbeHELO = "localhost"
	}
	if cfg.Verification.ProbeFrom == "" && cfg.Site.SenderAddress != "" {
		cfg.Verification.ProbeFrom = cfg.Site.SenderAddress
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if table := os.Getenv("BOUNCE_TABLE"); table != "" {
		cfg.Storage.BounceTable = table
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.Storage.AWSRegion = region
	}
	if accessKey := os.Getenv("AWS_SES_ACCESS_KEY"); accessKey != "" {
		cfg.SES.AccessKey = accessKey
	}
	if secretKey := os.Getenv("AWS_SES_SECRET_KEY"); secretKey != "" {
		cfg.SES.SecretKey = secretKey
	}
	if region := os.Getenv("AWS_SES_REGION"); region != "" {
		cfg.SES.Region = region
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Accounts.DatabaseURL = dbURL
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if sender := os.Getenv("SITE_SENDER_ADDRESS"); sender != "" {
		cfg.Site.SenderAddress = sender
	}

	return cfg, nil
}
