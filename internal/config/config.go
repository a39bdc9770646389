package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		Env     string `yaml:"env"`
		BaseURL string `yaml:"base_url"` // public base URL used in email links
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret             string `yaml:"secret"`
		AccessTTLMin       int    `yaml:"access_ttl_min"`
		RefreshTTLMin      int    `yaml:"refresh_ttl_min"`
		VerificationTTLMin int    `yaml:"verification_ttl_min"`
		ResetTTLMin        int    `yaml:"reset_ttl_min"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
	} `yaml:"email"`

	Storage StorageConfig `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // max avatar size in bytes
		AllowedTypes []string `yaml:"allowed_types"` // allowed MIME types
	} `yaml:"upload"`
}

// StorageConfig selects and configures the file storage backend.
type StorageConfig struct {
	Type      string `yaml:"type"`       // local, s3
	BasePath  string `yaml:"base_path"`  // for local storage
	BaseURL   string `yaml:"base_url"`   // public URL base
	Bucket    string `yaml:"bucket"`     // for S3/R2
	Region    string `yaml:"region"`     // for S3
	AccessKey string `yaml:"access_key"` // for S3/R2
	SecretKey string `yaml:"secret_key"` // for S3/R2
	Endpoint  string `yaml:"endpoint"`   // for R2 or custom S3
}

// Load builds the configuration. When DATABASE_URL is set (tests, deploys)
// everything comes from environment variables; otherwise the yaml file at
// CONFIG_PATH (default config/config.yaml) is decoded. The result is passed
// through constructors explicitly, there is no package-level config state.
func Load() (*Config, error) {
	var cfg Config

	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("open config file %s: %w", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}

		applyDefaults(&cfg)
		return &cfg, nil
	}

	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Server.BaseURL = os.Getenv("SERVER_BASE_URL")
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("SMTP_FROM")

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if cfg.JWT.AccessTTLMin == 0 {
		cfg.JWT.AccessTTLMin = 60
	}
	if cfg.JWT.RefreshTTLMin == 0 {
		cfg.JWT.RefreshTTLMin = 7 * 24 * 60
	}
	if cfg.JWT.VerificationTTLMin == 0 {
		cfg.JWT.VerificationTTLMin = 24 * 60
	}
	if cfg.JWT.ResetTTLMin == 0 {
		cfg.JWT.ResetTTLMin = 15
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Contacts API"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		}
	}
}

// TTL helpers converting the configured minutes into durations.

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.JWT.AccessTTLMin) * time.Minute
}

func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.JWT.RefreshTTLMin) * time.Minute
}

func (c *Config) VerificationTTL() time.Duration {
	return time.Duration(c.JWT.VerificationTTLMin) * time.Minute
}

func (c *Config) ResetTTL() time.Duration {
	return time.Duration(c.JWT.ResetTTLMin) * time.Minute
}
