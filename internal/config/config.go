package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config is read from config.yaml and then overlaid with environment
// variables. Secrets (API keys, DB password) have no yaml defaults and are
// expected to come from the environment.
type Config struct {
	Server struct {
		Port int `yaml:"port" env:"SERVER_PORT"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver" env:"DB_DRIVER"` // mysql | postgres
		Host     string `yaml:"host" env:"DB_HOST"`
		Port     int    `yaml:"port" env:"DB_PORT"`
		User     string `yaml:"user" env:"DB_USER"`
		Password string `yaml:"-" env:"DB_PASSWORD"`
		Name     string `yaml:"name" env:"DB_NAME"`
		SSLMode  string `yaml:"sslMode" env:"DB_SSLMODE"`
	} `yaml:"database"`

	AI struct {
		Provider string `yaml:"provider" env:"AI_PROVIDER"` // gemini | openai

		Gemini struct {
			APIKey         string `yaml:"-" env:"GEMINI_API_KEY"`
			Model          string `yaml:"model" env:"GEMINI_MODEL"`
			BaseURL        string `yaml:"baseURL" env:"GEMINI_BASE_URL"`
			TimeoutSeconds int    `yaml:"timeoutSeconds" env:"GEMINI_TIMEOUT_SECONDS"`
		} `yaml:"gemini"`

		OpenAI struct {
			APIKey string `yaml:"-" env:"OPENAI_API_KEY"`
			Model  string `yaml:"model" env:"OPENAI_MODEL"`
		} `yaml:"openai"`
	} `yaml:"ai"`

	Archive struct {
		Enabled    bool   `yaml:"enabled" env:"ARCHIVE_ENABLED"`
		Endpoint   string `yaml:"endpoint" env:"ARCHIVE_ENDPOINT"`
		AccessKey  string `yaml:"-" env:"ARCHIVE_ACCESS_KEY"`
		SecretKey  string `yaml:"-" env:"ARCHIVE_SECRET_KEY"`
		BucketName string `yaml:"bucketName" env:"ARCHIVE_BUCKET"`
		Region     string `yaml:"region" env:"ARCHIVE_REGION"`
		UseSSL     bool   `yaml:"useSSL" env:"ARCHIVE_USE_SSL"`
	} `yaml:"archive"`
}

// Load reads the yaml file (optional) and applies environment overrides.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only operation is fine
	default:
		return nil, err
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	// defaults applied after both layers so neither clobbers the other
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "gemini"
	}
	return &cfg, nil
}

// MySQLDSN builds the DSN for the mysql driver
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds the DSN for the lib/pq driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GeminiTimeout returns the configured upstream timeout, 0 when unset.
func (c *Config) GeminiTimeout() time.Duration {
	return time.Duration(c.AI.Gemini.TimeoutSeconds) * time.Second
}
