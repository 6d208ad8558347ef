// Package config provides configuration loading for the classifier service.
//
// Precedence, lowest first: built-in defaults, YAML file, environment
// (optionally seeded from a .env file).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/muliwe/go-fizzbuzz-classifier/internal/classifier"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/fizzbuzz"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/logger"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/server"
)

// Config represents the complete service configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Classifier ClassifierConfig `yaml:"classifier"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Debug           bool          `yaml:"debug"`
	Metrics         bool          `yaml:"metrics"`
	TLSCert         string        `yaml:"tls_cert"`
	TLSKey          string        `yaml:"tls_key"`
}

// LogConfig configures console and result logging
type LogConfig struct {
	// Level is the console log level (debug, info, warn, error)
	Level string `yaml:"level"`
	// Dir and File locate the JSON Lines result log
	Dir        string `yaml:"dir"`
	File       string `yaml:"file"`
	Stdout     bool   `yaml:"stdout"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// ClassifierConfig configures the classifier
type ClassifierConfig struct {
	// MaxSeriesLen caps values per range request
	MaxSeriesLen int `yaml:"max_series_len"`
}

// Default returns a Config with the same defaults as server.DefaultConfig
func Default() *Config {
	srv := server.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Addr:            srv.Addr,
			ReadTimeout:     srv.ReadTimeout,
			WriteTimeout:    srv.WriteTimeout,
			IdleTimeout:     srv.IdleTimeout,
			ShutdownTimeout: srv.ShutdownTimeout,
			Debug:           srv.EnableDebug,
			Metrics:         srv.EnableMetrics,
		},
		Log: LogConfig{
			Level:      srv.LogLevel,
			Dir:        srv.LoggerConfig.LogDir,
			File:       srv.LoggerConfig.FileName,
			Stdout:     srv.LoggerConfig.Stdout,
			MaxSizeMB:  srv.LoggerConfig.MaxSizeMB,
			MaxBackups: srv.LoggerConfig.MaxBackups,
			MaxAgeDays: srv.LoggerConfig.MaxAgeDays,
			Compress:   srv.LoggerConfig.Compress,
		},
		Classifier: ClassifierConfig{
			MaxSeriesLen: srv.ClassifierCfg.MaxSeriesLen,
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file without overriding the
// existing environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load builds the configuration: defaults, then path (if set), then env
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if port, ok := lookup("PORT"); ok && port != "" {
		c.Server.Addr = ":" + port
	}
	if v, ok := lookup("DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DEBUG: %w", err)
		}
		c.Server.Debug = debug
	}
	if v, ok := lookup("METRICS"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("METRICS: %w", err)
		}
		c.Server.Metrics = enabled
	}

	// TLS only when both halves are present
	cert, _ := lookup("TLS_CERT")
	key, _ := lookup("TLS_KEY")
	if cert != "" && key != "" {
		c.Server.TLSCert = cert
		c.Server.TLSKey = key
	}

	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_DIR"); ok && v != "" {
		c.Log.Dir = v
	}
	if v, ok := lookup("MAX_SERIES_LEN"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_SERIES_LEN: %w", err)
		}
		c.Classifier.MaxSeriesLen = n
	}
	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if (c.Server.TLSCert == "") != (c.Server.TLSKey == "") {
		return fmt.Errorf("server.tls_cert and server.tls_key must be set together")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Dir == "" {
		return fmt.Errorf("log.dir is required")
	}
	if c.Classifier.MaxSeriesLen < 1 || c.Classifier.MaxSeriesLen > fizzbuzz.MaxSeriesLen {
		return fmt.Errorf("classifier.max_series_len must be between 1 and %d", fizzbuzz.MaxSeriesLen)
	}
	return nil
}

// TLSEnabled reports whether both certificate and key are configured
func (c *Config) TLSEnabled() bool {
	return strings.TrimSpace(c.Server.TLSCert) != "" && strings.TrimSpace(c.Server.TLSKey) != ""
}

// ServerConfig converts the file level configuration into server.Config
func (c *Config) ServerConfig() server.Config {
	return server.Config{
		Addr:            c.Server.Addr,
		ReadTimeout:     c.Server.ReadTimeout,
		WriteTimeout:    c.Server.WriteTimeout,
		IdleTimeout:     c.Server.IdleTimeout,
		ShutdownTimeout: c.Server.ShutdownTimeout,
		EnableDebug:     c.Server.Debug,
		EnableMetrics:   c.Server.Metrics,
		LogLevel:        c.Log.Level,
		LoggerConfig: logger.Config{
			LogDir:     c.Log.Dir,
			FileName:   c.Log.File,
			Stdout:     c.Log.Stdout,
			MaxSizeMB:  c.Log.MaxSizeMB,
			MaxBackups: c.Log.MaxBackups,
			MaxAgeDays: c.Log.MaxAgeDays,
			Compress:   c.Log.Compress,
		},
		ClassifierCfg: classifier.Config{
			MaxSeriesLen: c.Classifier.MaxSeriesLen,
		},
		TLSEnabled:  c.TLSEnabled(),
		TLSCertFile: c.Server.TLSCert,
		TLSKeyFile:  c.Server.TLSKey,
	}
}
