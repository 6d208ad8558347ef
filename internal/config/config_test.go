package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muliwe/go-fizzbuzz-classifier/internal/fizzbuzz"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "logs", cfg.Log.Dir)
	assert.Equal(t, fizzbuzz.MaxSeriesLen, cfg.Classifier.MaxSeriesLen)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing addr",
			modify:  func(c *Config) { c.Server.Addr = "" },
			wantErr: true,
		},
		{
			name:    "zero read timeout",
			modify:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "cert without key",
			modify:  func(c *Config) { c.Server.TLSCert = "cert.pem" },
			wantErr: true,
		},
		{
			name: "cert and key",
			modify: func(c *Config) {
				c.Server.TLSCert = "cert.pem"
				c.Server.TLSKey = "key.pem"
			},
			wantErr: false,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: true,
		},
		{
			name:    "missing log dir",
			modify:  func(c *Config) { c.Log.Dir = "" },
			wantErr: true,
		},
		{
			name:    "series limit too low",
			modify:  func(c *Config) { c.Classifier.MaxSeriesLen = 0 },
			wantErr: true,
		},
		{
			name:    "series limit too high",
			modify:  func(c *Config) { c.Classifier.MaxSeriesLen = fizzbuzz.MaxSeriesLen + 1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	content := `
server:
  addr: ":9090"
  read_timeout: 2s
  debug: false
log:
  level: debug
  dir: /tmp/fizzbuzz
classifier:
  max_series_len: 500
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Server.Debug)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/fizzbuzz", cfg.Log.Dir)
	assert.Equal(t, 500, cfg.Classifier.MaxSeriesLen)

	// Unset keys keep their defaults
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "requests.jsonl", cfg.Log.File)
	assert.True(t, cfg.Server.Metrics)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [unclosed"), 0o644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()

	err := cfg.ApplyEnv(envMap(map[string]string{
		"PORT":           "3000",
		"DEBUG":          "false",
		"METRICS":        "0",
		"TLS_CERT":       "cert.pem",
		"TLS_KEY":        "key.pem",
		"LOG_LEVEL":      "warn",
		"LOG_DIR":        "/var/log/fizzbuzz",
		"MAX_SERIES_LEN": "250",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.False(t, cfg.Server.Debug)
	assert.False(t, cfg.Server.Metrics)
	assert.True(t, cfg.TLSEnabled())
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/var/log/fizzbuzz", cfg.Log.Dir)
	assert.Equal(t, 250, cfg.Classifier.MaxSeriesLen)
}

func TestApplyEnv_HalfTLSIgnored(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{"TLS_CERT": "cert.pem"})))
	assert.False(t, cfg.TLSEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv_Errors(t *testing.T) {
	for _, env := range []map[string]string{
		{"DEBUG": "maybe"},
		{"METRICS": "sometimes"},
		{"MAX_SERIES_LEN": "lots"},
	} {
		cfg := Default()
		assert.Error(t, cfg.ApplyEnv(envMap(env)), "env=%v", env)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_InvalidResult(t *testing.T) {
	t.Setenv("MAX_SERIES_LEN", "0")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("FIZZBUZZ_TEST_VALUE=15\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("FIZZBUZZ_TEST_VALUE") })

	require.NoError(t, LoadDotEnv(envPath))
	assert.Equal(t, "15", os.Getenv("FIZZBUZZ_TEST_VALUE"))
}

func TestServerConfig(t *testing.T) {
	cfg := Default()
	cfg.Server.TLSCert = "cert.pem"
	cfg.Server.TLSKey = "key.pem"
	cfg.Classifier.MaxSeriesLen = 42

	srv := cfg.ServerConfig()

	assert.Equal(t, cfg.Server.Addr, srv.Addr)
	assert.True(t, srv.TLSEnabled)
	assert.Equal(t, "cert.pem", srv.TLSCertFile)
	assert.Equal(t, 42, srv.ClassifierCfg.MaxSeriesLen)
	assert.Equal(t, cfg.Log.Dir, srv.LoggerConfig.LogDir)
}
