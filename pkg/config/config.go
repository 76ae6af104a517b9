package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the file
const (
	EnvDecoder   = "SF_DECODER"
	EnvServeAddr = "SF_SERVE_ADDR"
	EnvLogLevel  = "SF_LOG_LEVEL"
)

type Config struct {
	// Image handling
	Decoder       string `yaml:"decoder"`
	StaleGuard    bool   `yaml:"stale_guard"`
	UploadMaxSize int64  `yaml:"upload_max_size"`

	// Server
	ServeAddr string `yaml:"serve_addr"`

	// Mock latency
	ProductDelayMS int `yaml:"product_delay_ms"`
	LoginDelayMS   int `yaml:"login_delay_ms"`

	LogLevel string `yaml:"log_level"`

	// UI Settings
	ColorTheme    string `yaml:"color_theme"`
	CopySnippet   bool   `yaml:"copy_snippet"`
	PreviewViewer string `yaml:"preview_viewer"`
	PreviewWidth  int    `yaml:"preview_width"`

	// Performance
	WatchDebounceMS int `yaml:"watch_debounce_ms"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Decoder:         "native",
		StaleGuard:      false,
		UploadMaxSize:   2 << 20,
		ServeAddr:       "127.0.0.1:8080",
		ProductDelayMS:  5000,
		LoginDelayMS:    1000,
		LogLevel:        "warn",
		ColorTheme:      "auto",
		CopySnippet:     false,
		PreviewViewer:   "",
		PreviewWidth:    1280,
		WatchDebounceMS: 500,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file means defaults
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.Decoder == "" {
		cfg.Decoder = "native"
	}
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = "127.0.0.1:8080"
	}
	if cfg.UploadMaxSize <= 0 {
		cfg.UploadMaxSize = 2 << 20
	}
	if cfg.ProductDelayMS < 0 {
		cfg.ProductDelayMS = 0
	}
	if cfg.LoginDelayMS < 0 {
		cfg.LoginDelayMS = 0
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}
	if cfg.PreviewWidth <= 0 {
		cfg.PreviewWidth = 1280
	}
	if !isValidLogLevel(cfg.LogLevel) {
		cfg.LogLevel = "warn"
	}

	return cfg, nil
}

// ApplyEnv overrides file values with SF_* environment variables
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvDecoder)); v != "" {
		c.Decoder = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvServeAddr)); v != "" {
		c.ServeAddr = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))); isValidLogLevel(v) {
		c.LogLevel = v
	}
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
