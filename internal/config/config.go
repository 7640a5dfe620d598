package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the client needs from the environment.
type Config struct {
	API APIConfig
	Log LogConfig
}

// APIConfig locates the remote screenshot service.
type APIConfig struct {
	BaseURL         string
	Timeout         time.Duration
	GenerateTimeout time.Duration
}

// LogConfig controls the file logger. An empty File disables logging;
// the terminal belongs to the TUI.
type LogConfig struct {
	File  string
	Level string
}

// Load reads .env if present, then the environment, then validates.
func Load() (*Config, error) {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL:         getEnv("SNAPSITE_API_URL", "http://localhost:5000"),
			Timeout:         time.Duration(getEnvAsInt("SNAPSITE_TIMEOUT", 30)) * time.Second,
			GenerateTimeout: time.Duration(getEnvAsInt("SNAPSITE_GENERATE_TIMEOUT", 180)) * time.Second,
		},
		Log: LogConfig{
			File:  getEnv("SNAPSITE_LOG_FILE", ""),
			Level: getEnv("SNAPSITE_LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SNAPSITE_API_URL %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("SNAPSITE_TIMEOUT must be positive")
	}
	if c.API.GenerateTimeout <= 0 {
		return fmt.Errorf("SNAPSITE_GENERATE_TIMEOUT must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("SNAPSITE_LOG_LEVEL %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
