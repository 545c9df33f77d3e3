package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	API        APIConfig        `json:"api"`
	Polling    PollingConfig    `json:"polling"`
	Storage    StorageConfig    `json:"storage"`
	Sandbox    SandboxConfig    `json:"sandbox"`
	Logging    LoggingConfig    `json:"logging"`
	Onboarding OnboardingConfig `json:"onboarding"`
}

// APIConfig describes how to reach the portal backend
type APIConfig struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

// PollingConfig holds refresh intervals for the dashboard views
type PollingConfig struct {
	AssessmentInterval time.Duration `json:"assessment_interval"`
	QueueInterval      time.Duration `json:"queue_interval"`
}

// StorageConfig selects the durable client-state backend
type StorageConfig struct {
	// Backend is "file", "sqlite", or "memory"
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

// SandboxConfig configures the local stand-in backend
type SandboxConfig struct {
	Host          string        `json:"host"`
	Port          int           `json:"port"`
	SweepInterval time.Duration `json:"sweep_interval"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// OnboardingConfig
type OnboardingConfig struct {
	// SeedCount is the default number of sample claims the seed step creates
	SeedCount int `json:"seed_count"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		Polling: PollingConfig{
			AssessmentInterval: 15 * time.Second,
			QueueInterval:      20 * time.Second,
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    filepath.Join(home, ".claimsight", "client_state.json"),
		},
		Sandbox: SandboxConfig{
			Host:          "0.0.0.0",
			Port:          8080,
			SweepInterval: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Onboarding: OnboardingConfig{
			SeedCount: 5,
		},
	}
}

// LoadConfig loads configuration from a .env file (if present), an optional
// JSON config file, and environment variables, in increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	// Best effort; a missing .env file is normal
	_ = godotenv.Load()

	config := DefaultConfig()

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if baseURL := os.Getenv("PORTAL_API_BASE_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("PORTAL_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.API.Timeout = d
		}
	}
	if interval := os.Getenv("ASSESSMENT_POLL_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			config.Polling.AssessmentInterval = d
		}
	}
	if interval := os.Getenv("QUEUE_POLL_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			config.Polling.QueueInterval = d
		}
	}
	if backend := os.Getenv("CLIENT_STATE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}
	if path := os.Getenv("CLIENT_STATE_PATH"); path != "" {
		config.Storage.Path = path
	}
	if host := os.Getenv("SANDBOX_HOST"); host != "" {
		config.Sandbox.Host = host
	}
	if port := os.Getenv("SANDBOX_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Sandbox.Port = p
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// GetSandboxAddr returns the sandbox listen address
func (c *SandboxConfig) GetSandboxAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
