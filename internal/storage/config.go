package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvBackend = "STARTPAGE_BACKEND"
	EnvDataDir = "STARTPAGE_DATA_DIR"
	EnvAddr    = "STARTPAGE_ADDR"
	EnvOrigins = "STARTPAGE_ALLOWED_ORIGINS"
)

// Config holds application configuration.
type Config struct {
	Backend             string   `json:"backend"`
	DataDir             string   `json:"dataDir"`
	Addr                string   `json:"addr"`
	AllowedOrigins      []string `json:"allowedOrigins"`
	FaviconService      string   `json:"faviconService"` // %s is replaced by the link's host
	ClockFormat         string   `json:"clockFormat"`
	CheckConcurrency    int      `json:"checkConcurrency"`
	CheckTimeoutSeconds int      `json:"checkTimeoutSeconds"`
	CheckExcludeDomains []string `json:"checkExcludeDomains"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	dataDir, err := DefaultConfigDir()
	if err != nil {
		dataDir = "."
	}
	return Config{
		Backend:             BackendJSON,
		DataDir:             dataDir,
		Addr:                "127.0.0.1:8080",
		AllowedOrigins:      []string{},
		FaviconService:      "https://www.google.com/s2/favicons?domain=%s&sz=128",
		ClockFormat:         "15:04:05",
		CheckConcurrency:    8,
		CheckTimeoutSeconds: 10,
		CheckExcludeDomains: []string{"github.com", "gitlab.com"},
	}
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.Backend == "" {
		config.Backend = defaults.Backend
	}
	if config.DataDir == "" {
		config.DataDir = defaults.DataDir
	}
	if config.Addr == "" {
		config.Addr = defaults.Addr
	}
	if config.AllowedOrigins == nil {
		config.AllowedOrigins = defaults.AllowedOrigins
	}
	if config.FaviconService == "" {
		config.FaviconService = defaults.FaviconService
	}
	if config.ClockFormat == "" {
		config.ClockFormat = defaults.ClockFormat
	}
	if config.CheckConcurrency <= 0 {
		config.CheckConcurrency = defaults.CheckConcurrency
	}
	if config.CheckTimeoutSeconds <= 0 {
		config.CheckTimeoutSeconds = defaults.CheckTimeoutSeconds
	}
	if config.CheckExcludeDomains == nil {
		config.CheckExcludeDomains = defaults.CheckExcludeDomains
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides config fields from environment lookups.
func ApplyEnv(config *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBackend); ok && v != "" {
		config.Backend = strings.ToLower(v)
	}
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		config.DataDir = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		config.Addr = v
	}
	if v, ok := lookup(EnvOrigins); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.AllowedOrigins = origins
	}
}

// ApplyEnvFile overrides config fields from a dotenv file.
// A missing file is not an error. Variables already set in the process
// environment win over the file.
func ApplyEnvFile(config *Config, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	ApplyEnv(config, func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	})
	return nil
}

// CheckTimeout returns the per-request link check timeout.
func (c Config) CheckTimeout() time.Duration {
	return time.Duration(c.CheckTimeoutSeconds) * time.Second
}

// DefaultConfigDir returns the default config directory: ~/.config/startpage
func DefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "startpage"), nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/startpage/config.json
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
