// Package config provides configuration management for the gfshare CLI tool
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/gfshare/pkg/crypto/shamir"
	"github.com/Davincible/gfshare/pkg/storage"
)

// Config represents the main configuration structure
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	Security SecurityConfig  `json:"security"`
	UI       UIConfig        `json:"ui"`
	Storage  StorageConfig   `json:"storage"`
}

// DefaultSettings contains default values for split operations
type DefaultSettings struct {
	Threshold int    `json:"threshold"` // Default: 2
	Shares    int    `json:"shares"`    // Default: 3
	Workers   int    `json:"workers"`   // Default: 1
	Format    string `json:"format"`    // text or json
}

// SecurityConfig contains security-related settings
type SecurityConfig struct {
	EncryptShareFiles bool `json:"encrypt_share_files"` // Always ask for a password when writing share files
	MinPasswordLength int  `json:"min_password_length"`
	AutoVerify        bool `json:"auto_verify"` // Recover from the first threshold shares after split
}

type UIConfig struct {
	UseColor bool `json:"use_color"`
}

// StorageConfig controls share files and the argon2id cost used to encrypt them
type StorageConfig struct {
	KDFTime    uint32 `json:"kdf_time"`
	KDFMemory  uint32 `json:"kdf_memory_kib"`
	KDFThreads uint8  `json:"kdf_threads"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			Threshold: 2,
			Shares:    3,
			Workers:   1,
			Format:    "text",
		},
		Security: SecurityConfig{
			EncryptShareFiles: false,
			MinPasswordLength: 8,
			AutoVerify:        true,
		},
		UI: UIConfig{
			UseColor: true,
		},
		Storage: StorageConfig{
			KDFTime:    3,
			KDFMemory:  64 * 1024,
			KDFThreads: 4,
		},
	}
}

// Validate checks the split defaults against the sharing limits
func (c *Config) Validate() error {
	split := shamir.Config{Parts: c.Defaults.Shares, Threshold: c.Defaults.Threshold}
	if err := split.Validate(); err != nil {
		return fmt.Errorf("invalid defaults: %w", err)
	}

	if c.Defaults.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Defaults.Workers)
	}

	switch c.Defaults.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.Defaults.Format)
	}

	kdf := storage.KDFParams{Time: c.Storage.KDFTime, Memory: c.Storage.KDFMemory, Threads: c.Storage.KDFThreads}
	if err := kdf.Validate(); err != nil {
		return fmt.Errorf("invalid storage settings: %w", err)
	}

	return nil
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager loads the config at path, or at the default location when
// path is empty. A missing file yields the defaults and is not written.
func NewConfigManager(path string) (*ConfigManager, error) {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cm := &ConfigManager{
		configPath: path,
	}

	if err := cm.LoadConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cm.config = DefaultConfig()
	}

	return cm, nil
}

// LoadConfig loads the configuration from disk
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	// fields absent from the file keep their defaults
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cm.configPath, err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

func (cm *ConfigManager) Path() string {
	return cm.configPath
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	if customPath := os.Getenv("GFSHARE_CONFIG"); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gfshare", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "gfshare", "config.json"), nil
}
