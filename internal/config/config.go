// Package config manages the JSON configuration file for the converter
// service. A default file is written on first load so a fresh checkout runs
// without any manual setup.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config holds all service settings.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Upload  UploadConfig  `json:"upload"`
	Preview PreviewConfig `json:"preview"`
	Export  ExportConfig  `json:"export"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

type UploadConfig struct {
	// MaxMB bounds the multipart upload size in megabytes.
	MaxMB int64 `json:"max_mb"`
}

type PreviewConfig struct {
	// Rows bounds how many grid rows the preview endpoint returns.
	Rows int `json:"rows"`
}

type ExportConfig struct {
	// Title, when non-empty, is written above the grid in exported
	// workbooks, followed by a blank separator row.
	Title string `json:"title"`

	// MaxColWidth caps auto-sized column widths.
	MaxColWidth float64 `json:"max_col_width"`
}

// Default returns the configuration written on first load.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: "0.0.0.0:8080"},
		Upload:  UploadConfig{MaxMB: 50},
		Preview: PreviewConfig{Rows: 50},
		Export:  ExportConfig{Title: "", MaxColWidth: 60},
	}
}

// ConfigManager loads the config file and serves read-only copies of it.
type ConfigManager struct {
	path string

	mu  sync.RWMutex
	cfg *Config
}

// NewConfigManager creates a manager for the config file at path.
func NewConfigManager(path string) (*ConfigManager, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	return &ConfigManager{path: path}, nil
}

// Load reads the config file, creating it with defaults when missing.
// Fields absent from the file keep their default values.
func (cm *ConfigManager) Load() error {
	data, err := os.ReadFile(cm.path)
	if os.IsNotExist(err) {
		cfg := Default()
		if err := cm.write(cfg); err != nil {
			return fmt.Errorf("create default config: %w", err)
		}
		cm.mu.Lock()
		cm.cfg = cfg
		cm.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	cm.mu.Lock()
	cm.cfg = cfg
	cm.mu.Unlock()
	return nil
}

// Get returns a copy of the current config. It is nil before Load.
func (cm *ConfigManager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	if cm.cfg == nil {
		return nil
	}
	c := *cm.cfg
	return &c
}

func (cm *ConfigManager) write(cfg *Config) error {
	if dir := filepath.Dir(cm.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cm.path, append(data, '\n'), 0644)
}
