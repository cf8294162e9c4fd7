// Package config provides hierarchical configuration management.
// Priority: defaults < system < user < project < env < flags
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all zerotrim configuration.
type Config struct {
	Version int `yaml:"version"`

	Thinning  ThinningConfig  `yaml:"thinning"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Watch     WatchConfig     `yaml:"watch"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ThinningConfig controls the default thinning parameters.
type ThinningConfig struct {
	MaxZeroSequence int `yaml:"max_zero_sequence"`
	KeepInterval    int `yaml:"keep_interval"`
}

// DatasetConfig controls dataset reading and writing.
type DatasetConfig struct {
	Delimiter string `yaml:"delimiter"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce     time.Duration `yaml:"debounce"`
	OutputSuffix string        `yaml:"output_suffix"` // appended before the extension
}

// TelemetryConfig for optional OTLP trace export.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Thinning: ThinningConfig{
			MaxZeroSequence: 10,
			KeepInterval:    5,
		},
		Dataset: DatasetConfig{
			Delimiter: ",",
		},
		Watch: WatchConfig{
			Debounce:     500 * time.Millisecond,
			OutputSuffix: "_reduced",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "localhost:4317",
		},
	}
}

// Manager handles configuration loading and merging.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	paths  []string // Paths that were loaded
}

// NewManager creates a new configuration manager.
func NewManager() *Manager {
	return &Manager{config: Default()}
}

// Load loads configuration from all sources in priority order.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config = Default()

	for _, path := range m.getConfigPaths() {
		if err := m.loadFile(path); err != nil {
			if !os.IsNotExist(err) {
				return err
			}
		} else {
			m.paths = append(m.paths, path)
		}
	}

	m.loadEnv()

	return nil
}

// getConfigPaths returns config file paths in priority order.
func (m *Manager) getConfigPaths() []string {
	var paths []string

	if runtime.GOOS != "windows" {
		paths = append(paths, "/etc/zerotrim/config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".zerotrim", "config.yaml"))
	}

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".zerotrim.yaml"))
	}

	return paths
}

// loadFile loads a single config file and merges it.
func (m *Manager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var partial Config
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return err
	}

	m.merge(&partial)
	return nil
}

// merge merges non-zero values from src into config.
func (m *Manager) merge(src *Config) {
	if src.Thinning.MaxZeroSequence != 0 {
		m.config.Thinning.MaxZeroSequence = src.Thinning.MaxZeroSequence
	}
	if src.Thinning.KeepInterval != 0 {
		m.config.Thinning.KeepInterval = src.Thinning.KeepInterval
	}

	if src.Dataset.Delimiter != "" {
		m.config.Dataset.Delimiter = src.Dataset.Delimiter
	}

	if src.Watch.Debounce != 0 {
		m.config.Watch.Debounce = src.Watch.Debounce
	}
	if src.Watch.OutputSuffix != "" {
		m.config.Watch.OutputSuffix = src.Watch.OutputSuffix
	}

	if src.Telemetry.Enabled {
		m.config.Telemetry.Enabled = true
	}
	if src.Telemetry.Endpoint != "" {
		m.config.Telemetry.Endpoint = src.Telemetry.Endpoint
	}
}

// loadEnv loads configuration from environment variables.
func (m *Manager) loadEnv() {
	if v := os.Getenv("ZEROTRIM_MAX_ZERO_SEQUENCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			m.config.Thinning.MaxZeroSequence = n
		}
	}
	if v := os.Getenv("ZEROTRIM_KEEP_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			m.config.Thinning.KeepInterval = n
		}
	}
	if v := os.Getenv("ZEROTRIM_DELIMITER"); v != "" {
		m.config.Dataset.Delimiter = v
	}
	if v := os.Getenv("ZEROTRIM_OTLP_ENDPOINT"); v != "" {
		m.config.Telemetry.Enabled = true
		m.config.Telemetry.Endpoint = v
	}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetPaths returns the paths that were loaded.
func (m *Manager) GetPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paths
}

// Save writes the current config to the user config file.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".zerotrim")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0644)
}

// Global instance
var (
	globalManager *Manager
	globalOnce    sync.Once
)

// Global returns the global configuration manager.
func Global() *Manager {
	globalOnce.Do(func() {
		globalManager = NewManager()
		globalManager.Load()
	})
	return globalManager
}
