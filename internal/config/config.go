package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/elise-bgn/DownloadsCleaner/internal/category"
	"github.com/elise-bgn/DownloadsCleaner/internal/security"
	"gopkg.in/yaml.v3"
)

// Decision source modes for stale files.
const (
	DecisionAsk    = "ask"
	DecisionKeep   = "keep"
	DecisionDelete = "delete"
)

// Config represents the application configuration
type Config struct {
	// TargetDir is the directory to organize. Empty means the
	// platform downloads folder.
	TargetDir string `yaml:"target_dir"`

	// AgeThresholdMonths marks files stale once their last
	// modification is at least this many 30-day months in the past.
	AgeThresholdMonths int `yaml:"age_threshold_months"`

	// Simulate computes and logs every action without touching files.
	Simulate bool `yaml:"simulate"`

	// Decision picks how stale files are resolved: ask, keep or delete.
	Decision string `yaml:"decision"`

	// ExcludePatterns are glob patterns matched against entry names;
	// matches are skipped entirely.
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// Categories adds extensions to the built-in rules, keyed by
	// label. Unknown labels become new categories.
	Categories map[string][]string `yaml:"categories,omitempty"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load loads configuration from a file
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := GetDefault()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.AgeThresholdMonths < 0 {
		return fmt.Errorf("age threshold must be >= 0 months")
	}

	switch c.Decision {
	case DecisionAsk, DecisionKeep, DecisionDelete:
	default:
		return fmt.Errorf("decision must be one of %q, %q or %q, got %q",
			DecisionAsk, DecisionKeep, DecisionDelete, c.Decision)
	}

	// Validate exclude patterns (glob syntax)
	for _, pattern := range c.ExcludePatterns {
		if err := security.ValidatePattern(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern: %w", err)
		}
	}

	// Category overrides must still produce a consistent registry.
	if _, err := c.Registry(); err != nil {
		return fmt.Errorf("invalid categories: %w", err)
	}

	return nil
}

// CategoryRules returns the built-in rules extended with the
// user-defined ones.
func (c *Config) CategoryRules() []category.Rule {
	return category.MergeRules(category.DefaultRules(), c.Categories)
}

// Registry builds the category registry this configuration describes.
func (c *Config) Registry() (*category.Registry, error) {
	return category.NewRegistry(c.CategoryRules())
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "downloads-cleaner")
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists creates a default config file if it doesn't exist
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	// Check if config exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create default config
		defaultConfig := GetDefault()
		if err := Save(defaultConfig, configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}
