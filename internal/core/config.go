// Package core contains the business logic of the to-do manager: the task
// store, id generation, and configuration loading.
package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/todo/pkg/models"
)

// ConfigurationManager loads and validates the .todoconfig file.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	// basePath is the data directory where .todoconfig resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// .todoconfig from basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with defaults.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		Storage: models.StorageConfig{
			File:   "localstorage.yaml",
			Origin: "local",
			Key:    "tasks",
		},
		Events: models.EventsConfig{
			Enabled: true,
			File:    ".todo_events.jsonl",
		},
		DueSoonDays: 3,
	}
}

// LoadGlobalConfig reads .todoconfig from the base path. If the file does not
// exist, defaults are returned.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(".todoconfig")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("storage.file", cfg.Storage.File)
	v.SetDefault("storage.origin", cfg.Storage.Origin)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("events.enabled", cfg.Events.Enabled)
	v.SetDefault("events.file", cfg.Events.File)
	v.SetDefault("due_soon_days", cfg.DueSoonDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .todoconfig: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding .todoconfig: %w", err)
	}

	if err := cm.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateConfig checks the configuration for invalid values and returns an
// error naming every offending key.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string
	if strings.TrimSpace(cfg.Storage.File) == "" {
		errs = append(errs, "storage.file must not be empty")
	}
	if strings.TrimSpace(cfg.Storage.Origin) == "" {
		errs = append(errs, "storage.origin must not be empty")
	}
	if strings.TrimSpace(cfg.Storage.Key) == "" {
		errs = append(errs, "storage.key must not be empty")
	}
	if cfg.Events.Enabled && strings.TrimSpace(cfg.Events.File) == "" {
		errs = append(errs, "events.file must not be empty when events are enabled")
	}
	if cfg.DueSoonDays < 0 {
		errs = append(errs, fmt.Sprintf("due_soon_days must be >= 0, got %d", cfg.DueSoonDays))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
