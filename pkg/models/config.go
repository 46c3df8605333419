package models

// StorageConfig locates the local key-value store and the key the task
// collection is persisted under.
type StorageConfig struct {
	File   string `yaml:"file" mapstructure:"file"`
	Origin string `yaml:"origin" mapstructure:"origin"`
	Key    string `yaml:"key" mapstructure:"key"`
}

// EventsConfig controls the JSONL event log.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	File    string `yaml:"file" mapstructure:"file"`
}

// GlobalConfig holds settings read from .todoconfig via Viper.
type GlobalConfig struct {
	Storage     StorageConfig `yaml:"storage" mapstructure:"storage"`
	Events      EventsConfig  `yaml:"events" mapstructure:"events"`
	DueSoonDays int           `yaml:"due_soon_days" mapstructure:"due_soon_days"`
}
