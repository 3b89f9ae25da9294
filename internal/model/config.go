package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// StorageConfig locates the durable key-value database.
type StorageConfig struct {
	// Path is the SQLite database file.
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	SidebarCollapsed bool `mapstructure:"sidebar_collapsed" yaml:"sidebar_collapsed"`
}

// Preferences are the user-editable task settings.
type Preferences struct {
	// DefaultPriority preselects the priority field of the add-task form.
	DefaultPriority Priority `mapstructure:"default_priority" yaml:"default_priority"`

	CompactView   bool `mapstructure:"compact_view" yaml:"compact_view"`
	TaskReminders bool `mapstructure:"task_reminders" yaml:"task_reminders"`
	WeeklyDigest  bool `mapstructure:"weekly_digest" yaml:"weekly_digest"`

	// DigestSchedule is a five-field cron expression.
	DigestSchedule string `mapstructure:"digest_schedule" yaml:"digest_schedule"`
}

// AnimationConfig holds the delays used to sequence task transitions.
type AnimationConfig struct {
	SubmitDelayMs   int `mapstructure:"submit_delay_ms" yaml:"submit_delay_ms"`
	DeleteDelayMs   int `mapstructure:"delete_delay_ms" yaml:"delete_delay_ms"`
	CompleteDelayMs int `mapstructure:"complete_delay_ms" yaml:"complete_delay_ms"`
}

// SubmitDelay is the pause between submitting the form and adding the task.
func (a AnimationConfig) SubmitDelay() time.Duration {
	return time.Duration(a.SubmitDelayMs) * time.Millisecond
}

// DeleteDelay is how long a task stays marked before it is removed.
func (a AnimationConfig) DeleteDelay() time.Duration {
	return time.Duration(a.DeleteDelayMs) * time.Millisecond
}

// CompleteDelay is the pause before a completion toggle is applied.
func (a AnimationConfig) CompleteDelay() time.Duration {
	return time.Duration(a.CompleteDelayMs) * time.Millisecond
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage     StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Display     DisplayConfig   `mapstructure:"display" yaml:"display"`
	Preferences Preferences     `mapstructure:"preferences" yaml:"preferences"`
	Profile     Profile         `mapstructure:"profile" yaml:"profile"`
	Animation   AnimationConfig `mapstructure:"animation" yaml:"animation"`
}

// configDir returns ~/.config/taskmaster, or the working directory when the
// home directory is unknown.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "taskmaster")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/taskmaster/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultDBPath returns the default SQLite database location.
func DefaultDBPath() string {
	return filepath.Join(configDir(), "taskmaster.db")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{Path: DefaultDBPath()},
		Preferences: Preferences{
			DefaultPriority: PriorityMedium,
			TaskReminders:   true,
			WeeklyDigest:    true,
			DigestSchedule:  DefaultDigestSchedule,
		},
		Profile: Profile{
			Name:     "Priya Das",
			Email:    "drpriyadas@example.com",
			Phone:    "+91 5554443332",
			Location: "Bengaluru, Karnataka",
			Bio: "Product Manager with 5+ years of experience in task management " +
				"and team coordination.",
			JoinDate: "January 2023",
		},
		Animation: AnimationConfig{
			SubmitDelayMs:   200,
			DeleteDelayMs:   300,
			CompleteDelayMs: 200,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("preferences.default_priority", string(def.Preferences.DefaultPriority))
	v.SetDefault("preferences.task_reminders", def.Preferences.TaskReminders)
	v.SetDefault("preferences.weekly_digest", def.Preferences.WeeklyDigest)
	v.SetDefault("preferences.digest_schedule", def.Preferences.DigestSchedule)
	v.SetDefault("animation.submit_delay_ms", def.Animation.SubmitDelayMs)
	v.SetDefault("animation.delete_delay_ms", def.Animation.DeleteDelayMs)
	v.SetDefault("animation.complete_delay_ms", def.Animation.CompleteDelayMs)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return def, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if !cfg.Preferences.DefaultPriority.IsValid() {
		cfg.Preferences.DefaultPriority = PriorityMedium
	}
	if _, err := cfg.Preferences.NextDigest(time.Now()); err != nil {
		cfg.Preferences.DigestSchedule = DefaultDigestSchedule
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = def.Storage.Path
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)
	v.Set("preferences", cfg.Preferences)
	v.Set("profile", cfg.Profile)
	v.Set("animation", cfg.Animation)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
