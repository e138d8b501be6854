package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Matcher  MatcherConfig
	Lookup   LookupConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path           string
	MigrationsPath string `mapstructure:"migrations_path"`
}

// MatcherConfig holds the security-timeline fuzzy-match thresholds. The
// defaults are the only tuning the heuristics ever received; change them only
// with evidence.
type MatcherConfig struct {
	MinWordLen       int `mapstructure:"min_word_len"`
	MinStrongWordLen int `mapstructure:"min_strong_word_len"`
}

// LookupConfig controls the external merchant lookup fallback.
type LookupConfig struct {
	Enabled bool
}

// UIConfig holds presentation settings for CLI output.
type UIConfig struct {
	Currency   string
	DateFormat string `mapstructure:"date_format"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// MONEYDASH_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "moneydash", "moneydash.db"))
	v.SetDefault("database.migrations_path", "internal/database/migrations")
	v.SetDefault("matcher.min_word_len", 2)
	v.SetDefault("matcher.min_strong_word_len", 5)
	v.SetDefault("lookup.enabled", true)
	v.SetDefault("ui.currency", "CAD")
	v.SetDefault("ui.date_format", "2006-01-02")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MONEYDASH_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "moneydash"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MONEYDASH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed.
func Save(cfg Config) error {
	path := os.Getenv("MONEYDASH_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "moneydash", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations_path", cfg.Database.MigrationsPath)
	v.Set("matcher.min_word_len", cfg.Matcher.MinWordLen)
	v.Set("matcher.min_strong_word_len", cfg.Matcher.MinStrongWordLen)
	v.Set("lookup.enabled", cfg.Lookup.Enabled)
	v.Set("ui.currency", cfg.UI.Currency)
	v.Set("ui.date_format", cfg.UI.DateFormat)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
