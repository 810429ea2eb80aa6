// Package config loads notenav settings from defaults, an optional TOML
// file and NOTENAV_* environment variables, in increasing precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/HendryAvila/notenav/internal/store"
)

// EnvPrefix is prepended to every environment variable, with dots in keys
// replaced by underscores: NOTENAV_STORE_DATA_DIR.
const EnvPrefix = "NOTENAV"

// Config is the full application configuration.
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	Query QueryConfig `mapstructure:"query"`
	Log   LogConfig   `mapstructure:"log"`
}

// StoreConfig configures the SQLite graph store.
type StoreConfig struct {
	DataDir      string `mapstructure:"data_dir"`
	SeedBuiltins bool   `mapstructure:"seed_builtins"`
}

// QueryConfig bounds navigation queries.
type QueryConfig struct {
	// MaxResults caps how many notes one query returns. 0 means unlimited.
	MaxResults int `mapstructure:"max_results"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store.data_dir", store.DefaultConfig().DataDir)
	v.SetDefault("store.seed_builtins", true)

	v.SetDefault("query.max_results", 1000)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")
}

// NewViper returns a viper instance with defaults and environment binding.
// When configPath is set the TOML file there is read as well.
func NewViper(configPath string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
		}
	}
	return v, nil
}

// Load builds a Config from defaults, the optional file and the environment.
func Load(configPath string) (*Config, error) {
	v, err := NewViper(configPath)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates the configuration held by v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Store.DataDir = expandHome(cfg.Store.DataDir)
	return &cfg, nil
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.DataDir) == "" {
		return errors.New("config: store.data_dir must not be empty")
	}
	if c.Query.MaxResults < 0 {
		return errors.Newf("config: query.max_results must be >= 0, got %d", c.Query.MaxResults)
	}
	return nil
}

// StoreConfig converts the store section into a store.Config.
func (c *Config) StoreConfig() store.Config {
	return store.Config{DataDir: c.Store.DataDir}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
