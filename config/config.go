// Package config loads protogen configuration via Viper.
//
// Configuration comes from protogen.toml (working directory or
// ~/.config/protogen/), PROTOGEN_* environment variables, and built-in
// defaults, in increasing order of precedence for env over file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/dataapis/protogen/corpus"
	"github.com/dataapis/protogen/errors"
)

// Config is the full protogen configuration.
type Config struct {
	// CacheDir holds the cloned stub corpus.
	CacheDir string `mapstructure:"cache_dir"`

	// RepoURL is the upstream stub repository.
	RepoURL string `mapstructure:"repo_url"`

	// OutputDir receives one subdirectory per standard revision.
	OutputDir string `mapstructure:"output_dir"`

	// OutputName is the generated file's name inside each revision dir.
	OutputName string `mapstructure:"output_name"`

	// OptionalSubmodules are aggregated into their own namespace protocols.
	OptionalSubmodules []string `mapstructure:"optional_submodules"`

	// TypeVarBounds overrides bounds for known type-variable names.
	TypeVarBounds map[string]string `mapstructure:"typevar_bounds"`

	// InjectTypeVars are auxiliary type variables absent from the scanned
	// _types module.
	InjectTypeVars []string `mapstructure:"inject_typevars"`

	// RenamePrefix is prepended to capitalized type-variable names.
	RenamePrefix string `mapstructure:"rename_prefix"`
}

var globalConfig *Config

// Load reads the configuration, caching the result for later callers.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := viper.New()
	v.SetConfigName("protogen")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "protogen"))
	}
	v.SetEnvPrefix("PROTOGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	// A missing config file is fine; defaults and env cover everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	globalConfig = cfg
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file path, bypassing the
// cache and search paths.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	SetDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	return unmarshal(v)
}

// Reset clears the cached configuration (useful for testing).
func Reset() {
	globalConfig = nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults configures default values for all options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("cache_dir", ".cache")
	v.SetDefault("repo_url", corpus.DefaultRepoURL)
	v.SetDefault("output_dir", filepath.Join("src", "array-api"))
	v.SetDefault("output_name", "_namespace.py")
	v.SetDefault("optional_submodules", []string{"fft", "linalg"})
	v.SetDefault("typevar_bounds", map[string]string{"array": "Array"})
	v.SetDefault("inject_typevars", []string{"device", "dtype"})
	v.SetDefault("rename_prefix", "T")
}

// Validate checks invariants the rest of the program relies on.
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "cache_dir must not be empty")
	}
	if c.OutputDir == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "output_dir must not be empty")
	}
	if c.OutputName == "" || !strings.HasSuffix(c.OutputName, ".py") {
		return errors.Wrap(errors.ErrInvalidConfig, "output_name must be a .py file name")
	}
	if c.RepoURL == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "repo_url must not be empty")
	}
	return nil
}
