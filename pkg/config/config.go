/*
Package config manages TOML config for wordrank services.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordrank/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	Cache  CacheConfig  `toml:"cache"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinPrefix    int  `toml:"min_prefix"`
	MaxPrefix    int  `toml:"max_prefix"`
	EnableFilter bool `toml:"enable_filter"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Dir      string `toml:"dir"`
	MaxWords int    `toml:"max_words"`
	MinScore int64  `toml:"min_score"`
}

// CacheConfig holds hot cache options.
type CacheConfig struct {
	Enabled     bool `toml:"enabled"`
	MaxPrefixes int  `toml:"max_prefixes"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// dirName is the directory created under the user's config location.
const dirName = "wordrank"

// GetConfigDir returns the first writable config directory out of
// ~/.config/wordrank and ~/Library/Application Support/wordrank, falling
// back to the executable's directory.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	for _, dir := range []string{
		filepath.Join(homeDir, ".config", dirName),
		filepath.Join(homeDir, "Library", "Application Support", dirName),
	} {
		if utils.WritableDir(dir) {
			return dir, nil
		}
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordrank/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			EnableFilter: true,
		},
		Dict: DictConfig{
			Dir:      "data/",
			MaxWords: 50000,
			MinScore: 0,
		},
		Cache: CacheConfig{
			Enabled:     true,
			MaxPrefixes: 2048,
		},
		CLI: CliConfig{
			DefaultLimit:    24,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: false,
		},
	}
}

// Validate reports every option outside its allowed range.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.MaxLimit < 1 {
		errs = append(errs, fmt.Errorf("server.max_limit must be >= 1, got %d", c.Server.MaxLimit))
	}
	if c.Server.MinPrefix < 0 {
		errs = append(errs, fmt.Errorf("server.min_prefix must be >= 0, got %d", c.Server.MinPrefix))
	}
	if c.Server.MaxPrefix < c.Server.MinPrefix {
		errs = append(errs, fmt.Errorf("server.max_prefix (%d) must be >= server.min_prefix (%d)",
			c.Server.MaxPrefix, c.Server.MinPrefix))
	}
	if c.Dict.MaxWords < 0 {
		errs = append(errs, fmt.Errorf("dict.max_words must be >= 0, got %d", c.Dict.MaxWords))
	}
	if c.Cache.Enabled && c.Cache.MaxPrefixes < 1 {
		errs = append(errs, fmt.Errorf("cache.max_prefixes must be >= 1 when the cache is enabled, got %d",
			c.Cache.MaxPrefixes))
	}
	if c.CLI.DefaultLimit < 0 {
		errs = append(errs, fmt.Errorf("cli.default_limit must be >= 0, got %d", c.CLI.DefaultLimit))
	}
	return errors.Join(errs...)
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Values that fail validation are
// reported and the config falls back to defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	unknown, err := utils.DecodeTOMLFile(configPath, config)
	if err != nil {
		config = tryPartialParse(configPath)
	}
	for _, key := range unknown {
		log.Warnf("Unknown config key '%s' in %s", key, configPath)
	}
	if err := config.Validate(); err != nil {
		log.Warnf("Invalid configuration in %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// fields maps "section" -> "key" -> pointer into c for every option a
// damaged file can still provide.
func fields(c *Config) map[string]map[string]any {
	return map[string]map[string]any{
		"server": {
			"max_limit":     &c.Server.MaxLimit,
			"min_prefix":    &c.Server.MinPrefix,
			"max_prefix":    &c.Server.MaxPrefix,
			"enable_filter": &c.Server.EnableFilter,
		},
		"dict": {
			"dir":       &c.Dict.Dir,
			"max_words": &c.Dict.MaxWords,
			"min_score": &c.Dict.MinScore,
		},
		"cache": {
			"enabled":      &c.Cache.Enabled,
			"max_prefixes": &c.Cache.MaxPrefixes,
		},
		"cli": {
			"default_limit":     &c.CLI.DefaultLimit,
			"default_min_len":   &c.CLI.DefaultMinLen,
			"default_max_len":   &c.CLI.DefaultMaxLen,
			"default_no_filter": &c.CLI.DefaultNoFilter,
		},
	}
}

// tryPartialParse keeps every key that still decodes with the right type.
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	raw, err := utils.DecodeTOMLMap(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	for name, keys := range fields(config) {
		section, ok := utils.Extract[map[string]any](raw, name)
		if !ok {
			continue
		}
		for key, dst := range keys {
			if !assign(section, key, dst) {
				if _, present := section[key]; present {
					log.Warnf("Ignoring %s.%s: unexpected type %T", name, key, section[key])
				}
			}
		}
	}
	return config
}

// assign copies section[key] into dst when the types agree.
func assign(section map[string]any, key string, dst any) bool {
	switch p := dst.(type) {
	case *int:
		v, ok := utils.ExtractInt(section, key)
		if ok {
			*p = v
		}
		return ok
	case *int64:
		v, ok := utils.Extract[int64](section, key)
		if ok {
			*p = v
		}
		return ok
	case *bool:
		v, ok := utils.Extract[bool](section, key)
		if ok {
			*p = v
		}
		return ok
	case *string:
		v, ok := utils.Extract[string](section, key)
		if ok {
			*p = v
		}
		return ok
	}
	return false
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.WriteTOMLFile(configPath, config)
}
