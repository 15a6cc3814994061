// Package config loads the pokedex configuration with viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (POKEDEX_API_BASE_URL, ...)
const EnvPrefix = "POKEDEX"

// Config holds all application configuration
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Storage  StorageConfig  `mapstructure:"storage"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Hospital HospitalConfig `mapstructure:"hospital"`
}

// APIConfig holds PokeAPI configuration
type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
	SpeciesLimit int           `mapstructure:"species_limit"`
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // empty keeps everything in memory
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme         string `mapstructure:"theme"`
	DefaultScreen string `mapstructure:"default_screen"` // search, favorites, ash, badges, centers
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// HospitalConfig is the reference point for the Pokémon Center locator
type HospitalConfig struct {
	HomeLatitude  float64 `mapstructure:"home_latitude"`
	HomeLongitude float64 `mapstructure:"home_longitude"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "https://pokeapi.co/api/v2",
			Timeout:      30 * time.Second,
			UserAgent:    "Pokedex/1.0",
			SpeciesLimit: 500,
		},
		Storage: StorageConfig{
			Path: "",
		},
		UI: UIConfig{
			Theme:         "default",
			DefaultScreen: "search",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Hospital: HospitalConfig{
			HomeLatitude:  36.8885,
			HomeLongitude: 30.7,
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pokedex", "pokedex.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "pokedex", "pokedex.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pokedex")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "pokedex")
	}
}

// DefaultDataPath is a suggested storage.path for users who opt into persistence
func DefaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "pokedex", "data")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "pokedex", "data")
	}
}

// setDefaults registers every key with viper so that environment
// overrides apply to nested keys
func setDefaults(cfg *Config) {
	viper.SetDefault("api.base_url", cfg.API.BaseURL)
	viper.SetDefault("api.timeout", cfg.API.Timeout)
	viper.SetDefault("api.user_agent", cfg.API.UserAgent)
	viper.SetDefault("api.species_limit", cfg.API.SpeciesLimit)
	viper.SetDefault("storage.path", cfg.Storage.Path)
	viper.SetDefault("ui.theme", cfg.UI.Theme)
	viper.SetDefault("ui.default_screen", cfg.UI.DefaultScreen)
	viper.SetDefault("logging.file", cfg.Logging.File)
	viper.SetDefault("logging.level", cfg.Logging.Level)
	viper.SetDefault("hospital.home_latitude", cfg.Hospital.HomeLatitude)
	viper.SetDefault("hospital.home_longitude", cfg.Hospital.HomeLongitude)
}

// LoadConfig loads configuration from file and environment. configFile,
// when set, replaces the search in the default locations.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(cfg)

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(defaultConfigPath())
		viper.AddConfigPath(".")
	}

	// Environment variable overrides
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the default location
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, filepath.Join(defaultConfigPath(), "config.yaml"))
}

// SaveConfigTo writes the configuration as YAML to configFile
func SaveConfigTo(cfg *Config, configFile string) error {
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("api.base_url", cfg.API.BaseURL)
	viper.Set("api.timeout", cfg.API.Timeout.String())
	viper.Set("api.user_agent", cfg.API.UserAgent)
	viper.Set("api.species_limit", cfg.API.SpeciesLimit)

	viper.Set("storage.path", cfg.Storage.Path)

	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("ui.default_screen", cfg.UI.DefaultScreen)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	viper.Set("hospital.home_latitude", cfg.Hospital.HomeLatitude)
	viper.Set("hospital.home_longitude", cfg.Hospital.HomeLongitude)

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Persistent reports whether favorites and the species index survive restarts
func (c *Config) Persistent() bool {
	return c.Storage.Path != ""
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}
