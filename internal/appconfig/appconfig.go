// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the root-level config location that is still honored.
	legacyConfigPath = "densebench.json"
	// DefaultDataDir holds the per-method results files.
	DefaultDataDir = "Data"
	// DefaultSummaryPath is the precomputed summary document.
	DefaultSummaryPath = "data_computed/stats.json"
	// DefaultOutputDir receives the rendered site.
	DefaultOutputDir = "site"
	// DefaultServeAddr is where the preview server listens.
	DefaultServeAddr = "localhost:8080"
	// defaultTitle is the page title used when the config omits one.
	defaultTitle = "PFM-DenseBench"
)

var validate = validator.New()

// Config represents the top-level application configuration.
type Config struct {
	Debug          bool     `json:"debug" mapstructure:"debug"`
	DataDir        string   `json:"data" mapstructure:"data" validate:"required"`
	SummaryPath    string   `json:"summary" mapstructure:"summary" validate:"required"`
	OutputDir      string   `json:"out" mapstructure:"out" validate:"required"`
	CatalogPath    string   `json:"catalog,omitempty" mapstructure:"catalog"`
	Methods        []string `json:"methods,omitempty" mapstructure:"methods" validate:"dive,required"`
	Title          string   `json:"title,omitempty" mapstructure:"title"`
	LogFile        string   `json:"logFile,omitempty" mapstructure:"logFile"`
	TimeoutSeconds int      `json:"timeout,omitempty" mapstructure:"timeout" validate:"min=0"`
	ServeAddr      string   `json:"serveAddr,omitempty" mapstructure:"serveAddr" validate:"omitempty,hostname_port"`
	ConfigPath     string   `json:"-" mapstructure:"-"`
}

// Defaults returns a configuration with every default applied.
func Defaults() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills empty fields with their defaults.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = DefaultDataDir
	}
	if strings.TrimSpace(c.SummaryPath) == "" {
		c.SummaryPath = DefaultSummaryPath
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = DefaultOutputDir
	}
	if strings.TrimSpace(c.ServeAddr) == "" {
		c.ServeAddr = DefaultServeAddr
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RequestTimeout returns the HTTP timeout for remote inputs. Zero means no timeout.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "densebench.log"
}

// PageTitle returns the configured site title or the default.
func (c Config) PageTitle() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	return defaultTitle
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, config.Validate()
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, config.Validate()
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	config.ApplyDefaults()
	return config, nil
}
