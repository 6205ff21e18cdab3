package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dokzlo13/trimlight/internal/errs"
)

// Environment variables read when the file leaves a value empty.
const (
	EnvClientID     = "TRIMLIGHT_CLIENT_ID"
	EnvClientSecret = "TRIMLIGHT_CLIENT_SECRET"
	EnvAPIURL       = "TRIMLIGHT_API_URL"
	EnvDevice       = "TRIMLIGHT_DEVICE"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://trimlight.ledhue.com/trimlight"

// Config represents the application configuration
type Config struct {
	API    APIConfig `yaml:"api"`
	Device string    `yaml:"device"` // Default device id; first listed device when empty
	Log    LogConfig `yaml:"log"`
	Script string    `yaml:"script"` // Default script for the script command
}

// APIConfig contains cloud API connection settings
type APIConfig struct {
	BaseURL      string   `yaml:"base_url"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	Timeout      Duration `yaml:"timeout"` // HTTP timeout per request
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	JSON   bool   `yaml:"json"`
	Colors bool   `yaml:"colors"`
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses the configuration file. With an empty path the
// configuration comes from the environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		// Expand environment variables
		expanded := expandEnvVars(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	// Environment fills what the file left empty
	fromEnv(&cfg.API.ClientID, EnvClientID)
	fromEnv(&cfg.API.ClientSecret, EnvClientSecret)
	fromEnv(&cfg.API.BaseURL, EnvAPIURL)
	fromEnv(&cfg.Device, EnvDevice)

	// Set defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = Duration(30 * time.Second)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Script == "" {
		cfg.Script = "main.lua"
	}

	return &cfg, nil
}

// Validate reports missing credentials before any request is made.
func (c *Config) Validate() error {
	if c.API.ClientID == "" {
		return fmt.Errorf("%w: %s environment variable not set", errs.ErrMissingCredentials, EnvClientID)
	}
	if c.API.ClientSecret == "" {
		return fmt.Errorf("%w: %s environment variable not set", errs.ErrMissingCredentials, EnvClientSecret)
	}
	return nil
}

func fromEnv(dst *string, name string) {
	if *dst != "" {
		return
	}
	*dst = os.Getenv(name)
}

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	return envPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := envPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := strings.TrimSpace(parts[1])
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
