package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// CoverageOverride replaces the default coverage rule on the dates a
// recurrence rule produces, e.g. closure days (0/0) or event days with
// extra staffing. The rrule should carry its own DTSTART line, e.g.
// "DTSTART:20260101T000000Z\nRRULE:FREQ=WEEKLY;BYDAY=MO".
type CoverageOverride struct {
	RRule     string `yaml:"rrule" validate:"required"`
	Morning   int    `yaml:"morning" validate:"min=0"`
	Afternoon int    `yaml:"afternoon" validate:"min=0"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL       string             `yaml:"databaseURL" validate:"required"`
	CoverageOverrides []CoverageOverride `yaml:"coverageOverrides,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from kitchen_roster_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.CoverageOverrides {
		if _, err := rrule.StrToRRuleSet(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in coverageOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for kitchen_roster_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "kitchen_roster_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
