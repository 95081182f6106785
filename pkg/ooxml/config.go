package ooxml

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config contains all configuration options for extraction and output
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error off"`
	// DocumentPart names the archive member to parse. Empty resolves the
	// main document from the package metadata.
	DocumentPart string `yaml:"document_part"`
	// Format selects the result emitter (text, json, yaml)
	Format string `yaml:"format" validate:"oneof=text json yaml"`
	// ColorMode controls terminal coloring of text output (auto, always, never)
	ColorMode string `yaml:"color" validate:"oneof=auto always never"`
	// Verbose lists archive members and dumps the event trace and tree
	Verbose bool `yaml:"verbose"`
	// MaxDepth bounds element nesting. 0 means unlimited.
	MaxDepth int `yaml:"max_depth" validate:"gte=0"`
	// Workers is how many archives the CLI processes at once
	Workers int `yaml:"workers" validate:"gte=1,lte=256"`
	// Telemetry makes the CLI export spans and metrics to stderr
	Telemetry bool `yaml:"telemetry"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once

	configValidate = validator.New()
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		Format:    "text",
		ColorMode: "auto",
		MaxDepth:  0,
		Workers:   4,
	}
}

// ConfigFromEnvironment creates a configuration from OOXML_* environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()
	applyEnvironment(config)
	return config
}

func applyEnvironment(config *Config) {
	if val := os.Getenv("OOXML_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(val)
	}
	if val := os.Getenv("OOXML_DOCUMENT_PART"); val != "" {
		config.DocumentPart = val
	}
	if val := os.Getenv("OOXML_FORMAT"); val != "" {
		config.Format = strings.ToLower(val)
	}
	if val := os.Getenv("OOXML_COLOR"); val != "" {
		config.ColorMode = strings.ToLower(val)
	}
	if val := os.Getenv("OOXML_VERBOSE"); val != "" {
		config.Verbose = parseBool(val)
	}
	if val := os.Getenv("OOXML_MAX_DEPTH"); val != "" {
		if depth, err := strconv.Atoi(val); err == nil {
			config.MaxDepth = depth
		}
	}
	if val := os.Getenv("OOXML_TELEMETRY"); val != "" {
		config.Telemetry = parseBool(val)
	}
	if val := os.Getenv("OOXML_WORKERS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.Workers = n
		}
	}
}

// LoadConfigFile reads a YAML configuration. Keys absent from the file keep
// their defaults; environment variables override the file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	applyEnvironment(config)
	return config, nil
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()
	if overrides == nil {
		return defaults
	}

	config := *overrides
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.Format == "" {
		config.Format = defaults.Format
	}
	if config.ColorMode == "" {
		config.ColorMode = defaults.ColorMode
	}
	if config.Workers == 0 {
		config.Workers = defaults.Workers
	}
	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Issues = append(verr.Issues, ValidationIssue{
			Field:   fe.Field(),
			Message: describeRule(fe),
		})
	}
	return verr
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%q is not one of [%s]", fe.Value(), fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// GetGlobalConfig returns a copy of the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
