package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidDuration = errors.New("invalid duration")
)

// Field length limits.
const (
	MaxFormatLength   = 32   // catalog ids are short
	MaxEngineLength   = 32   // "rod", "playwright"
	MaxDurationLength = 32   // "1m30s"
	MaxPathLength     = 4096 // PATH_MAX on Linux
)

// dirName is the directory searched under the user config dir.
const dirName = "go-html2pdf"

// Config holds the CLI defaults read from a YAML file.
// Durations are Go duration strings ("45s", "750ms").
type Config struct {
	Format           string        `yaml:"format"`
	Engine           string        `yaml:"engine"`
	Timeout          string        `yaml:"timeout"`
	ReadinessTimeout string        `yaml:"readinessTimeout"`
	NetworkIdle      string        `yaml:"networkIdle"`
	Output           OutputConfig  `yaml:"output"`
	Browser          BrowserConfig `yaml:"browser"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// BrowserConfig selects the browser binary and sandbox mode.
type BrowserConfig struct {
	Bin       string `yaml:"bin"`       // Empty = engine's own lookup
	NoSandbox bool   `yaml:"noSandbox"` // Required in most containers
}

// Validate checks field lengths and duration syntax.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("format", c.Format, MaxFormatLength); err != nil {
		return err
	}
	if err := validateFieldLength("engine", c.Engine, MaxEngineLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}

	durations := []struct {
		field string
		value string
	}{
		{"timeout", c.Timeout},
		{"readinessTimeout", c.ReadinessTimeout},
		{"networkIdle", c.NetworkIdle},
	}
	for _, d := range durations {
		if _, err := ParseDuration(d.field, d.value); err != nil {
			return err
		}
	}

	return nil
}

// ParseDuration parses a duration field. Empty means unset and returns zero.
// Set values must be positive.
func ParseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	if err := validateFieldLength(field, value, MaxDurationLength); err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q", ErrInvalidDuration, field, value)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidDuration, field, value)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with every field unset, so library
// defaults apply.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// name.yaml and name.yml in the current directory, then in
// ~/.config/go-html2pdf/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, dirName))
	}

	paths := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, candidate := range tried {
		if fileutil.FileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
