package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-html2pdf/internal/config"
)

// envPrefix namespaces every variable read by the CLI.
const envPrefix = "HTML2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // HTML2PDF_CONFIG: config file name or path
	Format      string // HTML2PDF_FORMAT: catalog id
	Timeout     string // HTML2PDF_TIMEOUT: overall conversion timeout
	NetworkIdle string // HTML2PDF_NETWORK_IDLE: network quiet window
	Engine      string // HTML2PDF_ENGINE: rod or playwright
	OutputDir   string // HTML2PDF_OUTPUT_DIR: default output directory
}

// knownEnvVars lists valid HTML2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2PDF_CONFIG":       true,
	"HTML2PDF_FORMAT":       true,
	"HTML2PDF_TIMEOUT":      true,
	"HTML2PDF_NETWORK_IDLE": true,
	"HTML2PDF_ENGINE":       true,
	"HTML2PDF_OUTPUT_DIR":   true,
	"HTML2PDF_CONTAINER":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Values are kept as strings; they are validated with the config file.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath:  os.Getenv("HTML2PDF_CONFIG"),
		Format:      os.Getenv("HTML2PDF_FORMAT"),
		Timeout:     os.Getenv("HTML2PDF_TIMEOUT"),
		NetworkIdle: os.Getenv("HTML2PDF_NETWORK_IDLE"),
		Engine:      os.Getenv("HTML2PDF_ENGINE"),
		OutputDir:   os.Getenv("HTML2PDF_OUTPUT_DIR"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized HTML2PDF_* variables.
// Helps catch typos like HTML2PDF_FROMAT.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays environment values onto cfg. A set variable wins
// over the config file; flags are applied afterwards by mergeFlags, giving
// flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlay(&cfg.Format, env.Format)
	overlay(&cfg.Timeout, env.Timeout)
	overlay(&cfg.NetworkIdle, env.NetworkIdle)
	overlay(&cfg.Engine, env.Engine)
	overlay(&cfg.Output.DefaultDir, env.OutputDir)
}
