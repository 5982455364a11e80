package html2pdf

import "time"

// Default timings.
const (
	// defaultTimeout bounds a whole conversion, launch to write.
	defaultTimeout = 60 * time.Second

	// defaultReadinessTimeout bounds navigation plus the readiness waits.
	defaultReadinessTimeout = 30 * time.Second

	// defaultNetworkIdle matches the common "networkidle" definition.
	defaultNetworkIdle = 500 * time.Millisecond
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout          time.Duration
	readinessTimeout time.Duration
	networkIdle      time.Duration
	engine           string
	browserBin       string
	noSandbox        bool
	stageHook        StageHook
}

// WithTimeout sets the overall per-conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithReadinessTimeout bounds navigation, network quiescence and font
// loading. The overall timeout still applies on top of it.
// Panics if d <= 0.
func WithReadinessTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithReadinessTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.readinessTimeout = d
	}
}

// WithNetworkIdle sets how long the network must be quiet before the
// document counts as loaded. Documents with long-lived background
// connections may need a shorter window or a longer readiness timeout.
// Panics if d <= 0.
func WithNetworkIdle(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithNetworkIdle duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.networkIdle = d
	}
}

// WithEngine selects the browser backend by name ("rod" or "playwright").
// NewConverter returns ErrInvalidEngine for unknown names.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithBrowserBin uses a pre-installed browser binary instead of the one
// found automatically. ROD_BROWSER_BIN is honored when this is not set.
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithNoSandbox disables the Chrome sandbox (containers, CI).
// ROD_NO_SANDBOX=1 has the same effect.
func WithNoSandbox(disabled bool) Option {
	return func(c *Converter) {
		c.cfg.noSandbox = disabled
	}
}

// WithStageHook registers a callback invoked after each conversion stage.
func WithStageHook(h StageHook) Option {
	return func(c *Converter) {
		c.cfg.stageHook = h
	}
}
