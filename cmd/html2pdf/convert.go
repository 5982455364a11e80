package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage         = errors.New("invalid usage")
	ErrNoInput       = errors.New("no input specified")
	ErrInputNotFound = errors.New("input file not found")
	ErrTooManyArgs   = errors.New("too many arguments")
	ErrNoOutput      = errors.New("--output is required for URL input")
)

// convertParams is the fully resolved convert invocation.
type convertParams struct {
	input   string
	output  string
	format  string
	engine  html2pdf.EngineKind
	options []html2pdf.Option
}

// runConvertCmd parses flags, resolves configuration and converts one file.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)

	params, err := resolveConvertParams(positional, flags.output, cfg)
	if err != nil {
		return err
	}
	if flags.common.verbose {
		params.options = append(params.options, html2pdf.WithStageHook(stageLogger(env)))
	}

	conv, err := env.NewConverter(params.options...)
	if err != nil {
		return err
	}

	result, err := conv.Convert(ctx, html2pdf.Request{
		Source: params.input,
		Output: params.output,
		Format: params.format,
	})
	if err != nil {
		return withHint(err, conversionHint(err, params.engine))
	}

	if !flags.common.quiet {
		printResult(env, result, flags.common.verbose)
	}
	return nil
}

// loadConfig reads the config file (flag first, then HTML2PDF_CONFIG) and
// overlays the environment.
func loadConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, withHint(fmt.Errorf("loading config: %w", err), hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)

	// Env values bypass LoadConfig, so validate the merged result.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags copies explicitly set flags over cfg (CLI wins).
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.format != "" {
		cfg.Format = flags.format
	}
	if flags.timing.timeout != "" {
		cfg.Timeout = flags.timing.timeout
	}
	if flags.timing.readinessTimeout != "" {
		cfg.ReadinessTimeout = flags.timing.readinessTimeout
	}
	if flags.timing.networkIdle != "" {
		cfg.NetworkIdle = flags.timing.networkIdle
	}
	if flags.browser.engine != "" {
		cfg.Engine = flags.browser.engine
	}
	if flags.browser.bin != "" {
		cfg.Browser.Bin = flags.browser.bin
	}
	if flags.browser.noSandbox {
		cfg.Browser.NoSandbox = true
	}
}

// resolveConvertParams validates the input and turns cfg into converter
// options. Unknown formats and engines are rejected here, before any
// browser is started.
func resolveConvertParams(positional []string, flagOutput string, cfg *config.Config) (*convertParams, error) {
	input, err := resolveInputPath(positional)
	if err != nil {
		return nil, err
	}

	output, err := resolveOutputPath(input, flagOutput, cfg.Output.DefaultDir)
	if err != nil {
		return nil, err
	}

	format := cfg.Format
	if format == "" {
		format = html2pdf.DefaultFormat
	}
	if _, err := html2pdf.ResolveFormat(format); err != nil {
		return nil, withHint(err, hints.ForUnknownFormat(html2pdf.FormatIDs()))
	}

	engine, err := html2pdf.ParseEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}

	opts, err := converterOptions(cfg, engine)
	if err != nil {
		return nil, err
	}

	return &convertParams{
		input:   input,
		output:  output,
		format:  format,
		engine:  engine,
		options: opts,
	}, nil
}

// resolveInputPath returns the single positional input. Local inputs must be
// existing regular files; URLs are passed through.
func resolveInputPath(args []string) (string, error) {
	switch {
	case len(args) == 0:
		return "", ErrNoInput
	case len(args) > 1:
		return "", fmt.Errorf("%w: %v", ErrTooManyArgs, args[1:])
	}

	input := args[0]
	if fileutil.IsURL(input) {
		return input, nil
	}
	if !fileutil.FileExists(input) {
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, input)
	}
	return input, nil
}

// resolveOutputPath picks the PDF destination: the flag if given, otherwise
// the input name with a .pdf extension, placed in defaultDir when set.
func resolveOutputPath(input, flagOutput, defaultDir string) (string, error) {
	if flagOutput != "" {
		return flagOutput, nil
	}
	if fileutil.IsURL(input) {
		return "", ErrNoOutput
	}

	output, err := fileutil.ReplaceExt(input, "pdf")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if defaultDir != "" {
		output = filepath.Join(defaultDir, filepath.Base(output))
	}
	return output, nil
}

// converterOptions maps the merged config to library options.
func converterOptions(cfg *config.Config, engine html2pdf.EngineKind) ([]html2pdf.Option, error) {
	opts := []html2pdf.Option{html2pdf.WithEngine(string(engine))}

	timeout, err := config.ParseDuration("timeout", cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, html2pdf.WithTimeout(timeout))
	}

	readiness, err := config.ParseDuration("readinessTimeout", cfg.ReadinessTimeout)
	if err != nil {
		return nil, err
	}
	if readiness > 0 {
		opts = append(opts, html2pdf.WithReadinessTimeout(readiness))
	}

	idle, err := config.ParseDuration("networkIdle", cfg.NetworkIdle)
	if err != nil {
		return nil, err
	}
	if idle > 0 {
		opts = append(opts, html2pdf.WithNetworkIdle(idle))
	}

	if cfg.Browser.Bin != "" {
		opts = append(opts, html2pdf.WithBrowserBin(cfg.Browser.Bin))
	}
	if cfg.Browser.NoSandbox {
		opts = append(opts, html2pdf.WithNoSandbox(true))
	}

	return opts, nil
}

// stageLogger prints each completed stage with its elapsed time.
func stageLogger(env *Environment) html2pdf.StageHook {
	return func(stage html2pdf.Stage, elapsed time.Duration) {
		fmt.Fprintf(env.Stderr, "  %-16s %s\n", stage, elapsed.Round(time.Millisecond))
	}
}

// printResult prints the success line.
func printResult(env *Environment, r *html2pdf.Result, verbose bool) {
	sizeKB := float64(r.Size) / 1024
	fmt.Fprintf(env.Stdout, "PDF saved: %s  (%.0f KB, format: %s)\n", r.Path, sizeKB, r.Format)
	if verbose {
		fmt.Fprintf(env.Stderr, "  pages: %d, took %s\n", r.Pages, r.Duration.Round(time.Millisecond))
	}
}

// conversionHint picks the hint for a failed conversion.
func conversionHint(err error, engine html2pdf.EngineKind) string {
	switch {
	case isWriteFailure(err):
		return hints.ForOutputDirectory()
	case errors.Is(err, html2pdf.ErrEngineUnavailable):
		return hints.ForBrowserLaunch(string(engine))
	case errors.Is(err, html2pdf.ErrRenderTimeout):
		return hints.ForRenderTimeout()
	case errors.Is(err, html2pdf.ErrPageLoad):
		return hints.ForPageLoad()
	}
	return ""
}

// hintedError appends a hint line to an error message without hiding the
// wrapped error from errors.Is.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches hint to err. An empty hint returns err unchanged.
func withHint(err error, hint string) error {
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}
