package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/pdfinfo"
)

// Compile-time interface implementation checks.
var (
	_ engine  = (*rodEngine)(nil)
	_ session = (*rodSession)(nil)
	_ engine  = (*playwrightEngine)(nil)
	_ session = (*playwrightSession)(nil)
)

// outputPermissions: PDFs are meant to be readable.
const outputPermissions = 0o644

// Request describes one conversion.
type Request struct {
	Source string // HTML file path, or an http(s)/file URL
	Output string // destination PDF path
	Format string // catalog id; empty means DefaultFormat
}

// Result describes a written PDF.
type Result struct {
	Path     string
	Size     int64
	Format   string
	Pages    int
	Duration time.Duration
}

// Converter runs the HTML-to-PDF pipeline.
// Each Convert call launches and closes its own browser session, so a
// Converter may be shared by concurrent callers.
type Converter struct {
	cfg    converterConfig
	engine engine
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithEngine).
// Returns ErrInvalidEngine if the engine name is unknown.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:          defaultTimeout,
			readinessTimeout: defaultReadinessTimeout,
			networkIdle:      defaultNetworkIdle,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	kind, err := ParseEngine(c.cfg.engine)
	if err != nil {
		return nil, err
	}

	// Create engine if not injected (e.g., by tests)
	if c.engine == nil {
		c.engine = newEngine(kind, c.cfg)
	}

	return c, nil
}

// newEngine builds the production engine for kind.
func newEngine(kind EngineKind, cfg converterConfig) engine {
	if kind == EnginePlaywright {
		return newPlaywrightEngine(cfg.browserBin, cfg.noSandbox)
	}
	return newRodEngine(cfg.browserBin, cfg.noSandbox)
}

// Convert renders req.Source and writes the PDF to req.Output.
//
// The steps run in a fixed order: resolve the format, launch the browser,
// open a page sized for the format, navigate, wait for the network to go
// quiet, wait for fonts, inject the print overrides, export, write. The
// browser is closed before Convert returns, on every path. Nothing is
// retried. The output file only appears once a complete, parseable PDF has
// been produced.
//
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, req Request) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := req.validate(); err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = DefaultFormat
	}

	// Unknown formats fail before any browser resource exists.
	profile, err := ResolveFormat(format)
	if err != nil {
		return nil, err
	}
	plan := newRenderPlan(profile)

	sourceURL, err := resolveSourceURL(req.Source)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	start := time.Now()
	mark := func(s Stage) {
		if c.cfg.stageHook != nil {
			c.cfg.stageHook(s, time.Since(start))
		}
	}

	pdf, err := c.export(ctx, sourceURL, plan, mark)
	if err != nil {
		return nil, err
	}

	info, err := pdfinfo.Inspect(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid output: %v", ErrExportFailed, err)
	}
	mark(StageExported)

	if err := fileutil.WriteFileAtomic(req.Output, pdf, outputPermissions); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %w", ErrExportFailed, req.Output, err)
	}
	mark(StageWritten)

	return &Result{
		Path:     req.Output,
		Size:     int64(len(pdf)),
		Format:   format,
		Pages:    info.Pages,
		Duration: time.Since(start),
	}, nil
}

// export runs one browser session from launch to PDF bytes. The session is
// closed before export returns, so nothing is written when closing fails.
func (c *Converter) export(ctx context.Context, sourceURL string, plan *RenderPlan, mark func(Stage)) (pdf []byte, err error) {
	sess, err := c.engine.Launch(ctx)
	if err != nil {
		if ctxErr := context.Cause(ctx); ctxErr != nil {
			return nil, fmt.Errorf("%w: launching browser: %w", ErrEngineUnavailable, ctxErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil && err == nil {
			pdf = nil
			err = fmt.Errorf("closing browser session: %w", closeErr)
		}
	}()
	mark(StageLaunched)

	return c.render(ctx, sess, sourceURL, plan, mark)
}

// render drives an open session from page creation to exported bytes.
func (c *Converter) render(ctx context.Context, sess session, sourceURL string, plan *RenderPlan, mark func(Stage)) ([]byte, error) {
	readyCtx, cancelReady := context.WithTimeout(ctx, c.cfg.readinessTimeout)
	defer cancelReady()

	// The viewport is fixed at page creation: resizing after layout is not
	// equivalent for responsive documents.
	err := sess.OpenPage(readyCtx, pageOptions{
		Viewport:    plan.Viewport,
		NetworkIdle: c.cfg.networkIdle,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: opening page: %v", ErrEngineUnavailable, err)
	}

	if err := sess.Navigate(readyCtx, sourceURL); err != nil {
		return nil, readinessError(readyCtx, "navigating", err)
	}
	mark(StageNavigated)

	if err := sess.WaitNetworkIdle(readyCtx); err != nil {
		return nil, readinessError(readyCtx, "waiting for network idle", err)
	}
	mark(StageNetworkQuiet)

	if err := sess.WaitFonts(readyCtx); err != nil {
		return nil, readinessError(readyCtx, "waiting for fonts", err)
	}
	mark(StageFontsReady)
	cancelReady()

	// Injected after readiness so the style tag is not itself a pending load.
	if err := sess.InjectStyle(ctx, PrintOverrideCSS); err != nil {
		return nil, fmt.Errorf("%w: injecting print overrides: %v", ErrExportFailed, exportCause(ctx, err))
	}
	mark(StageStylesInjected)

	pdf, err := sess.PrintPDF(ctx, &plan.Export)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, exportCause(ctx, err))
	}

	return pdf, nil
}

// readinessError classifies a failure during navigation or the readiness
// waits. An expired deadline is a render timeout; a caller cancellation is
// passed through; anything else is a load failure.
func readinessError(ctx context.Context, step string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrRenderTimeout, step, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%s: %w", step, context.Canceled)
	}
	return fmt.Errorf("%w: %s: %v", ErrPageLoad, step, err)
}

// exportCause prefers the context error when the deadline is what
// interrupted the export.
func exportCause(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w (%v)", ctxErr, err)
	}
	return err
}

// validate checks that required fields are present.
func (r Request) validate() error {
	if r.Source == "" {
		return ErrEmptySource
	}
	if r.Output == "" {
		return ErrEmptyOutput
	}
	return nil
}

// resolveSourceURL turns a path into a file:// URL. URLs pass through.
func resolveSourceURL(source string) (string, error) {
	if fileutil.IsURL(source) {
		return source, nil
	}
	if !fileutil.FileExists(source) {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}
	u, err := fileutil.ToFileURL(source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	}
	return u, nil
}
