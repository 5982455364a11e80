package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// playwrightEngine launches Chromium through the Playwright driver.
// The driver and browser must already be installed (see InstallEngine).
type playwrightEngine struct {
	browserBin string
	noSandbox  bool
}

// newPlaywrightEngine creates a playwrightEngine. Empty browserBin uses the
// Chromium build managed by Playwright.
func newPlaywrightEngine(browserBin string, noSandbox bool) *playwrightEngine {
	return &playwrightEngine{browserBin: browserBin, noSandbox: noSandbox}
}

// Launch starts the driver and one headless Chromium.
func (e *playwrightEngine) Launch(ctx context.Context) (session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Run and Launch are called synchronously: a driver or browser started
	// after an early return would have no owner to stop it.
	pw, err := playwright.Run(&playwright.RunOptions{SkipInstallBrowsers: true})
	if err != nil {
		return nil, fmt.Errorf("starting playwright driver: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless:        playwright.Bool(true),
		ChromiumSandbox: playwright.Bool(!e.noSandbox),
	}
	if e.browserBin != "" {
		launchOpts.ExecutablePath = playwright.String(e.browserBin)
	}
	if ms, ok := remainingMillis(ctx); ok {
		launchOpts.Timeout = playwright.Float(ms)
	}

	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launching chromium: %w", err)
	}

	return &playwrightSession{pw: pw, browser: browser}, nil
}

// playwrightSession is one Chromium instance with one page.
type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

// OpenPage creates the page with its viewport already set.
func (s *playwrightSession) OpenPage(ctx context.Context, opts pageOptions) error {
	pageOpts := playwright.BrowserNewPageOptions{}
	if v := opts.Viewport; v != nil {
		pageOpts.Viewport = &playwright.Size{Width: v.Width, Height: v.Height}
	}

	page, err := runWithContext(ctx, func() (playwright.Page, error) {
		return s.browser.NewPage(pageOpts)
	})
	if err != nil {
		return err
	}
	s.page = page
	return nil
}

// Navigate loads url and waits for the load event.
func (s *playwrightSession) Navigate(ctx context.Context, url string) error {
	if s.page == nil {
		return errNoPage
	}

	gotoOpts := playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateLoad}
	if ms, ok := remainingMillis(ctx); ok {
		gotoOpts.Timeout = playwright.Float(ms)
	}

	_, err := runWithContext(ctx, func() (playwright.Response, error) {
		return s.page.Goto(url, gotoOpts)
	})
	return err
}

// WaitNetworkIdle waits for Playwright's networkidle state. Its quiet
// window is fixed by Playwright at 500ms.
func (s *playwrightSession) WaitNetworkIdle(ctx context.Context) error {
	if s.page == nil {
		return errNoPage
	}

	stateOpts := playwright.PageWaitForLoadStateOptions{State: playwright.LoadStateNetworkidle}
	if ms, ok := remainingMillis(ctx); ok {
		stateOpts.Timeout = playwright.Float(ms)
	}

	_, err := runWithContext(ctx, func() (struct{}, error) {
		return struct{}{}, s.page.WaitForLoadState(stateOpts)
	})
	return err
}

// WaitFonts blocks until document.fonts.ready resolves, or ctx ends.
func (s *playwrightSession) WaitFonts(ctx context.Context) error {
	if s.page == nil {
		return errNoPage
	}
	_, err := runWithContext(ctx, func() (any, error) {
		return s.page.Evaluate(fontsReadyJS)
	})
	return err
}

// InjectStyle appends a <style> element to the live document.
func (s *playwrightSession) InjectStyle(ctx context.Context, css string) error {
	if s.page == nil {
		return errNoPage
	}
	_, err := runWithContext(ctx, func() (playwright.ElementHandle, error) {
		return s.page.AddStyleTag(playwright.PageAddStyleTagOptions{Content: playwright.String(css)})
	})
	return err
}

// PrintPDF exports the current document state.
func (s *playwrightSession) PrintPDF(ctx context.Context, opts *ExportOptions) ([]byte, error) {
	if s.page == nil {
		return nil, errNoPage
	}
	return runWithContext(ctx, func() ([]byte, error) {
		return s.page.PDF(buildPagePdfOptions(opts))
	})
}

// Close closes the browser, then stops the driver process.
func (s *playwrightSession) Close() error {
	var errs []error

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
		}
		s.browser = nil
		s.page = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stopping playwright driver: %w", err))
		}
		s.pw = nil
	}

	return errors.Join(errs...)
}

// buildPagePdfOptions maps engine-neutral export options to Playwright's.
// Playwright takes CSS length strings, so lengths keep their unit.
func buildPagePdfOptions(opts *ExportOptions) playwright.PagePdfOptions {
	margin := opts.Margin.String()

	pdfOpts := playwright.PagePdfOptions{
		PrintBackground:   playwright.Bool(opts.PrintBackground),
		PreferCSSPageSize: playwright.Bool(opts.PreferCSSPageSize),
		Margin: &playwright.Margin{
			Top:    playwright.String(margin),
			Right:  playwright.String(margin),
			Bottom: playwright.String(margin),
			Left:   playwright.String(margin),
		},
	}

	if opts.Width != nil {
		pdfOpts.Width = playwright.String(opts.Width.String())
	}
	if opts.Height != nil {
		pdfOpts.Height = playwright.String(opts.Height.String())
	}

	return pdfOpts
}

// remainingMillis converts the context deadline to a Playwright timeout.
func remainingMillis(ctx context.Context) (float64, bool) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0, false
	}
	ms := float64(time.Until(deadline).Milliseconds())
	if ms < 1 {
		ms = 1
	}
	return ms, true
}

// runWithContext runs a blocking Playwright call and returns early when ctx
// ends. Playwright timeouts are reported as context.DeadlineExceeded.
func runWithContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}

	done := make(chan outcome, 1)
	go func() {
		val, err := fn()
		done <- outcome{val: val, err: err}
	}()

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case out := <-done:
		if errors.Is(out.err, playwright.ErrTimeout) {
			return zero, fmt.Errorf("%w: %v", context.DeadlineExceeded, out.err)
		}
		return out.val, out.err
	}
}
