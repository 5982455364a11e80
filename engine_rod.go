package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2pdf/internal/process"
)

// fontsReadyJS resolves once every declared font face has settled.
const fontsReadyJS = `() => document.fonts.ready.then(() => document.fonts.status)`

// idleExcludedTypes are the resource types the network-idle wait ignores.
// Only long-lived streams are left out; images, fonts and media count.
var idleExcludedTypes = []proto.NetworkResourceType{
	proto.NetworkResourceTypeWebSocket,
	proto.NetworkResourceTypeEventSource,
}

// errBrowserNotInstalled is returned when no Chrome could be located.
var errBrowserNotInstalled = errors.New("no chromium found: run 'html2pdf install' or set ROD_BROWSER_BIN")

// rodEngine launches Chrome through go-rod. It never downloads a browser:
// the binary comes from the explicit path, ROD_BROWSER_BIN, a system
// install, or the Chromium fetched by InstallEngine.
type rodEngine struct {
	browserBin string
	noSandbox  bool

	lookPath func() (string, bool)
	managed  func() (string, error)
}

// newRodEngine creates a rodEngine. Empty browserBin falls back to
// ROD_BROWSER_BIN, then to a system Chrome, then to rod's managed Chromium.
func newRodEngine(browserBin string, noSandbox bool) *rodEngine {
	return &rodEngine{
		browserBin: browserBin,
		noSandbox:  noSandbox,
		lookPath:   launcher.LookPath,
		managed:    installedManagedBrowser,
	}
}

// installedManagedBrowser returns rod's downloaded Chromium if it is present
// and usable.
func installedManagedBrowser() (string, error) {
	b := launcher.NewBrowser()
	if err := b.Validate(); err != nil {
		return "", err
	}
	return b.BinPath(), nil
}

// bin returns the explicitly configured browser binary, if any.
func (e *rodEngine) bin() string {
	if e.browserBin != "" {
		return e.browserBin
	}
	return os.Getenv("ROD_BROWSER_BIN")
}

// resolveBin picks the browser to launch without downloading anything.
func (e *rodEngine) resolveBin() (string, error) {
	if bin := e.bin(); bin != "" {
		return bin, nil
	}
	if bin, ok := e.lookPath(); ok {
		return bin, nil
	}
	if bin, err := e.managed(); err == nil {
		return bin, nil
	}
	return "", errBrowserNotInstalled
}

// sandboxDisabled reports whether Chrome must run without its sandbox.
// Required for CI and containerized environments.
func (e *rodEngine) sandboxDisabled() bool {
	return e.noSandbox ||
		os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("CI") == "true" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

// Launch starts a fresh browser process and connects to it.
func (e *rodEngine) Launch(ctx context.Context) (session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bin, err := e.resolveBin()
	if err != nil {
		return nil, err
	}

	// An explicit Bin keeps the launcher from falling back to a download.
	l := launcher.New().Context(ctx).Bin(bin)
	if e.sandboxDisabled() {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	// The browser keeps a background context: it must stay usable for Close
	// after the conversion context has expired.
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &rodSession{launcher: l, browser: browser}, nil
}

// rodSession is one Chrome process with one page.
type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page

	networkIdle time.Duration
	waitIdle    func()
}

// OpenPage creates a blank page and applies the viewport before anything
// is loaded into it.
func (s *rodSession) OpenPage(ctx context.Context, opts pageOptions) error {
	page, err := s.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return err
	}
	s.page = page
	s.networkIdle = opts.NetworkIdle

	if v := opts.Viewport; v != nil {
		err := page.Context(ctx).SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             v.Width,
			Height:            v.Height,
			DeviceScaleFactor: 1,
		})
		if err != nil {
			return fmt.Errorf("setting viewport %dx%d: %w", v.Width, v.Height, err)
		}
	}
	return nil
}

// Navigate loads url and waits for the load event. The request-idle
// watcher is armed first so requests issued during load are counted.
func (s *rodSession) Navigate(ctx context.Context, url string) error {
	if s.page == nil {
		return errNoPage
	}
	p := s.page.Context(ctx)

	s.waitIdle = p.WaitRequestIdle(s.networkIdle, nil, nil, idleExcludedTypes)

	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

// WaitNetworkIdle blocks until no request has been in flight for the idle
// window, or ctx ends.
func (s *rodSession) WaitNetworkIdle(ctx context.Context) error {
	if s.waitIdle == nil {
		return errNoPage
	}
	s.waitIdle()
	return ctx.Err()
}

// WaitFonts blocks until document.fonts.ready resolves, or ctx ends.
func (s *rodSession) WaitFonts(ctx context.Context) error {
	if s.page == nil {
		return errNoPage
	}
	if _, err := s.page.Context(ctx).Eval(fontsReadyJS); err != nil {
		return err
	}
	return ctx.Err()
}

// InjectStyle appends a <style> element to the live document.
func (s *rodSession) InjectStyle(ctx context.Context, css string) error {
	if s.page == nil {
		return errNoPage
	}
	return s.page.Context(ctx).AddStyleTag("", css)
}

// PrintPDF exports the current document state.
func (s *rodSession) PrintPDF(ctx context.Context, opts *ExportOptions) ([]byte, error) {
	if s.page == nil {
		return nil, errNoPage
	}

	reader, err := s.page.Context(ctx).PDF(buildPrintToPDF(opts))
	if err != nil {
		return nil, err
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %w", err)
	}
	return pdfBuf, nil
}

// Close shuts the browser down and makes sure the process tree is gone.
// The graceful close comes first; killing the process group afterwards
// catches renderer or GPU children that outlive it.
func (s *rodSession) Close() error {
	var errs []error

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
		}
		s.browser = nil
		s.page = nil
	}

	if s.launcher != nil {
		if pid := s.launcher.PID(); pid > 0 {
			_ = process.KillProcessGroup(pid)
		}
		s.launcher.Cleanup()
		s.launcher = nil
	}

	return errors.Join(errs...)
}

// buildPrintToPDF maps engine-neutral export options to the CDP request.
// Chrome expects inches; unset paper size with PreferCSSPageSize lets the
// document's @page rule decide.
func buildPrintToPDF(opts *ExportOptions) *proto.PagePrintToPDF {
	margin := opts.Margin.Inches()

	req := &proto.PagePrintToPDF{
		PrintBackground:   opts.PrintBackground,
		PreferCSSPageSize: opts.PreferCSSPageSize,
		MarginTop:         floatPtr(margin),
		MarginBottom:      floatPtr(margin),
		MarginLeft:        floatPtr(margin),
		MarginRight:       floatPtr(margin),
	}

	if opts.Width != nil {
		req.PaperWidth = floatPtr(opts.Width.Inches())
	}
	if opts.Height != nil {
		req.PaperHeight = floatPtr(opts.Height.Inches())
	}

	return req
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
