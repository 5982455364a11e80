package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// EngineKind selects the browser automation backend.
type EngineKind string

// Supported engines.
const (
	// EngineRod drives Chrome over CDP with go-rod. It uses a system Chrome
	// or the Chromium fetched by InstallEngine; it never downloads one.
	EngineRod EngineKind = "rod"

	// EnginePlaywright drives Chromium through the Playwright driver.
	// The driver and browser must be installed beforehand (see InstallEngine).
	EnginePlaywright EngineKind = "playwright"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = EngineRod

// EngineKinds returns the supported engine names.
func EngineKinds() []string {
	return []string{string(EngineRod), string(EnginePlaywright)}
}

// ParseEngine converts a name to an EngineKind (case-insensitive).
// An empty name yields DefaultEngine.
func ParseEngine(name string) (EngineKind, error) {
	switch EngineKind(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultEngine, nil
	case EngineRod:
		return EngineRod, nil
	case EnginePlaywright:
		return EnginePlaywright, nil
	default:
		return "", fmt.Errorf("%w: %q (must be %s)", ErrInvalidEngine, name, strings.Join(EngineKinds(), " or "))
	}
}

// engine launches isolated browser sessions.
type engine interface {
	Launch(ctx context.Context) (session, error)
}

// session is one browser instance with one page, owned by a single conversion.
// Close must be safe to call once on every path, including after a failed
// OpenPage.
type session interface {
	// OpenPage creates the page. The viewport must be applied here, before
	// any navigation.
	OpenPage(ctx context.Context, opts pageOptions) error
	Navigate(ctx context.Context, url string) error
	WaitNetworkIdle(ctx context.Context) error
	WaitFonts(ctx context.Context) error
	InjectStyle(ctx context.Context, css string) error
	PrintPDF(ctx context.Context, opts *ExportOptions) ([]byte, error)
	Close() error
}

// pageOptions configures page creation.
type pageOptions struct {
	Viewport *Viewport

	// NetworkIdle is how long the network must stay free of in-flight
	// requests to count as quiet.
	NetworkIdle time.Duration
}

// Stage marks a completed step of a conversion.
type Stage int

// Conversion stages, in order.
const (
	StageLaunched Stage = iota + 1
	StageNavigated
	StageNetworkQuiet
	StageFontsReady
	StageStylesInjected
	StageExported
	StageWritten
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageLaunched:
		return "launched"
	case StageNavigated:
		return "navigated"
	case StageNetworkQuiet:
		return "network-quiet"
	case StageFontsReady:
		return "fonts-ready"
	case StageStylesInjected:
		return "styles-injected"
	case StageExported:
		return "exported"
	case StageWritten:
		return "written"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// StageHook observes conversion progress. elapsed is measured from the
// start of the conversion.
type StageHook func(stage Stage, elapsed time.Duration)

// errNoPage is returned when a page operation runs before OpenPage.
var errNoPage = errors.New("page not opened")
