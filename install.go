package html2pdf

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/playwright-community/playwright-go"
)

// InstallEngine downloads the browser the engine needs and returns the
// installed binary path when the engine reports one.
//
// Convert never installs anything: a missing browser surfaces as
// ErrEngineUnavailable. This is the explicit step behind the CLI's install
// command.
func InstallEngine(ctx context.Context, kind EngineKind) (string, error) {
	switch kind {
	case EngineRod:
		bin, err := managedBrowser(ctx).Get()
		if err != nil {
			return "", fmt.Errorf("downloading chromium for rod: %w", err)
		}
		return bin, nil

	case EnginePlaywright:
		_, err := runWithContext(ctx, func() (struct{}, error) {
			return struct{}{}, playwright.Install(&playwright.RunOptions{
				Browsers: []string{"chromium"},
			})
		})
		if err != nil {
			return "", fmt.Errorf("installing playwright chromium: %w", err)
		}
		return "", nil

	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEngine, kind)
	}
}

// managedBrowser describes rod's own Chromium under ~/.cache/rod/browser,
// bound to ctx for the download.
func managedBrowser(ctx context.Context) *launcher.Browser {
	b := launcher.NewBrowser()
	b.Context = ctx
	return b
}
