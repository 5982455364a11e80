// Package html2pdf converts self-contained HTML documents to vector PDF by
// printing them in a headless Chromium.
//
// # Quick Start
//
//	conv, err := html2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, html2pdf.Request{
//	    Source: "deck.html",
//	    Output: "deck.pdf",
//	    Format: "slides",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Path, result.Pages)
//
// Text stays selectable in the output: the page is printed, not captured.
//
// # Formats
//
// A format is a named page size plus the browser viewport that matches it.
// Fixed formats (slides, a4, letter, ...) size both explicitly. The custom
// format sets neither and lets the document's @page rule choose the paper
// size. FormatIDs lists the catalog; ResolveFormat looks one up.
//
// # Conversion Pipeline
//
// Each Convert call runs these stages on its own browser session:
//
//  1. Resolve the format (unknown ids fail before any browser starts)
//  2. Launch the engine and open a page with the format's viewport
//  3. Navigate, then wait for the network to go quiet and for web fonts
//  4. Inject PrintOverrideCSS (no backdrop blur, exact print colors)
//  5. Print to PDF, check the bytes parse, write the file atomically
//
// The session is closed on every path. Nothing is retried.
//
// # Configuration
//
//	conv, err := html2pdf.NewConverter(
//	    html2pdf.WithTimeout(2 * time.Minute),
//	    html2pdf.WithNetworkIdle(time.Second),
//	    html2pdf.WithEngine("playwright"),
//	)
//
// # Browser Requirements
//
// The rod engine (default) uses a system Chrome, or the Chromium that
// InstallEngine downloads to ~/.cache/rod/browser/. The playwright engine
// needs its driver and Chromium installed the same way. Convert never
// downloads anything: a missing browser fails with ErrEngineUnavailable.
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 (or use
// WithNoSandbox) to disable the Chrome sandbox. Use ROD_BROWSER_BIN or
// WithBrowserBin to specify a custom Chrome binary.
package html2pdf
