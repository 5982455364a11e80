package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// browserFlags select the engine and how it launches.
type browserFlags struct {
	engine    string
	bin       string
	noSandbox bool
}

// timingFlags hold the pipeline's time budgets as duration strings.
type timingFlags struct {
	timeout          string
	readinessTimeout string
	networkIdle      string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	format  string
	output  string
	timing  timingFlags
	browser browserFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show stage timings")
}

// addTimingFlags adds timeout flags to a FlagSet.
func addTimingFlags(fs *flag.FlagSet, f *timingFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "overall conversion timeout (e.g. 30s, 2m)")
	fs.StringVar(&f.readinessTimeout, "readiness-timeout", "", "navigation and readiness timeout")
	fs.StringVar(&f.networkIdle, "network-idle", "", "quiet window before the network counts as idle")
}

// addBrowserFlags adds engine selection flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.engine, "engine", "", "browser engine: rod, playwright")
	fs.StringVar(&f.bin, "browser-bin", "", "Chrome/Chromium binary to launch")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox (containers, CI)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &convertFlags{}

	fs.StringVarP(&f.format, "format", "f", "", "page format id (see 'html2pdf formats')")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")

	addCommonFlags(fs, &f.common)
	addTimingFlags(fs, &f.timing)
	addBrowserFlags(fs, &f.browser)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
