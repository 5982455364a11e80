package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	html2pdf "github.com/alnah/go-html2pdf"
)

// ErrInstall wraps browser download failures.
var ErrInstall = errors.New("browser install failed")

// runInstallCmd downloads the browser for the selected engine.
func runInstallCmd(ctx context.Context, args []string, env *Environment) error {
	fs := flag.NewFlagSet("install", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	engineName := fs.String("engine", "", "engine to install for: rod, playwright")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %v", ErrTooManyArgs, fs.Args())
	}

	name := *engineName
	if name == "" {
		name = loadEnvConfig().Engine
	}
	kind, err := html2pdf.ParseEngine(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Installing Chromium for %s...\n", kind)
	bin, err := env.Install(ctx, kind)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInstall, err)
	}

	if bin != "" {
		fmt.Fprintf(env.Stdout, "Installed: %s\n", bin)
	} else {
		fmt.Fprintf(env.Stdout, "Installed Chromium for %s\n", kind)
	}
	return nil
}
