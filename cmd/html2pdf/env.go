package main

import (
	"context"
	"io"
	"os"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
)

// Converter is the slice of html2pdf.Converter the CLI depends on.
type Converter interface {
	Convert(ctx context.Context, req html2pdf.Request) (*html2pdf.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*html2pdf.Converter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter func(opts ...html2pdf.Option) (Converter, error)
	Install      func(ctx context.Context, kind html2pdf.EngineKind) (string, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewConverter: func(opts ...html2pdf.Option) (Converter, error) {
			return html2pdf.NewConverter(opts...)
		},
		Install: html2pdf.InstallEngine,
	}
}
