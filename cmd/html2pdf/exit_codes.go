package main

import (
	"errors"
	"os"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// Exit codes for html2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, format or input
	ExitIO      = 3 // Output could not be written
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInputNotFound) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrNoOutput) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidDuration) ||
		errors.Is(err, html2pdf.ErrUnknownFormat) ||
		errors.Is(err, html2pdf.ErrInvalidEngine) ||
		errors.Is(err, html2pdf.ErrEmptySource) ||
		errors.Is(err, html2pdf.ErrEmptyOutput) ||
		errors.Is(err, html2pdf.ErrSourceNotFound) {
		return ExitUsage
	}

	// I/O errors (exit 3): the PDF was rendered but could not be stored.
	if isWriteFailure(err) {
		return ExitIO
	}

	// Browser errors (exit 4)
	if errors.Is(err, html2pdf.ErrEngineUnavailable) ||
		errors.Is(err, html2pdf.ErrPageLoad) ||
		errors.Is(err, html2pdf.ErrRenderTimeout) ||
		errors.Is(err, html2pdf.ErrExportFailed) ||
		errors.Is(err, ErrInstall) {
		return ExitBrowser
	}

	return ExitGeneral
}

// isWriteFailure reports whether an export failed while storing the file
// rather than while rendering it.
func isWriteFailure(err error) bool {
	return errors.Is(err, html2pdf.ErrExportFailed) &&
		(errors.Is(err, os.ErrPermission) || errors.Is(err, os.ErrNotExist))
}
