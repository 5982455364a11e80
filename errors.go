package html2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Request validation errors.
	ErrEmptySource    = errors.New("source cannot be empty")
	ErrEmptyOutput    = errors.New("output path cannot be empty")
	ErrSourceNotFound = errors.New("source file not found")

	// Format catalog errors.
	ErrUnknownFormat  = errors.New("unknown format")
	ErrInvalidProfile = errors.New("invalid format profile")

	// Engine selection errors.
	ErrInvalidEngine = errors.New("invalid engine")

	// Conversion errors.
	ErrEngineUnavailable = errors.New("browser engine unavailable")
	ErrPageLoad          = errors.New("failed to load page")
	ErrRenderTimeout     = errors.New("document not ready before timeout")
	ErrExportFailed      = errors.New("PDF export failed")
)
