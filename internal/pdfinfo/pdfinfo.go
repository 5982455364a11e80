// Package pdfinfo reads basic facts back from an exported PDF.
// It only reads: the document is never modified.
package pdfinfo

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Sentinel errors for PDF inspection.
var (
	ErrNotPDF  = errors.New("not a PDF document")
	ErrNoPages = errors.New("PDF has no pages")
	ErrParse   = errors.New("failed to parse PDF")
)

// magic is the header every PDF file starts with.
var magic = []byte("%PDF-")

func init() {
	// pdfcpu would otherwise create a config directory under the user's
	// config dir on first use.
	api.DisableConfigDir()
}

// Info holds the facts read from a PDF.
type Info struct {
	Pages int

	// Width and Height of the first page, in PostScript points (1/72 in).
	Width  float64
	Height float64
}

// Inspect parses data and returns its page count and first page size.
// A document that does not parse or has no pages is an error.
func Inspect(data []byte) (*Info, error) {
	if !bytes.HasPrefix(data, magic) {
		return nil, ErrNotPDF
	}

	ctx, err := api.ReadContext(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: counting pages: %v", ErrParse, err)
	}

	if ctx.PageCount < 1 {
		return nil, ErrNoPages
	}

	info := &Info{Pages: ctx.PageCount}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("%w: reading page size: %v", ErrParse, err)
	}
	if len(dims) > 0 {
		info.Width = dims[0].Width
		info.Height = dims[0].Height
	}

	return info, nil
}

// PointsToMillimeters converts PDF points to millimeters.
func PointsToMillimeters(pt float64) float64 {
	return pt * 25.4 / 72
}
