package html2pdf

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Format identifiers accepted by ResolveFormat.
const (
	FormatSlides          = "slides"
	FormatSlides4x3       = "slides-4x3"
	FormatA4              = "a4"
	FormatA4Landscape     = "a4-landscape"
	FormatLetter          = "letter"
	FormatLetterLandscape = "letter-landscape"
	FormatA3              = "a3"
	FormatTabloid         = "tabloid"
	FormatCustom          = "custom"
)

// DefaultFormat defers page size to the document's own @page rule.
const DefaultFormat = FormatCustom

// FormatProfile describes one named page format.
//
// Fixed formats set both the page size and the viewport. The document-driven
// format ("custom") sets neither: the page size comes from the document's
// @page rule and the engine's default viewport is used.
type FormatProfile struct {
	ID          string
	Description string
	Width       Length
	Height      Length
	Viewport    Viewport
}

// IsDocumentDriven reports whether the page size comes from the document.
func (p FormatProfile) IsDocumentDriven() bool {
	return p.Width.IsZero() && p.Height.IsZero()
}

// HasViewport reports whether the profile imposes a rendering viewport.
func (p FormatProfile) HasViewport() bool {
	return !p.Viewport.IsZero()
}

// PageSize returns a human-readable page size, e.g. "210x297mm".
func (p FormatProfile) PageSize() string {
	if p.IsDocumentDriven() {
		return "@page"
	}
	if p.Width.Unit == p.Height.Unit {
		return fmt.Sprintf("%gx%g%s", p.Width.Value, p.Height.Value, p.Width.Unit)
	}
	return p.Width.String() + "x" + p.Height.String()
}

// Validate rejects partial profiles: page size and viewport are either both
// fully specified or both absent.
func (p FormatProfile) Validate() error {
	pageSet := p.Width.Value > 0 && p.Height.Value > 0
	pageUnset := p.Width.IsZero() && p.Height.IsZero()
	viewportSet := p.Viewport.Width > 0 && p.Viewport.Height > 0

	switch {
	case pageSet && viewportSet:
		return nil
	case pageUnset && p.Viewport.IsZero():
		return nil
	default:
		return fmt.Errorf("%w: %q must set both page size and viewport, or neither", ErrInvalidProfile, p.ID)
	}
}

// formatOrder is the listing order of the catalog.
var formatOrder = []string{
	FormatSlides,
	FormatSlides4x3,
	FormatA4,
	FormatA4Landscape,
	FormatLetter,
	FormatLetterLandscape,
	FormatA3,
	FormatTabloid,
	FormatCustom,
}

// formats is read-only after package initialization.
var formats = map[string]FormatProfile{
	FormatSlides: {
		ID:          FormatSlides,
		Description: "16:9 presentation",
		Width:       Px(1280),
		Height:      Px(720),
		Viewport:    Viewport{Width: 1280, Height: 720},
	},
	FormatSlides4x3: {
		ID:          FormatSlides4x3,
		Description: "4:3 presentation",
		Width:       Px(1024),
		Height:      Px(768),
		Viewport:    Viewport{Width: 1024, Height: 768},
	},
	FormatA4: {
		ID:          FormatA4,
		Description: "A4 portrait",
		Width:       Mm(210),
		Height:      Mm(297),
		Viewport:    Viewport{Width: 794, Height: 1123},
	},
	FormatA4Landscape: {
		ID:          FormatA4Landscape,
		Description: "A4 landscape",
		Width:       Mm(297),
		Height:      Mm(210),
		Viewport:    Viewport{Width: 1123, Height: 794},
	},
	FormatLetter: {
		ID:          FormatLetter,
		Description: "US Letter portrait",
		Width:       Mm(216),
		Height:      Mm(279),
		Viewport:    Viewport{Width: 816, Height: 1056},
	},
	FormatLetterLandscape: {
		ID:          FormatLetterLandscape,
		Description: "US Letter landscape",
		Width:       Mm(279),
		Height:      Mm(216),
		Viewport:    Viewport{Width: 1056, Height: 816},
	},
	FormatA3: {
		ID:          FormatA3,
		Description: "A3 portrait",
		Width:       Mm(297),
		Height:      Mm(420),
		Viewport:    Viewport{Width: 1123, Height: 1587},
	},
	FormatTabloid: {
		ID:          FormatTabloid,
		Description: "Tabloid",
		Width:       Mm(279),
		Height:      Mm(432),
		Viewport:    Viewport{Width: 1056, Height: 1632},
	},
	FormatCustom: {
		ID:          FormatCustom,
		Description: "Use @page size from the HTML/CSS",
	},
}

// ResolveFormat returns the profile for id.
// Matching is exact: no case folding, no prefix matching.
func ResolveFormat(id string) (FormatProfile, error) {
	p, ok := formats[id]
	if !ok {
		return FormatProfile{}, fmt.Errorf("%w: %q (valid: %v)", ErrUnknownFormat, id, formatOrder)
	}
	return p, nil
}

// IsKnownFormat reports whether id names a catalog entry.
func IsKnownFormat(id string) bool {
	_, ok := formats[id]
	return ok
}

// FormatIDs returns all format identifiers in catalog order.
func FormatIDs() []string {
	return slices.Clone(formatOrder)
}

// Formats returns all profiles in catalog order.
func Formats() []FormatProfile {
	return lo.Map(formatOrder, func(id string, _ int) FormatProfile {
		return formats[id]
	})
}
