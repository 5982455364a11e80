package html2pdf

import "strconv"

// Unit is a CSS absolute length unit understood by the PDF export stage.
type Unit string

// Supported length units.
const (
	UnitPixel      Unit = "px"
	UnitMillimeter Unit = "mm"
	UnitInch       Unit = "in"
)

// CSS reference ratios: 1in = 96px = 25.4mm.
const (
	pixelsPerInch      = 96.0
	millimetersPerInch = 25.4
)

// Length is an absolute physical length.
// The zero value means "not specified".
type Length struct {
	Value float64
	Unit  Unit
}

// Px returns a length in CSS pixels.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPixel} }

// Mm returns a length in millimeters.
func Mm(v float64) Length { return Length{Value: v, Unit: UnitMillimeter} }

// In returns a length in inches.
func In(v float64) Length { return Length{Value: v, Unit: UnitInch} }

// IsZero reports whether the length is unset or zero.
func (l Length) IsZero() bool {
	return l.Value == 0
}

// Inches converts the length to inches, the unit Chrome's printToPDF expects.
func (l Length) Inches() float64 {
	switch l.Unit {
	case UnitPixel:
		return l.Value / pixelsPerInch
	case UnitMillimeter:
		return l.Value / millimetersPerInch
	default:
		return l.Value
	}
}

// String returns the CSS form, e.g. "210mm" or "1280px".
func (l Length) String() string {
	unit := l.Unit
	if unit == "" {
		unit = UnitPixel
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + string(unit)
}

// Viewport is the rendering viewport in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// IsZero reports whether no viewport is set.
func (v Viewport) IsZero() bool {
	return v.Width == 0 && v.Height == 0
}
