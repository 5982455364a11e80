package html2pdf

// ExportOptions is the engine-neutral PDF export request.
type ExportOptions struct {
	// Width and Height are nil when the document's @page rule decides.
	Width  *Length
	Height *Length

	// PreferCSSPageSize lets @page override the paper size.
	PreferCSSPageSize bool

	PrintBackground bool

	// Margin applies to all four sides.
	Margin Length
}

// RenderPlan is everything a session needs to render one profile:
// how to size the rendering context and how to export.
type RenderPlan struct {
	Format   string
	Viewport *Viewport // nil means the engine's default viewport
	Export   ExportOptions
}

// PlanFor resolves a format and returns the render plan a conversion with
// that format would use. It performs no I/O.
func PlanFor(format string) (*RenderPlan, error) {
	if format == "" {
		format = DefaultFormat
	}
	profile, err := ResolveFormat(format)
	if err != nil {
		return nil, err
	}
	return newRenderPlan(profile), nil
}

// newRenderPlan builds the plan for a resolved profile.
// Margins are always zero and backgrounds always printed: the output must
// look like the screen rendering, not a paginated document.
func newRenderPlan(p FormatProfile) *RenderPlan {
	plan := &RenderPlan{
		Format: p.ID,
		Export: ExportOptions{
			PrintBackground: true,
			Margin:          Length{},
		},
	}

	if p.HasViewport() {
		vp := p.Viewport
		plan.Viewport = &vp
	}

	if p.IsDocumentDriven() {
		plan.Export.PreferCSSPageSize = true
		return plan
	}

	width, height := p.Width, p.Height
	plan.Export.Width = &width
	plan.Export.Height = &height
	return plan
}
