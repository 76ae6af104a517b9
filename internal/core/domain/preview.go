package domain

// PreviewSource is one candidate image in a responsive preview
type PreviewSource struct {
	Slot             Slot
	MinViewportWidth int
	Token            PreviewToken
}

// ResponsivePreview composes the three slot images into a single
// breakpoint-driven picture. Sources are ordered widest first.
type ResponsivePreview struct {
	Sources  []PreviewSource
	Fallback PreviewSource
}

// Select returns the source displayed at the given viewport width
func (p ResponsivePreview) Select(viewportWidth int) PreviewSource {
	for _, src := range p.Sources {
		if viewportWidth >= src.MinViewportWidth {
			return src
		}
	}
	return p.Fallback
}
