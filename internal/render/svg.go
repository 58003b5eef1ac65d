package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/jwhitfield/prism/internal/colour"
)

// swatchHeader opens the SVG document. The viewBox fits six 100px swatches
// with room for two label rows beneath.
const swatchHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 600 140">`

// SVG renders the palette as an SVG swatch strip: one 100x100 rectangle per
// colour with the RGB triplet and coverage percentage printed beneath it.
func SVG(p *colour.Palette) string {
	var b strings.Builder
	b.WriteString(swatchHeader)

	for i, c := range p.Colours {
		x := i * 100
		fmt.Fprintf(&b, `
    <rect x="%d" y="0" width="100" height="100" fill="%s"/>
    <text x="%d" y="115" font-family="Arial" font-size="10" fill="black">%d, %d, %d</text>
    <text x="%d" y="130" font-family="Arial" font-size="10" fill="black">%.1f%%</text>`,
			x, c.Colour.String(),
			x+5, c.Colour.R, c.Colour.G, c.Colour.B,
			x+5, c.Percent())
	}

	b.WriteString("\n</svg>")
	return b.String()
}

// WriteSwatch renders the palette as an SVG swatch and writes it to path.
func WriteSwatch(path string, p *colour.Palette) error {
	if path == "" {
		return fmt.Errorf("swatch output path cannot be empty")
	}
	if err := os.WriteFile(path, []byte(SVG(p)), 0o644); err != nil { // #nosec G306 - Swatch files are meant to be shared
		return fmt.Errorf("failed to write swatch file: %w", err)
	}
	return nil
}
