// Package render formats extracted palettes as text, JSON and SVG swatches.
// It consumes the weighted palette produced by the colour package and has no
// involvement in how the palette was computed.
package render

import (
	"fmt"
	"strings"

	"github.com/jwhitfield/prism/internal/colour"
)

// Text formats the palette as human-readable lines, one colour per line,
// most dominant first.
func Text(p *colour.Palette) string {
	var b strings.Builder
	for _, c := range p.Colours {
		fmt.Fprintf(&b, "RGB: (%d, %d, %d) - %.1f%% of image\n",
			c.Colour.R, c.Colour.G, c.Colour.B, c.Percent())
	}
	return b.String()
}

// Hex formats the palette as hex colour codes, one per line.
func Hex(p *colour.Palette) string {
	var b strings.Builder
	for _, hex := range p.ToHex() {
		b.WriteString(hex)
		b.WriteByte('\n')
	}
	return b.String()
}

// RGBLines formats the palette as rgb(r, g, b) values, one per line.
func RGBLines(p *colour.Palette) string {
	var b strings.Builder
	for _, c := range p.Colours {
		b.WriteString(c.Colour.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Preview formats the palette with ANSI colour blocks for terminal display.
func Preview(p *colour.Palette) string {
	var b strings.Builder
	for _, c := range p.Colours {
		b.WriteString(colour.FormatColourWithPreview(c, 8))
		b.WriteByte('\n')
	}
	return b.String()
}

// JSON formats the palette as indented JSON.
func JSON(p *colour.Palette) (string, error) {
	data, err := p.ToJSON()
	if err != nil {
		return "", fmt.Errorf("failed to convert palette to JSON: %w", err)
	}
	return string(data) + "\n", nil
}
