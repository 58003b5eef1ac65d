package colour

import (
	"encoding/json"
	"fmt"
)

// Palette represents the weighted colours extracted from an image, ordered
// by coverage descending.
type Palette struct {
	Colours []WeightedColour
}

// NewPalette creates a new Palette with the given weighted colours.
func NewPalette(colours []WeightedColour) *Palette {
	return &Palette{
		Colours: colours,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// ToHex converts the palette colours to hex strings.
// Returns a slice of hex colour codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.Colours))
	for i, c := range p.Colours {
		hexColours[i] = c.Colour.Hex()
	}
	return hexColours
}

// ColourJSON represents a colour in JSON output format.
type ColourJSON struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Percentage float64 `json:"percentage"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count   int          `json:"count"`
	Colours []ColourJSON `json:"colours"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, len(p.Colours))
	for i, c := range p.Colours {
		colours[i] = ColourJSON{
			Hex:        c.Colour.Hex(),
			RGB:        c.Colour,
			Percentage: c.Percent(),
		}
	}

	paletteJSON := PaletteJSON{
		Count:   len(p.Colours),
		Colours: colours,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colours) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Colours))
	for i, c := range p.Colours {
		result += fmt.Sprintf("  %2d: %s (%s) %.1f%%\n", i+1, c.Colour.Hex(), c.Colour.String(), c.Percent())
	}
	return result
}

// Get returns the weighted colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (WeightedColour, error) {
	if index < 0 || index >= len(p.Colours) {
		return WeightedColour{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Colours))
	}
	return p.Colours[index], nil
}

// All returns an iterator over all weighted colours in the palette.
func (p *Palette) All() func(func(int, WeightedColour) bool) {
	return func(yield func(int, WeightedColour) bool) {
		for i, c := range p.Colours {
			if !yield(i, c) {
				return
			}
		}
	}
}
