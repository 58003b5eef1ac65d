// Package colour provides dominant-colour extraction from pixel samples
// using k-means clustering.
package colour

import (
	"fmt"
	"image/color"
	"math"
)

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// point represents a position in 3D RGB colour space. Centroid arithmetic
// accumulates in float64 so repeated averaging does not truncate; values are
// rounded back to 8-bit only when a run finalises.
type point struct {
	r, g, b float64
}

// pointFromRGB converts an 8-bit colour to its floating-point position.
func pointFromRGB(rgb RGB) point {
	return point{
		r: float64(rgb.R),
		g: float64(rgb.G),
		b: float64(rgb.B),
	}
}

// distanceSquared returns the squared Euclidean distance between two points.
func (p point) distanceSquared(other point) float64 {
	dr := p.r - other.r
	dg := p.g - other.g
	db := p.b - other.b
	return dr*dr + dg*dg + db*db
}

// distance returns the Euclidean distance between two points.
func (p point) distance(other point) float64 {
	return math.Sqrt(p.distanceSquared(other))
}

// round converts the point back to an 8-bit colour, clamping each channel.
func (p point) round() RGB {
	return RGB{
		R: clampChannel(p.r),
		G: clampChannel(p.g),
		B: clampChannel(p.b),
	}
}

// clampChannel rounds a channel value to the nearest integer within [0, 255].
func clampChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
