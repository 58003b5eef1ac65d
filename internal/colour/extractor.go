package colour

import (
	"context"
	"fmt"
	"image"
	"sort"

	"github.com/hashicorp/go-hclog"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract extracts a weighted colour palette from an image.
	Extract(ctx context.Context, img image.Image) (*Palette, error)
}

// Config holds configuration for colour extraction.
type Config struct {
	// Colours is the number of colours to extract.
	Colours int

	// Seed drives clustering initialisation. Zero selects DefaultSeed.
	Seed uint64

	// MaxIterations bounds the clustering loop. Zero selects DefaultMaxIterations.
	MaxIterations int

	// Tolerance is the convergence threshold. Zero selects DefaultTolerance.
	Tolerance float64

	// SampleCap bounds the number of pixels handed to the clustering engine.
	// Zero selects DefaultSampleCap.
	SampleCap int

	// Logger receives extraction diagnostics. Nil discards them.
	Logger hclog.Logger
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		Colours:       6,
		Seed:          DefaultSeed,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		SampleCap:     DefaultSampleCap,
	}
}

// Validate validates the extraction configuration.
func (c Config) Validate() error {
	if c.Colours < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.Colours)
	}
	if c.Colours > 256 {
		return fmt.Errorf("colour count too large: %d (maximum: 256)", c.Colours)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("max iterations cannot be negative, got %d", c.MaxIterations)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative, got %g", c.Tolerance)
	}
	if c.SampleCap < 0 {
		return fmt.Errorf("sample cap cannot be negative, got %d", c.SampleCap)
	}
	return nil
}

// KMeansExtractor implements colour extraction using k-means clustering.
type KMeansExtractor struct {
	cfg    Config
	logger hclog.Logger
}

// NewKMeansExtractor creates a new KMeansExtractor with the given
// configuration. Zero-valued fields take their defaults.
func NewKMeansExtractor(cfg Config) (*KMeansExtractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extractor configuration: %w", err)
	}
	if cfg.SampleCap == 0 {
		cfg.SampleCap = DefaultSampleCap
	}
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &KMeansExtractor{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Extract extracts the dominant colours from an image along with the
// fraction of the image each colour covers.
//
// Images with no more distinct colours than requested skip clustering: the
// distinct colours themselves are returned, weighted by how often they
// occur. This keeps flat and near-flat images from degenerating instead of
// erroring.
func (e *KMeansExtractor) Extract(ctx context.Context, img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", ErrInvalidInput)
	}

	pixels := imagePixels(img)
	samples, err := Reduce(pixels, e.cfg.SampleCap)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("sampled image", "pixels", len(pixels), "samples", len(samples))

	if palette, ok := distinctPalette(samples, e.cfg.Colours); ok {
		e.logger.Debug("fewer distinct colours than requested, skipping clustering",
			"distinct", palette.Len(), "requested", e.cfg.Colours)
		return palette, nil
	}

	engine := NewEngine(Options{
		K:             e.cfg.Colours,
		Seed:          e.cfg.Seed,
		MaxIterations: e.cfg.MaxIterations,
		Tolerance:     e.cfg.Tolerance,
		Logger:        e.logger,
	})

	result, err := engine.Cluster(ctx, samples)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("clustering complete",
		"clusters", len(result.Colours), "iterations", result.Iterations, "converged", result.Converged)

	return NewPalette(result.Colours), nil
}

// imagePixels flattens an image into a sequence of 8-bit colour samples.
// Pixel adjacency carries no meaning downstream, only the colour values.
func imagePixels(img image.Image) []RGB {
	bounds := img.Bounds()
	pixels := make([]RGB, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixels = append(pixels, ToRGB(img.At(x, y)))
		}
	}
	return pixels
}

// distinctPalette returns the palette of distinct sample colours weighted by
// multiplicity, but only when there are at most limit of them. The second
// return reports whether that was the case.
func distinctPalette(samples []RGB, limit int) (*Palette, bool) {
	counts := make(map[RGB]int)
	order := make([]RGB, 0, limit+1)
	for _, s := range samples {
		if counts[s] == 0 {
			if len(order) == limit {
				return nil, false
			}
			order = append(order, s)
		}
		counts[s]++
	}

	colours := make([]WeightedColour, len(order))
	for i, c := range order {
		colours[i] = WeightedColour{
			Colour: c,
			Weight: float64(counts[c]) / float64(len(samples)),
		}
	}
	// Weight descending; first appearance wins ties, which is deterministic
	// because sample order is.
	sort.SliceStable(colours, func(a, b int) bool {
		return colours[a].Weight > colours[b].Weight
	})

	return NewPalette(colours), true
}
