package colour

import "fmt"

// DefaultSampleCap bounds the number of samples handed to the clustering
// engine. Clustering cost grows linearly with the sample count, and a few
// thousand samples preserve the colour distribution of typical images.
const DefaultSampleCap = 10000

// Reduce bounds a pixel population to at most limit samples.
//
// If the population already fits within the limit it is returned unchanged,
// in order. Larger populations are subsampled with a fixed stride so the
// selection covers the whole input uniformly and is identical on repeated
// runs over the same input. Duplicate colours are retained: multiplicity is
// what drives cluster weights.
func Reduce(pixels []RGB, limit int) ([]RGB, error) {
	if len(pixels) == 0 {
		return nil, fmt.Errorf("%w: no pixel samples", ErrInvalidInput)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: sample cap must be positive, got %d", ErrInvalidInput, limit)
	}

	if len(pixels) <= limit {
		out := make([]RGB, len(pixels))
		copy(out, pixels)
		return out, nil
	}

	// Strided selection: index i*n/limit is strictly increasing for n > limit,
	// so exactly limit samples are taken in their original order.
	n := len(pixels)
	out := make([]RGB, limit)
	for i := range out {
		out[i] = pixels[i*n/limit]
	}
	return out, nil
}
