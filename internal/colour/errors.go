package colour

import "errors"

var (
	// ErrInvalidInput is returned when the pixel sample source is empty or
	// the sample cap is not positive.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidK is returned when the requested cluster count is zero or
	// exceeds the number of available samples.
	ErrInvalidK = errors.New("invalid cluster count")

	// ErrDegenerateClustering is returned when clustering cannot stabilise:
	// the samples contain fewer distinct colours than requested clusters and
	// empty-cluster recovery is exhausted.
	ErrDegenerateClustering = errors.New("degenerate clustering")
)
