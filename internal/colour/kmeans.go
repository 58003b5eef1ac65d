package colour

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultSeed is the fixed seed used when none is configured, so that
	// repeated runs over the same image produce identical palettes.
	DefaultSeed uint64 = 42

	// DefaultMaxIterations bounds the optimisation loop.
	DefaultMaxIterations = 100

	// DefaultTolerance is the maximum centroid displacement, in 8-bit
	// channel units, below which a run is considered converged.
	DefaultTolerance = 0.5
)

// Options configures a clustering engine.
type Options struct {
	// K is the number of clusters to form. Must satisfy 1 <= K <= sample count.
	K int

	// Seed drives centroid initialisation. Zero selects DefaultSeed.
	Seed uint64

	// MaxIterations bounds the optimisation loop. Zero selects
	// DefaultMaxIterations. Reaching the bound is not an error; the best
	// clustering found so far is returned.
	MaxIterations int

	// Tolerance is the maximum centroid displacement below which the run
	// terminates. Zero selects DefaultTolerance.
	Tolerance float64

	// Logger receives per-run diagnostics. Nil discards them.
	Logger hclog.Logger
}

// Engine partitions colour samples into K clusters using k-means with
// seeded k-means++ initialisation. A single Engine may be reused across
// runs; it holds no per-run state.
type Engine struct {
	k             int
	seed          uint64
	maxIterations int
	tolerance     float64
	logger        hclog.Logger
}

// NewEngine creates a clustering engine, applying defaults for unset options.
func NewEngine(opts Options) *Engine {
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	return &Engine{
		k:             opts.K,
		seed:          opts.Seed,
		maxIterations: opts.MaxIterations,
		tolerance:     opts.Tolerance,
		logger:        opts.Logger,
	}
}

// WeightedColour pairs a finalised cluster colour with the fraction of
// samples it covers.
type WeightedColour struct {
	Colour RGB     `json:"colour"`
	Weight float64 `json:"weight"`
}

// Percent returns the weight as a percentage.
func (wc WeightedColour) Percent() float64 {
	return wc.Weight * 100
}

// Result is the outcome of a clustering run. Colours are sorted by weight
// descending; equal weights keep the order the centroids were seeded in.
type Result struct {
	Colours    []WeightedColour
	Iterations int
	Converged  bool
}

// Cluster partitions samples into K clusters and reports each cluster's mean
// colour and sample coverage. The computation is a pure function of the
// samples and the configured seed: repeated calls with identical input
// produce identical results. Cancellation is honoured at iteration
// boundaries only, so a returned result is always internally consistent.
func (e *Engine) Cluster(ctx context.Context, samples []RGB) (*Result, error) {
	n := len(samples)
	if e.k < 1 || e.k > n {
		return nil, fmt.Errorf("%w: k=%d with %d samples", ErrInvalidK, e.k, n)
	}

	points := make([]point, n)
	for i, s := range samples {
		points[i] = pointFromRGB(s)
	}

	rng := rand.New(rand.NewSource(int64(e.seed))) // #nosec G404 - deterministic seeding is the point
	centroids, err := seedCentroids(points, e.k, rng)
	if err != nil {
		return nil, err
	}

	assignments := make([]int, n)
	iterations := 0
	converged := false

	for iter := 0; iter < e.maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations = iter + 1

		assign(points, centroids, assignments)

		updated, err := e.update(points, assignments, centroids)
		if err != nil {
			return nil, err
		}

		moved := maxDisplacement(centroids, updated)
		centroids = updated

		if moved <= e.tolerance {
			converged = true
			e.logger.Debug("clustering converged", "iterations", iterations, "max_movement", moved)
			break
		}
	}

	if !converged {
		e.logger.Debug("clustering stopped at iteration limit", "iterations", iterations)
	}

	// One final pass so weights reflect the frozen centroids.
	assign(points, centroids, assignments)

	counts := make([]int, e.k)
	for _, a := range assignments {
		counts[a]++
	}

	return &Result{
		Colours:    finalise(centroids, counts, n),
		Iterations: iterations,
		Converged:  converged,
	}, nil
}

// seedCentroids selects k initial centroids using the k-means++ strategy:
// the first centroid is drawn uniformly, each subsequent one with probability
// proportional to its squared distance from the nearest chosen centroid.
func seedCentroids(points []point, k int, rng *rand.Rand) ([]point, error) {
	centroids := make([]point, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	// minDists[i] tracks the squared distance from points[i] to its nearest
	// chosen centroid, updated incrementally as centroids are added.
	minDists := make([]float64, len(points))
	for i, p := range points {
		minDists[i] = p.distanceSquared(centroids[0])
	}

	for len(centroids) < k {
		total := 0.0
		for _, d := range minDists {
			total += d
		}
		if total == 0 {
			// Every remaining sample coincides with a chosen centroid: the
			// input has fewer distinct colours than k.
			return nil, fmt.Errorf("%w: cannot seed %d distinct centroids", ErrDegenerateClustering, k)
		}

		target := rng.Float64() * total
		chosen := -1
		cumulative := 0.0
		for i, d := range minDists {
			cumulative += d
			if cumulative >= target && d > 0 {
				chosen = i
				break
			}
		}
		if chosen < 0 {
			// Floating-point accumulation can leave the target marginally
			// above the cumulative sum; fall back to the last viable sample.
			for i := len(minDists) - 1; i >= 0; i-- {
				if minDists[i] > 0 {
					chosen = i
					break
				}
			}
		}

		next := points[chosen]
		centroids = append(centroids, next)
		for i, p := range points {
			if d := p.distanceSquared(next); d < minDists[i] {
				minDists[i] = d
			}
		}
	}

	return centroids, nil
}

// assign writes the index of the nearest centroid for every point. The work
// is split across GOMAXPROCS partitions; workers read the shared centroids
// and write only their own slice of assignments, and Wait is the barrier
// before the update step observes the result.
func assign(points []point, centroids []point, assignments []int) {
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(points) + workers - 1) / workers

	g := new(errgroup.Group)
	for start := 0; start < len(points); start += chunk {
		lo, hi := start, min(start+chunk, len(points))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				assignments[i] = nearestCentroid(points[i], centroids)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail
}

// nearestCentroid returns the index of the centroid closest to p. Ties
// resolve to the lower index, keeping assignment deterministic.
func nearestCentroid(p point, centroids []point) int {
	nearest := 0
	minDist := math.MaxFloat64
	for i, c := range centroids {
		if d := p.distanceSquared(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// update recomputes each centroid as the mean of its assigned points and
// recovers empty clusters by re-seeding them with the sample farthest from
// its own centroid. Recovery is capped at k attempts per iteration; if
// clusters still collapse the run is degenerate.
func (e *Engine) update(points []point, assignments []int, centroids []point) ([]point, error) {
	k := len(centroids)
	sums := make([]point, k)
	counts := make([]int, k)
	for i, p := range points {
		c := assignments[i]
		sums[c].r += p.r
		sums[c].g += p.g
		sums[c].b += p.b
		counts[c]++
	}

	updated := make([]point, k)
	for j := range updated {
		if counts[j] > 0 {
			updated[j] = point{
				r: sums[j].r / float64(counts[j]),
				g: sums[j].g / float64(counts[j]),
				b: sums[j].b / float64(counts[j]),
			}
		}
	}

	attempts := 0
	reseeded := make(map[int]bool)
	for {
		empty := -1
		for j := 0; j < k; j++ {
			if counts[j] == 0 {
				empty = j
				break
			}
		}
		if empty < 0 {
			break
		}
		if attempts >= k {
			return nil, fmt.Errorf("%w: empty-cluster recovery exhausted after %d attempts", ErrDegenerateClustering, attempts)
		}
		attempts++
		e.logger.Debug("recovering empty cluster", "cluster", empty, "attempt", attempts)

		far, dist := farthestSample(points, assignments, updated, counts, reseeded)
		if far < 0 || dist == 0 {
			return nil, fmt.Errorf("%w: no displaced sample available to re-seed cluster %d", ErrDegenerateClustering, empty)
		}
		reseeded[far] = true

		// Move the sample out of its current cluster and into the empty one.
		src := assignments[far]
		p := points[far]
		sums[src].r -= p.r
		sums[src].g -= p.g
		sums[src].b -= p.b
		counts[src]--
		if counts[src] > 0 {
			updated[src] = point{
				r: sums[src].r / float64(counts[src]),
				g: sums[src].g / float64(counts[src]),
				b: sums[src].b / float64(counts[src]),
			}
		}

		assignments[far] = empty
		sums[empty] = p
		counts[empty] = 1
		updated[empty] = p
	}

	return updated, nil
}

// farthestSample returns the index of the sample with the greatest squared
// distance to its own assigned centroid, along with that distance. Samples
// already used for recovery this iteration are skipped, as are samples that
// are the last member of their cluster.
func farthestSample(points []point, assignments []int, centroids []point, counts []int, reseeded map[int]bool) (int, float64) {
	best := -1
	bestDist := 0.0
	for i, p := range points {
		if reseeded[i] || counts[assignments[i]] <= 1 {
			continue
		}
		if d := p.distanceSquared(centroids[assignments[i]]); d > bestDist {
			bestDist = d
			best = i
		}
	}
	return best, bestDist
}

// maxDisplacement returns the largest Euclidean distance any centroid moved
// between two iterations.
func maxDisplacement(before, after []point) float64 {
	moved := 0.0
	for i := range before {
		if d := before[i].distance(after[i]); d > moved {
			moved = d
		}
	}
	return moved
}

// finalise rounds centroids to 8-bit colours, computes coverage weights and
// sorts by weight descending. Equal weights keep seed order so output is
// deterministic for a given seed.
func finalise(centroids []point, counts []int, total int) []WeightedColour {
	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	weights := make([]float64, len(centroids))
	for i, c := range counts {
		weights[i] = float64(c) / float64(total)
	}

	sort.SliceStable(order, func(a, b int) bool {
		if weights[order[a]] != weights[order[b]] {
			return weights[order[a]] > weights[order[b]]
		}
		return order[a] < order[b]
	})

	colours := make([]WeightedColour, len(centroids))
	for i, idx := range order {
		colours[i] = WeightedColour{
			Colour: centroids[idx].round(),
			Weight: weights[idx],
		}
	}
	return colours
}
