// Package cluster groups heading-scored spans into up to four font-size bands
// and maps the bands, in descending size order, to heading levels H1 through
// H4. Clustering is a small 1-D k-means with a deterministic sort-and-split
// initialization, so output is reproducible run to run.
package cluster

import (
	"math"
	"sort"

	"github.com/docpeak/outline/model"
	"github.com/docpeak/outline/score"
)

// Assignment pairs a retained span with its assigned heading level.
type Assignment struct {
	Span  score.ScoredSpan
	Level model.HeadingLevel
}

// Clusters is the result of level clustering: the font-size centroids in
// strictly decreasing order (index 0 = H1) and the per-span assignments in
// input order.
type Clusters struct {
	// Centroids are the cluster centers, strictly decreasing, one per
	// assigned level
	Centroids []float64

	// Assignments are the leveled spans, in the same order as the input
	Assignments []Assignment
}

// LevelCount returns the number of distinct levels in use.
func (c *Clusters) LevelCount() int {
	if c == nil {
		return 0
	}
	return len(c.Centroids)
}

// Config holds the clustering parameters.
type Config struct {
	// MaxClusters bounds the number of levels (and therefore clusters)
	// Default: 4 (H1..H4)
	MaxClusters int

	// BandTolerance is the font-size difference below which two sizes
	// belong to the same band. Default: 0.5pt
	BandTolerance float64

	// MaxIterations bounds the k-means refinement loop. Default: 20
	MaxIterations int
}

// DefaultConfig returns the default clustering configuration.
func DefaultConfig() Config {
	return Config{
		MaxClusters:   int(model.MaxLevel),
		BandTolerance: 0.5,
		MaxIterations: 20,
	}
}

// Clusterer assigns heading levels to retained spans.
type Clusterer struct {
	config Config
}

// NewClusterer creates a clusterer with default configuration
func NewClusterer() *Clusterer {
	return NewClustererWithConfig(DefaultConfig())
}

// NewClustererWithConfig creates a clusterer with custom configuration
func NewClustererWithConfig(config Config) *Clusterer {
	def := DefaultConfig()
	if config.MaxClusters <= 0 || config.MaxClusters > def.MaxClusters {
		config.MaxClusters = def.MaxClusters
	}
	if config.BandTolerance <= 0 {
		config.BandTolerance = def.BandTolerance
	}
	if config.MaxIterations <= 0 {
		config.MaxIterations = def.MaxIterations
	}
	return &Clusterer{config: config}
}

// Assign clusters the spans' font sizes and assigns each span a level.
// Documents with a single size band collapse to H1-only. A span's
// pattern-derived nesting depth overrides its size-based level when the depth
// is within H4 and the disagreement is exactly one level; larger
// disagreements keep the size-based assignment.
func (c *Clusterer) Assign(spans []score.ScoredSpan) *Clusters {
	result := &Clusters{}
	if len(spans) == 0 {
		return result
	}

	sizes := make([]float64, len(spans))
	for i, s := range spans {
		sizes[i] = s.FontSize
	}

	k := c.bandCount(sizes)
	centroids := c.kmeans(sizes, k)
	result.Centroids = centroids

	result.Assignments = make([]Assignment, len(spans))
	for i, s := range spans {
		level := model.HeadingLevel(nearestCentroid(centroids, s.FontSize) + 1)

		if depth := s.Depth; depth >= 1 && depth <= int(model.MaxLevel) {
			diff := depth - int(level)
			if diff == 1 || diff == -1 {
				level = model.HeadingLevel(depth)
			}
		}

		result.Assignments[i] = Assignment{Span: s, Level: level}
	}
	return result
}

// bandCount counts distinct font-size bands, capped at MaxClusters. Sizes
// within BandTolerance of each other share a band.
func (c *Clusterer) bandCount(sizes []float64) int {
	sorted := make([]float64, len(sizes))
	copy(sorted, sizes)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	bands := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1]-sorted[i] > c.config.BandTolerance {
			bands++
		}
	}
	if bands > c.config.MaxClusters {
		bands = c.config.MaxClusters
	}
	return bands
}

// kmeans runs 1-D k-means with sort-and-split initialization: sizes are
// sorted descending and split into k contiguous runs at the k-1 largest
// gaps, then refined by Lloyd iterations. No randomness is involved, so the
// same input always yields the same centroids, returned strictly decreasing.
func (c *Clusterer) kmeans(sizes []float64, k int) []float64 {
	sorted := make([]float64, len(sizes))
	copy(sorted, sizes)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	if k <= 1 {
		return []float64{mean(sorted)}
	}

	// Find the k-1 largest gaps between consecutive sorted sizes. Ties
	// break toward the earlier (larger-size) gap for determinism.
	type gap struct {
		pos   int // split before sorted[pos]
		width float64
	}
	gaps := make([]gap, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, gap{pos: i, width: sorted[i-1] - sorted[i]})
	}
	sort.SliceStable(gaps, func(a, b int) bool {
		return gaps[a].width > gaps[b].width
	})

	splits := make([]int, 0, k-1)
	for _, g := range gaps[:k-1] {
		splits = append(splits, g.pos)
	}
	sort.Ints(splits)

	// Initial centroids: mean of each contiguous run.
	centroids := make([]float64, 0, k)
	start := 0
	for _, split := range splits {
		centroids = append(centroids, mean(sorted[start:split]))
		start = split
	}
	centroids = append(centroids, mean(sorted[start:]))

	// Lloyd refinement until stable.
	for iter := 0; iter < c.config.MaxIterations; iter++ {
		sums := make([]float64, k)
		counts := make([]int, k)
		for _, size := range sorted {
			idx := nearestCentroid(centroids, size)
			sums[idx] += size
			counts[idx]++
		}

		changed := false
		for i := 0; i < k; i++ {
			if counts[i] == 0 {
				continue // keep the old centroid for an emptied cluster
			}
			next := sums[i] / float64(counts[i])
			if next != centroids[i] {
				centroids[i] = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(centroids)))
	return dedupeDescending(centroids)
}

// nearestCentroid returns the index of the closest centroid. Ties break
// toward the lower index (the larger centroid).
func nearestCentroid(centroids []float64, size float64) int {
	best := 0
	bestDist := math.Abs(centroids[0] - size)
	for i := 1; i < len(centroids); i++ {
		d := math.Abs(centroids[i] - size)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// dedupeDescending drops duplicate centroids so the H1..H4 mapping is
// strictly decreasing.
func dedupeDescending(centroids []float64) []float64 {
	out := centroids[:0]
	for i, c := range centroids {
		if i == 0 || c < out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
