// Package score computes a heading-likelihood score for every text span from
// font and layout signals: size relative to the body-text baseline, boldness,
// vertical isolation, text length, and structural pattern matches. Spans
// scoring below a distribution-derived acceptance threshold are body text and
// are discarded before level clustering.
package score

import (
	"math"
	"sort"
	"strings"

	"github.com/docpeak/outline/model"
	"github.com/docpeak/outline/pattern"
	"github.com/docpeak/outline/script"
)

// ScoredSpan is a TextSpan annotated with its heading score and any
// structural pattern information found in its text.
type ScoredSpan struct {
	model.TextSpan

	// Score is the heading likelihood in [0,1]
	Score float64

	// Tag is the structural marker found in the text (TagNone if none)
	Tag pattern.Tag

	// Depth is the pattern-derived nesting depth (0 when no hint)
	Depth int

	// Isolated reports whether the span sat alone on its line with
	// above-median whitespace on both sides
	Isolated bool

	// Index is the span's position in the original document order
	Index int
}

// Config holds the scoring weights and threshold shape. All values are fixed
// process-wide; the acceptance threshold itself is derived per document from
// the score distribution, not configured as a literal.
type Config struct {
	// SizeWeight is the maximum contribution of the font-size ratio factor
	// Default: 0.45
	SizeWeight float64

	// SaturationRatio is the size ratio at which the size factor maxes out
	// Default: 1.8 (80% larger than body text)
	SaturationRatio float64

	// BoldWeight is the contribution of a bold typeface
	// Default: 0.20
	BoldWeight float64

	// IsolationWeight is the contribution of vertical isolation
	// Default: 0.20
	IsolationWeight float64

	// LengthPenalty is subtracted from spans longer than MaxHeadingWords
	// Default: 0.20
	LengthPenalty float64

	// MaxHeadingWords is the word count above which the length penalty
	// applies. Default: 20
	MaxHeadingWords int

	// BaselineBucket is the font-size bucket width for the body baseline
	// Default: 0.5pt
	BaselineBucket float64

	// MedianOffset, ThresholdFloor and ThresholdCeiling shape the derived
	// acceptance threshold: clamp(median+offset, floor, ceiling).
	// Defaults: 0.15, 0.40, 0.75
	MedianOffset     float64
	ThresholdFloor   float64
	ThresholdCeiling float64
}

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() Config {
	return Config{
		SizeWeight:       0.45,
		SaturationRatio:  1.8,
		BoldWeight:       0.20,
		IsolationWeight:  0.20,
		LengthPenalty:    0.20,
		MaxHeadingWords:  20,
		BaselineBucket:   0.5,
		MedianOffset:     0.15,
		ThresholdFloor:   0.40,
		ThresholdCeiling: 0.75,
	}
}

// Result holds the scored spans, the retained (above-threshold) subset, and
// the derived document statistics.
type Result struct {
	// Spans are all scored spans in document order
	Spans []ScoredSpan

	// Retained are the spans at or above the acceptance threshold
	Retained []ScoredSpan

	// BodyFontSize is the modal font size used as the size baseline
	BodyFontSize float64

	// Threshold is the acceptance threshold derived from the score
	// distribution
	Threshold float64
}

// Scorer assigns heading scores to spans.
type Scorer struct {
	config  Config
	matcher *pattern.Matcher
}

// NewScorer creates a scorer with default configuration and pattern tables.
func NewScorer() *Scorer {
	return NewScorerWithConfig(DefaultConfig())
}

// NewScorerWithConfig creates a scorer with custom configuration.
func NewScorerWithConfig(config Config) *Scorer {
	def := DefaultConfig()
	if config.SaturationRatio <= 1 {
		config.SaturationRatio = def.SaturationRatio
	}
	if config.BaselineBucket <= 0 {
		config.BaselineBucket = def.BaselineBucket
	}
	if config.MaxHeadingWords <= 0 {
		config.MaxHeadingWords = def.MaxHeadingWords
	}
	if config.ThresholdCeiling <= 0 {
		config.ThresholdCeiling = def.ThresholdCeiling
	}
	return &Scorer{
		config:  config,
		matcher: pattern.NewMatcher(),
	}
}

// BodyFontSize returns the document's body-text baseline: the most frequent
// font size across all spans, bucketed, weighted by text length so long body
// paragraphs dominate short decorations. Empty documents return 12pt.
func (s *Scorer) BodyFontSize(doc *model.Document) float64 {
	if doc == nil || len(doc.Spans) == 0 {
		return 12.0
	}

	bucketSize := s.config.BaselineBucket
	counts := make(map[int]int)
	for _, span := range doc.Spans {
		bucket := int(span.FontSize / bucketSize)
		counts[bucket] += len(span.Text)
	}

	maxCount := 0
	mostCommon := 0
	for bucket, count := range counts {
		if count > maxCount || (count == maxCount && bucket < mostCommon) {
			maxCount = count
			mostCommon = bucket
		}
	}

	baseline := float64(mostCommon) * bucketSize
	if baseline <= 0 {
		return 12.0
	}
	return baseline
}

// Score scores every span in the document against the active script profile
// and partitions out the retained heading candidates. It never fails: an
// empty document yields an empty result.
func (s *Scorer) Score(doc *model.Document, profile script.Profile) *Result {
	result := &Result{}
	if doc == nil || len(doc.Spans) == 0 {
		result.BodyFontSize = 12.0
		result.Threshold = s.config.ThresholdFloor
		return result
	}

	body := s.BodyFontSize(doc)
	isolated := s.computeIsolation(doc.Spans)

	result.Spans = make([]ScoredSpan, 0, len(doc.Spans))
	for i, span := range doc.Spans {
		scored := ScoredSpan{
			TextSpan: span,
			Isolated: isolated[i],
			Index:    i,
		}
		if m, ok := s.matcher.Match(span.Text, profile); ok {
			scored.Tag = m.Tag
			scored.Depth = m.Depth
			scored.Score = s.scoreSpan(span, body, isolated[i], m.Boost)
		} else {
			scored.Score = s.scoreSpan(span, body, isolated[i], 0)
		}
		result.Spans = append(result.Spans, scored)
	}

	result.BodyFontSize = body
	result.Threshold = s.deriveThreshold(result.Spans)

	for _, scored := range result.Spans {
		if scored.Score >= result.Threshold {
			result.Retained = append(result.Retained, scored)
		}
	}
	return result
}

// scoreSpan combines the weighted factors for one span and clamps to [0,1].
func (s *Scorer) scoreSpan(span model.TextSpan, body float64, isolated bool, patternBoost float64) float64 {
	score := 0.0

	// Relative size: monotonic in the ratio, zero at body size, saturating
	// at the configured ratio.
	if body > 0 && span.FontSize > body {
		ratio := span.FontSize / body
		factor := (ratio - 1) / (s.config.SaturationRatio - 1)
		if factor > 1 {
			factor = 1
		}
		score += factor * s.config.SizeWeight
	}

	if span.IsBold {
		score += s.config.BoldWeight
	}

	if isolated {
		score += s.config.IsolationWeight
	}

	if len(strings.Fields(span.Text)) > s.config.MaxHeadingWords {
		score -= s.config.LengthPenalty
	}

	score += patternBoost

	return math.Max(0, math.Min(1, score))
}

// deriveThreshold computes the acceptance threshold from the shape of the
// score distribution: the median score plus a fixed offset, clamped. Body
// text dominates the median, so the threshold tracks each document's own
// noise floor instead of a hardcoded cutoff.
func (s *Scorer) deriveThreshold(spans []ScoredSpan) float64 {
	if len(spans) == 0 {
		return s.config.ThresholdFloor
	}

	scores := make([]float64, len(spans))
	for i, sp := range spans {
		scores[i] = sp.Score
	}
	sort.Float64s(scores)

	median := scores[len(scores)/2]
	if len(scores)%2 == 0 {
		median = (scores[len(scores)/2-1] + scores[len(scores)/2]) / 2
	}

	threshold := median + s.config.MedianOffset
	if threshold < s.config.ThresholdFloor {
		threshold = s.config.ThresholdFloor
	}
	if threshold > s.config.ThresholdCeiling {
		threshold = s.config.ThresholdCeiling
	}
	return threshold
}

// computeIsolation determines, for each span, whether it occupies its own
// line with above-median vertical whitespace on both sides. Page edges count
// as whitespace.
func (s *Scorer) computeIsolation(spans []model.TextSpan) []bool {
	isolated := make([]bool, len(spans))

	// Group span indices by page.
	pages := make(map[int][]int)
	for i, span := range spans {
		pages[span.Page] = append(pages[span.Page], i)
	}

	// Gap above/below each span; -1 marks a page edge.
	gapAbove := make([]float64, len(spans))
	gapBelow := make([]float64, len(spans))
	ownLine := make([]bool, len(spans))
	var allGaps []float64

	for _, idxs := range pages {
		// Sort top-to-bottom (descending Top in PDF coordinates).
		sorted := make([]int, len(idxs))
		copy(sorted, idxs)
		sort.SliceStable(sorted, func(a, b int) bool {
			return spans[sorted[a]].BBox.Top() > spans[sorted[b]].BBox.Top()
		})

		for pos, i := range sorted {
			ownLine[i] = true
			gapAbove[i] = -1
			gapBelow[i] = -1

			// Nearest non-same-line neighbor above.
			for p := pos - 1; p >= 0; p-- {
				j := sorted[p]
				if spans[i].BBox.VerticalOverlaps(spans[j].BBox) {
					ownLine[i] = false
					continue
				}
				gapAbove[i] = spans[i].BBox.VerticalGap(spans[j].BBox)
				break
			}
			// Nearest non-same-line neighbor below.
			for p := pos + 1; p < len(sorted); p++ {
				j := sorted[p]
				if spans[i].BBox.VerticalOverlaps(spans[j].BBox) {
					ownLine[i] = false
					continue
				}
				gapBelow[i] = spans[i].BBox.VerticalGap(spans[j].BBox)
				break
			}

			if gapBelow[i] >= 0 {
				allGaps = append(allGaps, gapBelow[i])
			}
		}
	}

	median := medianOf(allGaps)
	for i := range spans {
		above := gapAbove[i] < 0 || gapAbove[i] > median
		below := gapBelow[i] < 0 || gapBelow[i] > median
		isolated[i] = ownLine[i] && above && below
	}
	return isolated
}

func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	if len(sorted)%2 == 0 {
		return (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}
	return sorted[len(sorted)/2]
}
