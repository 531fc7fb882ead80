package outline

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/docpeak/outline/cluster"
	"github.com/docpeak/outline/filter"
	"github.com/docpeak/outline/model"
	"github.com/docpeak/outline/score"
	"github.com/docpeak/outline/script"
	"github.com/docpeak/outline/title"
)

// Stats holds per-run pipeline statistics.
type Stats struct {
	// PagesProcessed is the number of pages spans were collected from
	PagesProcessed int `json:"pages_processed"`

	// SpansCollected is the number of text spans fed into the pipeline
	SpansCollected int `json:"spans_collected"`

	// HeadingsFound is the number of entries in the final outline
	HeadingsFound int `json:"headings_found"`

	// Language is the detected (or overridden) script profile
	Language script.Profile `json:"-"`

	// LanguageName is Language rendered for serialization
	LanguageName string `json:"language"`

	// BodyFontSize is the body-text size baseline in points
	BodyFontSize float64 `json:"body_font_size"`

	// Threshold is the heading acceptance threshold that was applied
	Threshold float64 `json:"threshold"`

	// Duration is the pipeline wall-clock time
	Duration time.Duration `json:"duration_ns"`
}

// Result pairs the extracted outline with the run's statistics.
type Result struct {
	Outline model.Outline `json:"outline"`
	Stats   Stats         `json:"stats"`
}

// runPipeline drives the classification stages over a collected document.
// It never fails: anomalous input degrades to an empty outline plus
// warnings.
func runPipeline(doc *model.Document, opts ExtractOptions) (*Result, []Warning) {
	start := time.Now()
	var warnings []Warning

	logger := opts.logger
	if logger == nil {
		logger = slog.Default()
	}

	profile := script.DetectDocument(doc)
	if opts.profileSet {
		profile = opts.profile
	}

	titleConfig := title.DefaultConfig()
	if opts.title != nil {
		titleConfig = *opts.title
	}
	if opts.titlePages > 0 {
		titleConfig.Pages = opts.titlePages
	}
	docTitle := title.NewExtractorWithConfig(titleConfig).Extract(doc, profile)

	scorer := score.NewScorer()
	if opts.score != nil {
		scorer = score.NewScorerWithConfig(*opts.score)
	}
	scored := scorer.Score(doc, profile)

	clusterer := cluster.NewClusterer()
	if opts.cluster != nil {
		clusterer = cluster.NewClustererWithConfig(*opts.cluster)
	}
	clusters := clusterer.Assign(scored.Retained)

	headingFilter := filter.NewFilter()
	if opts.filter != nil {
		headingFilter = filter.NewFilterWithConfig(*opts.filter)
	}
	kept := headingFilter.Apply(clusters.Assignments, profile, docTitle)

	if doc == nil || len(doc.Spans) == 0 {
		warnings = append(warnings, Warning{
			Stage:   "collect",
			Message: "no text spans collected",
		})
	} else if len(scored.Retained) > 0 && len(kept) == 0 {
		warnings = append(warnings, Warning{
			Stage:   "filter",
			Message: "all heading candidates were filtered out",
		})
	}

	result := &Result{
		Outline: model.Outline{
			Title:   docTitle,
			Entries: assemble(kept),
		},
		Stats: Stats{
			PagesProcessed: pagesProcessed(doc, opts.maxPages),
			SpansCollected: doc.SpanCount(),
			HeadingsFound:  len(kept),
			Language:       profile,
			LanguageName:   profile.String(),
			BodyFontSize:   scored.BodyFontSize,
			Threshold:      scored.Threshold,
			Duration:       time.Since(start),
		},
	}

	logger.Debug("outline extracted",
		"pages", result.Stats.PagesProcessed,
		"spans", result.Stats.SpansCollected,
		"headings", result.Stats.HeadingsFound,
		"language", result.Stats.LanguageName,
		"duration", result.Stats.Duration)

	return result, warnings
}

// assemble orders the kept headings into the final entry list: page
// ascending, then top-to-bottom position within the page, then original
// document order. Heading text carries a single trailing space, the output
// convention downstream formatters rely on.
func assemble(kept []cluster.Assignment) []model.HeadingEntry {
	ordered := append([]cluster.Assignment(nil), kept...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Span, ordered[j].Span
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		// Y up: higher Top comes first on the page.
		if a.BBox.Top() != b.BBox.Top() {
			return a.BBox.Top() > b.BBox.Top()
		}
		return a.Index < b.Index
	})

	entries := make([]model.HeadingEntry, 0, len(ordered))
	for _, a := range ordered {
		text := a.Span.Text
		if !strings.HasSuffix(text, " ") {
			text += " "
		}
		entries = append(entries, model.HeadingEntry{
			Level: a.Level,
			Text:  text,
			Page:  a.Span.Page,
		})
	}
	return entries
}

// pagesProcessed reports how many pages the collector actually walked.
func pagesProcessed(doc *model.Document, maxPages int) int {
	if doc == nil {
		return 0
	}
	pages := doc.PageCount
	if maxPages > 0 && pages > maxPages {
		pages = maxPages
	}
	return pages
}
