// Package title isolates the document title, preferring embedded metadata and
// falling back to the highest-salience span run on the first page(s).
package title

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docpeak/outline/model"
	"github.com/docpeak/outline/script"
)

// Config holds the title extraction parameters.
type Config struct {
	// Pages is the number of leading pages scanned when no metadata title
	// is available. Default: 1
	Pages int

	// HeaderBand and FooterBand are the top/bottom margin heights (in
	// points) excluded from the scan, where running headers, footers and
	// page numbers live. Default: 72 (1 inch)
	HeaderBand float64
	FooterBand float64

	// SizeTolerance groups spans whose sizes differ by less than this into
	// the same "maximal size" set. Default: 0.5pt
	SizeTolerance float64

	// MinRunes is the minimum length of a usable title. Default: 4
	MinRunes int
}

// DefaultConfig returns the default title extraction configuration.
func DefaultConfig() Config {
	return Config{
		Pages:         1,
		HeaderBand:    72,
		FooterBand:    72,
		SizeTolerance: 0.5,
		MinRunes:      4,
	}
}

// placeholderTitles are metadata titles that carry no information.
var placeholderTitles = map[string]bool{
	"untitled":          true,
	"untitled document": true,
	"document":          true,
	"new document":      true,
	"presentation":      true,
}

// filenameEcho matches metadata titles that merely echo a source filename or
// the producing application.
var filenameEcho = regexp.MustCompile(`(?i)(\.docx?|\.pdf|\.pptx?|\.xlsx?|microsoft word|powerpoint)`)

// Extractor isolates document titles.
type Extractor struct {
	config Config
}

// NewExtractor creates a title extractor with default configuration
func NewExtractor() *Extractor {
	return NewExtractorWithConfig(DefaultConfig())
}

// NewExtractorWithConfig creates a title extractor with custom configuration
func NewExtractorWithConfig(config Config) *Extractor {
	def := DefaultConfig()
	if config.Pages <= 0 {
		config.Pages = def.Pages
	}
	if config.SizeTolerance <= 0 {
		config.SizeTolerance = def.SizeTolerance
	}
	if config.MinRunes <= 0 {
		config.MinRunes = def.MinRunes
	}
	return &Extractor{config: config}
}

// Extract returns the document title, or "" when no candidate qualifies.
// Metadata wins when present and non-trivial; otherwise the largest-font span
// run on the leading page(s), outside the header/footer margin bands, is
// concatenated in reading order.
func (e *Extractor) Extract(doc *model.Document, profile script.Profile) string {
	if doc == nil {
		return ""
	}

	if t := e.usableMetadataTitle(doc.Metadata.Title); t != "" {
		return t
	}
	return e.largestSpanRun(doc, profile)
}

// usableMetadataTitle validates a metadata title field, rejecting empties,
// placeholders, and filename echoes.
func (e *Extractor) usableMetadataTitle(raw string) string {
	t := strings.TrimSpace(raw)
	if len([]rune(t)) < e.config.MinRunes {
		return ""
	}
	if placeholderTitles[strings.ToLower(t)] {
		return ""
	}
	if filenameEcho.MatchString(t) {
		return ""
	}
	return t
}

// largestSpanRun finds the maximal-font-size span line on the leading pages
// and concatenates its maximal spans in reading order.
func (e *Extractor) largestSpanRun(doc *model.Document, profile script.Profile) string {
	candidates := e.collectCandidates(doc)
	if len(candidates) == 0 {
		return ""
	}

	maxSize := 0.0
	for _, s := range candidates {
		if s.FontSize > maxSize {
			maxSize = s.FontSize
		}
	}

	// Maximal spans, earliest page first, topmost line first.
	var maximal []model.TextSpan
	for _, s := range candidates {
		if maxSize-s.FontSize < e.config.SizeTolerance {
			maximal = append(maximal, s)
		}
	}
	sort.SliceStable(maximal, func(a, b int) bool {
		if maximal[a].Page != maximal[b].Page {
			return maximal[a].Page < maximal[b].Page
		}
		return maximal[a].BBox.Top() > maximal[b].BBox.Top()
	})

	// The title line is the line of the first maximal span; pull in every
	// maximal span sharing it.
	lead := maximal[0]
	var line []model.TextSpan
	for _, s := range maximal {
		if s.Page == lead.Page && s.BBox.VerticalOverlaps(lead.BBox) {
			line = append(line, s)
		}
	}

	// Reading order along the line. Right-to-left scripts read from the
	// right edge.
	sort.SliceStable(line, func(a, b int) bool {
		if profile.RightToLeft() {
			return line[a].BBox.Right() > line[b].BBox.Right()
		}
		return line[a].BBox.Left() < line[b].BBox.Left()
	})

	parts := make([]string, 0, len(line))
	for _, s := range line {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	joined := strings.Join(parts, " ")
	if len([]rune(joined)) < e.config.MinRunes {
		return ""
	}
	return joined
}

// collectCandidates returns spans on the leading pages outside the margin
// bands. When the page height is unknown it is estimated from the highest
// span so the band exclusion still has a reference edge.
func (e *Extractor) collectCandidates(doc *model.Document) []model.TextSpan {
	pageHeight := doc.PageHeight
	if pageHeight <= 0 {
		for _, s := range doc.Spans {
			if s.Page == 1 && s.BBox.Top() > pageHeight {
				pageHeight = s.BBox.Top()
			}
		}
	}

	var out []model.TextSpan
	for _, s := range doc.Spans {
		if s.Page < 1 || s.Page > e.config.Pages {
			continue
		}
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		if pageHeight > e.config.HeaderBand+e.config.FooterBand {
			if s.BBox.Top() > pageHeight-e.config.HeaderBand {
				continue
			}
			if s.BBox.Bottom() < e.config.FooterBand {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}
