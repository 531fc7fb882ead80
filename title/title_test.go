package title

import (
	"testing"

	"github.com/docpeak/outline/model"
	"github.com/docpeak/outline/script"
)

func span(text string, size float64, page int, x, top float64) model.TextSpan {
	return model.TextSpan{
		Text:     text,
		FontSize: size,
		BBox:     model.NewBBox(x, top-size, float64(len(text))*size*0.5, size),
		Page:     page,
	}
}

func TestExtractPrefersMetadata(t *testing.T) {
	e := NewExtractor()

	doc := &model.Document{
		Metadata:   model.Metadata{Title: "Understanding Compilers"},
		Spans:      []model.TextSpan{span("SOMETHING HUGE", 40, 1, 72, 500)},
		PageHeight: 792,
	}

	if got := e.Extract(doc, script.Latin); got != "Understanding Compilers" {
		t.Errorf("Extract = %q, want metadata title", got)
	}
}

func TestExtractRejectsTrivialMetadata(t *testing.T) {
	e := NewExtractor()

	tests := []string{
		"",
		"   ",
		"Untitled",
		"untitled document",
		"report.docx",
		"Microsoft Word - final draft.doc",
		"deck.pptx",
		"ab", // below minimum length
	}

	for _, meta := range tests {
		doc := &model.Document{
			Metadata:   model.Metadata{Title: meta},
			Spans:      []model.TextSpan{span("Fallback Title Text", 30, 1, 72, 500)},
			PageHeight: 792,
		}
		if got := e.Extract(doc, script.Latin); got != "Fallback Title Text" {
			t.Errorf("metadata %q should be rejected, got %q", meta, got)
		}
	}
}

func TestExtractLargestSpanRun(t *testing.T) {
	e := NewExtractor()

	doc := &model.Document{
		PageHeight: 792,
		Spans: []model.TextSpan{
			span("Body text before the title.", 11, 1, 72, 300),
			span("Annual", 28, 1, 72, 500),
			span("Report", 28, 1, 200, 500), // same line, to the right
			span("Subtitle here", 16, 1, 72, 450),
		},
	}

	if got := e.Extract(doc, script.Latin); got != "Annual Report" {
		t.Errorf("Extract = %q, want %q", got, "Annual Report")
	}
}

func TestExtractExcludesMarginBands(t *testing.T) {
	e := NewExtractor()

	doc := &model.Document{
		PageHeight: 792,
		Spans: []model.TextSpan{
			span("RUNNING HEADER", 36, 1, 72, 780), // inside the top band
			span("Actual Document Title", 24, 1, 72, 500),
			span("Page 1 of 10", 30, 1, 72, 30), // inside the bottom band
		},
	}

	if got := e.Extract(doc, script.Latin); got != "Actual Document Title" {
		t.Errorf("Extract = %q, want the mid-page span", got)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	e := NewExtractor()

	if got := e.Extract(&model.Document{}, script.Latin); got != "" {
		t.Errorf("Extract(empty) = %q, want \"\"", got)
	}
	if got := e.Extract(nil, script.Latin); got != "" {
		t.Errorf("Extract(nil) = %q, want \"\"", got)
	}
}

func TestExtractIgnoresLaterPages(t *testing.T) {
	e := NewExtractor()

	doc := &model.Document{
		PageHeight: 792,
		Spans: []model.TextSpan{
			span("First Page Heading", 18, 1, 72, 500),
			span("GIANT LATER HEADING", 48, 5, 72, 500),
		},
	}

	if got := e.Extract(doc, script.Latin); got != "First Page Heading" {
		t.Errorf("Extract = %q, want the first-page span", got)
	}
}

func TestExtractTitlePagesWindow(t *testing.T) {
	config := DefaultConfig()
	config.Pages = 3
	e := NewExtractorWithConfig(config)

	doc := &model.Document{
		PageHeight: 792,
		Spans: []model.TextSpan{
			span("Small cover note", 10, 1, 72, 500),
			span("Actual Title on Page Two", 32, 2, 72, 500),
		},
	}

	if got := e.Extract(doc, script.Latin); got != "Actual Title on Page Two" {
		t.Errorf("Extract = %q, want page-2 span inside the window", got)
	}
}

func TestExtractRTLReadingOrder(t *testing.T) {
	e := NewExtractor()

	// Two maximal spans on one line; Arabic reads from the right edge.
	doc := &model.Document{
		PageHeight: 792,
		Spans: []model.TextSpan{
			span("الأول", 24, 1, 72, 500),
			span("الفصل", 24, 1, 200, 500),
		},
	}

	if got := e.Extract(doc, script.Arabic); got != "الفصل الأول" {
		t.Errorf("Extract = %q, want right-to-left concatenation", got)
	}
}

func TestExtractNoQualifyingCandidate(t *testing.T) {
	e := NewExtractor()

	// Only margin-band spans on page 1.
	doc := &model.Document{
		PageHeight: 792,
		Spans: []model.TextSpan{
			span("HEADER", 20, 1, 72, 780),
		},
	}

	if got := e.Extract(doc, script.Latin); got != "" {
		t.Errorf("Extract = %q, want \"\" when nothing qualifies", got)
	}
}
