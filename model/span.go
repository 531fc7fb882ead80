package model

// TextSpan represents a contiguous run of text sharing font attributes, as
// emitted by a span collector. Spans are read-only input to the pipeline and
// are never mutated.
type TextSpan struct {
	// Text is the span's text content
	Text string

	// FontName is the raw font name from the source document (may be empty)
	FontName string

	// FontSize is the rendered font size in points (always positive)
	FontSize float64

	// IsBold indicates a bold typeface
	IsBold bool

	// IsItalic indicates an italic or oblique typeface
	IsItalic bool

	// BBox is the span's bounding box on its page
	BBox BBox

	// Page is the 1-based page number the span appears on
	Page int
}

// Metadata contains document-level information supplied by the collector.
type Metadata struct {
	Title    string
	Author   string
	Creator  string
	Producer string
}

// Document is the pipeline's input: an ordered sequence of text spans in
// document reading order, plus optional metadata and page geometry.
type Document struct {
	// Spans are all collected text spans in reading order
	Spans []TextSpan

	// Metadata is the document metadata, if any was present
	Metadata Metadata

	// PageCount is the total number of pages in the source document
	PageCount int

	// PageWidth and PageHeight are the dimensions of the first page in
	// points, used for margin-band heuristics. Zero when unknown.
	PageWidth  float64
	PageHeight float64
}

// SpanCount returns the number of collected spans.
func (d *Document) SpanCount() int {
	if d == nil {
		return 0
	}
	return len(d.Spans)
}

// SpansOnPage returns the spans on a specific 1-based page, in document order.
func (d *Document) SpansOnPage(page int) []TextSpan {
	if d == nil {
		return nil
	}
	var result []TextSpan
	for _, s := range d.Spans {
		if s.Page == page {
			result = append(result, s)
		}
	}
	return result
}

// Text returns the concatenated text of all spans separated by newlines.
// It is primarily useful for script detection and debugging.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	var out []byte
	for i, s := range d.Spans {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, s.Text...)
	}
	return string(out)
}
