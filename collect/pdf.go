package collect

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/docpeak/outline/model"
)

// CollectPDF decodes a PDF and assembles its text into spans: contiguous runs
// sharing font name, font size, and baseline. Page numbers are 1-based and
// spans keep content-stream order, which is the document reading order for
// the overwhelming majority of generated PDFs.
func CollectPDF(path string, opts Options) (*model.Document, error) {
	opts.defaults()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	doc := &model.Document{PageCount: reader.NumPage()}
	readMetadata(reader, doc)

	pages := doc.PageCount
	if opts.MaxPages > 0 && pages > opts.MaxPages {
		pages = opts.MaxPages
	}

	for num := 1; num <= pages; num++ {
		spans, width, height := collectPage(reader.Page(num), num, opts)
		if num == 1 {
			doc.PageWidth = width
			doc.PageHeight = height
		}
		doc.Spans = append(doc.Spans, spans...)
	}

	return doc, nil
}

// readMetadata pulls the Info dictionary fields, when present.
func readMetadata(reader *pdflib.Reader, doc *model.Document) {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return
	}
	doc.Metadata = model.Metadata{
		Title:    strings.TrimSpace(info.Key("Title").Text()),
		Author:   strings.TrimSpace(info.Key("Author").Text()),
		Creator:  strings.TrimSpace(info.Key("Creator").Text()),
		Producer: strings.TrimSpace(info.Key("Producer").Text()),
	}
}

// collectPage extracts one page's spans. ledongthuc/pdf panics on some
// malformed content streams and font programs; a damaged page is skipped
// rather than failing the document.
func collectPage(page pdflib.Page, num int, opts Options) (spans []model.TextSpan, width, height float64) {
	defer func() {
		if r := recover(); r != nil {
			opts.Logger.Warn("skipping damaged pdf page", "page", num, "reason", fmt.Sprint(r))
		}
	}()

	if page.V.IsNull() {
		return nil, 0, 0
	}

	mediaBox := page.V.Key("MediaBox")
	if mediaBox.Len() == 4 {
		width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
		height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	}

	content := page.Content()
	spans = mergeRuns(content.Text, num, opts)
	return spans, width, height
}

// mergeRuns glues consecutive text items into spans. The library emits one
// item per show-text operation, frequently a single glyph, so items are
// merged while they share font, size and baseline and sit within a glyph's
// width of each other.
func mergeRuns(items []pdflib.Text, page int, opts Options) []model.TextSpan {
	var spans []model.TextSpan

	var run strings.Builder
	var first, last pdflib.Text
	open := false

	flush := func() {
		if !open {
			return
		}
		open = false
		text := strings.TrimSpace(run.String())
		run.Reset()
		if text == "" || utf8.RuneCountInString(text) > opts.MaxSpanRunes {
			return
		}
		spans = append(spans, model.TextSpan{
			Text:     text,
			FontName: first.Font,
			FontSize: first.FontSize,
			IsBold:   boldFont(first.Font),
			IsItalic: italicFont(first.Font),
			BBox:     model.NewBBox(first.X, first.Y, last.X+last.W-first.X, first.FontSize),
			Page:     page,
		})
	}

	for _, item := range items {
		if !open {
			first, last = item, item
			run.WriteString(item.S)
			open = true
			continue
		}
		if !sameRun(last, item) {
			flush()
			first, last = item, item
			run.WriteString(item.S)
			open = true
			continue
		}
		// Insert the inter-word gap the content stream encodes as
		// positioning rather than a space glyph.
		if item.X-(last.X+last.W) > item.FontSize*0.2 && !strings.HasSuffix(run.String(), " ") {
			run.WriteString(" ")
		}
		run.WriteString(item.S)
		last = item
	}
	flush()

	return spans
}

// sameRun reports whether item continues the run ended by last: same font and
// size, same baseline, and no more than roughly one glyph of horizontal gap.
func sameRun(last, item pdflib.Text) bool {
	if item.Font != last.Font {
		return false
	}
	if math.Abs(item.FontSize-last.FontSize) > 0.1 {
		return false
	}
	if math.Abs(item.Y-last.Y) > 0.5 {
		return false
	}
	gap := item.X - (last.X + last.W)
	return gap <= item.FontSize && gap >= -item.FontSize
}

// boldFont infers boldness from the font name, the only weight signal the
// library surfaces.
func boldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") ||
		strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy") ||
		strings.Contains(lower, "semibold") ||
		strings.Contains(lower, "demibold")
}

// italicFont infers italics from the font name.
func italicFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}
