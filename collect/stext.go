package collect

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/docpeak/outline/model"
)

// Span-dump JSON schema: a document is a list of pages, each holding blocks
// of lines carrying text, font attributes, and a bounding box. Coordinates
// follow the PDF convention (origin bottom-left, Y up).
type spanDump struct {
	Metadata dumpMetadata `json:"metadata"`
	Pages    []dumpPage   `json:"pages"`
}

type dumpMetadata struct {
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Creator  string `json:"creator,omitempty"`
	Producer string `json:"producer,omitempty"`
}

type dumpPage struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Blocks []dumpBlock `json:"blocks"`
}

type dumpBlock struct {
	Lines []dumpLine `json:"lines"`
}

type dumpLine struct {
	Text string   `json:"text"`
	Font dumpFont `json:"font"`
	BBox dumpBBox `json:"bbox"`
}

type dumpFont struct {
	Name   string  `json:"name"`
	Weight string  `json:"weight,omitempty"`
	Style  string  `json:"style,omitempty"`
	Size   float64 `json:"size"`
}

type dumpBBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// CollectSpanJSON reads a pre-extracted span dump from a JSON file.
func CollectSpanJSON(path string, opts Options) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open span dump: %w", err)
	}
	defer f.Close()
	return ReadSpanJSON(f, opts)
}

// ReadSpanJSON decodes a span dump from a reader and flattens it into a span
// document. Empty lines are skipped; page numbers are assigned from page
// order, 1-based.
func ReadSpanJSON(r io.Reader, opts Options) (*model.Document, error) {
	opts.defaults()

	var dump spanDump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decode span dump: %w", err)
	}

	doc := &model.Document{
		Metadata: model.Metadata{
			Title:    dump.Metadata.Title,
			Author:   dump.Metadata.Author,
			Creator:  dump.Metadata.Creator,
			Producer: dump.Metadata.Producer,
		},
		PageCount: len(dump.Pages),
	}

	pages := len(dump.Pages)
	if opts.MaxPages > 0 && pages > opts.MaxPages {
		pages = opts.MaxPages
	}

	for i := 0; i < pages; i++ {
		page := dump.Pages[i]
		if i == 0 {
			doc.PageWidth = page.Width
			doc.PageHeight = page.Height
		}
		for _, block := range page.Blocks {
			for _, line := range block.Lines {
				text := strings.TrimSpace(line.Text)
				if text == "" || utf8.RuneCountInString(text) > opts.MaxSpanRunes {
					continue
				}
				doc.Spans = append(doc.Spans, model.TextSpan{
					Text:     text,
					FontName: line.Font.Name,
					FontSize: line.Font.Size,
					IsBold:   strings.EqualFold(line.Font.Weight, "bold") || boldFont(line.Font.Name),
					IsItalic: strings.EqualFold(line.Font.Style, "italic") || italicFont(line.Font.Name),
					BBox:     model.NewBBox(line.BBox.X, line.BBox.Y, line.BBox.W, line.BBox.H),
					Page:     i + 1,
				})
			}
		}
	}

	return doc, nil
}
