// Package collect turns source files into the pipeline's span documents. It
// is the concrete span collector the classification pipeline treats as an
// external collaborator: PDFs are decoded with ledongthuc/pdf, and
// pre-extracted span dumps are read from JSON.
package collect

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/docpeak/outline/format"
	"github.com/docpeak/outline/model"
)

// Options holds the collector's intake limits.
type Options struct {
	// MaxPages caps the number of pages analyzed. 0 means all pages.
	// Default: 50
	MaxPages int

	// MaxSpanRunes drops spans longer than this during collection; such
	// runs are body paragraphs glued together by the source document and
	// never headings. Default: 300
	MaxSpanRunes int

	// Logger receives per-page collection diagnostics. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the default collection options.
func DefaultOptions() Options {
	return Options{
		MaxPages:     50,
		MaxSpanRunes: 300,
	}
}

func (o *Options) defaults() {
	if o.MaxPages < 0 {
		o.MaxPages = 0
	}
	if o.MaxSpanRunes <= 0 {
		o.MaxSpanRunes = DefaultOptions().MaxSpanRunes
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Collect reads the file at path and returns its span document, sniffing the
// input format from the file's leading bytes with an extension fallback.
func Collect(path string, opts Options) (*model.Document, error) {
	opts.defaults()

	f := sniff(path)
	switch f {
	case format.PDF:
		return CollectPDF(path, opts)
	case format.SpanJSON:
		return CollectSpanJSON(path, opts)
	default:
		return nil, fmt.Errorf("unsupported input format for %q", path)
	}
}

// sniff determines the input format from magic bytes, falling back to the
// filename extension when the file cannot be read.
func sniff(path string) format.Format {
	head := make([]byte, 16)
	file, err := os.Open(path)
	if err == nil {
		n, _ := file.Read(head)
		file.Close()
		if f := format.DetectFromMagic(head[:n]); f != format.Unknown {
			return f
		}
	}
	return format.Detect(path)
}
