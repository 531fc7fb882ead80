package outline

import (
	"fmt"
	"log/slog"

	"github.com/docpeak/outline/cluster"
	"github.com/docpeak/outline/collect"
	"github.com/docpeak/outline/filter"
	"github.com/docpeak/outline/model"
	"github.com/docpeak/outline/score"
	"github.com/docpeak/outline/script"
	"github.com/docpeak/outline/title"
)

// Extractor provides a fluent interface for extracting document outlines.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string

	// Collected span document
	doc       *model.Document
	docLoaded bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability: each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:  e.filename,
		doc:       e.doc,
		docLoaded: e.docLoaded,
		options:   e.options.clone(),
		err:       e.err,
		warnings:  append([]Warning(nil), e.warnings...),
	}
}

// ensureDocument collects the span document if not already loaded.
func (e *Extractor) ensureDocument() error {
	if e.err != nil {
		return e.err
	}
	if e.docLoaded {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	doc, err := collect.Collect(e.filename, collect.Options{
		MaxPages:     e.options.maxPages,
		MaxSpanRunes: e.options.maxSpanRunes,
		Logger:       e.options.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to collect spans: %w", err)
	}
	e.doc = doc
	e.docLoaded = true
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// MaxPages caps the number of pages analyzed, counted from the front of the
// document. Zero means all pages. The default is 50.
//
// Example:
//
//	result, _, err := outline.Open("doc.pdf").MaxPages(10).Extract()
func (e *Extractor) MaxPages(n int) *Extractor {
	newExt := e.clone()
	newExt.options.maxPages = n
	return newExt
}

// MaxSpanRunes drops spans longer than n runes during collection. Such runs
// are merged body paragraphs and never headings. The default is 300.
func (e *Extractor) MaxSpanRunes(n int) *Extractor {
	newExt := e.clone()
	newExt.options.maxSpanRunes = n
	return newExt
}

// TitlePages sets how many pages from the front of the document are searched
// for the title. The default is 1.
func (e *Extractor) TitlePages(n int) *Extractor {
	newExt := e.clone()
	newExt.options.titlePages = n
	return newExt
}

// Profile overrides script detection with a fixed profile. Without an
// override the dominant script is detected from the document's text.
//
// Example:
//
//	result, _, err := outline.Open("doc.pdf").Profile(script.CJK).Extract()
func (e *Extractor) Profile(p script.Profile) *Extractor {
	newExt := e.clone()
	newExt.options.profile = p
	newExt.options.profileSet = true
	return newExt
}

// WithLogger sets the logger used for collection and pipeline diagnostics.
// The default is slog.Default().
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// WithScoreConfig replaces the feature scorer's configuration.
func (e *Extractor) WithScoreConfig(config score.Config) *Extractor {
	newExt := e.clone()
	newExt.options.score = &config
	return newExt
}

// WithClusterConfig replaces the level clusterer's configuration.
func (e *Extractor) WithClusterConfig(config cluster.Config) *Extractor {
	newExt := e.clone()
	newExt.options.cluster = &config
	return newExt
}

// WithFilterConfig replaces the candidate filter's configuration.
func (e *Extractor) WithFilterConfig(config filter.Config) *Extractor {
	newExt := e.clone()
	newExt.options.filter = &config
	return newExt
}

// WithTitleConfig replaces the title extractor's configuration. The
// TitlePages option takes precedence over the config's Pages field.
func (e *Extractor) WithTitleConfig(config title.Config) *Extractor {
	newExt := e.clone()
	newExt.options.title = &config
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Extract runs the full pipeline and returns the document outline, any
// warnings, and an error if collection failed. Warnings indicate non-fatal
// anomalies such as damaged pages or documents with no usable text; the
// outline itself is always a valid value, possibly with an empty title and
// no entries.
//
// Example:
//
//	o, warnings, err := outline.Open("document.pdf").Extract()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", outline.FormatWarnings(warnings))
//	}
func (e *Extractor) Extract() (model.Outline, []Warning, error) {
	result, warnings, err := e.ExtractResult()
	if err != nil {
		return model.Outline{Entries: []model.HeadingEntry{}}, warnings, err
	}
	return result.Outline, warnings, nil
}

// ExtractResult runs the full pipeline and returns the outline together
// with per-run statistics.
func (e *Extractor) ExtractResult() (*Result, []Warning, error) {
	if err := e.ensureDocument(); err != nil {
		return nil, e.warnings, err
	}
	result, warnings := runPipeline(e.doc, e.options)
	return result, append(append([]Warning(nil), e.warnings...), warnings...), nil
}

// Title runs title extraction alone and returns the document title, which
// may be empty when no usable title exists.
func (e *Extractor) Title() (string, []Warning, error) {
	if err := e.ensureDocument(); err != nil {
		return "", e.warnings, err
	}
	profile := e.resolveProfile()
	t := title.NewExtractorWithConfig(e.titleConfig()).Extract(e.doc, profile)
	return t, e.warnings, nil
}

// Language detects the document's dominant script profile.
func (e *Extractor) Language() (script.Profile, []Warning, error) {
	if err := e.ensureDocument(); err != nil {
		return script.Latin, e.warnings, err
	}
	return e.resolveProfile(), e.warnings, nil
}

// Document collects and returns the underlying span document.
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if err := e.ensureDocument(); err != nil {
		return nil, e.warnings, err
	}
	return e.doc, e.warnings, nil
}

func (e *Extractor) resolveProfile() script.Profile {
	if e.options.profileSet {
		return e.options.profile
	}
	return script.DetectDocument(e.doc)
}

func (e *Extractor) titleConfig() title.Config {
	config := title.DefaultConfig()
	if e.options.title != nil {
		config = *e.options.title
	}
	if e.options.titlePages > 0 {
		config.Pages = e.options.titlePages
	}
	return config
}
