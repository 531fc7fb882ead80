package outline

import (
	"log/slog"

	"github.com/docpeak/outline/cluster"
	"github.com/docpeak/outline/filter"
	"github.com/docpeak/outline/score"
	"github.com/docpeak/outline/script"
	"github.com/docpeak/outline/title"
)

// ExtractOptions holds configuration for outline extraction.
type ExtractOptions struct {
	// Collection limits
	maxPages     int
	maxSpanRunes int

	// Title search window (pages from the front of the document)
	titlePages int

	// Script profile override; when unset the profile is detected from
	// the document's text
	profile    script.Profile
	profileSet bool

	// Stage configuration; nil means the stage's defaults
	score   *score.Config
	cluster *cluster.Config
	filter  *filter.Config
	title   *title.Config

	// Diagnostics
	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		maxPages:     50,
		maxSpanRunes: 300,
		titlePages:   1,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		maxPages:     o.maxPages,
		maxSpanRunes: o.maxSpanRunes,
		titlePages:   o.titlePages,
		profile:      o.profile,
		profileSet:   o.profileSet,
		logger:       o.logger,
	}

	// Deep copy stage configs so a chained override cannot mutate the
	// config of a previously returned Extractor.
	if o.score != nil {
		c := *o.score
		newOpts.score = &c
	}
	if o.cluster != nil {
		c := *o.cluster
		newOpts.cluster = &c
	}
	if o.filter != nil {
		c := *o.filter
		newOpts.filter = &c
	}
	if o.title != nil {
		c := *o.title
		newOpts.title = &c
	}

	return newOpts
}
