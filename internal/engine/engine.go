// Package engine orchestrates the match → filter → consolidate → assemble
// merge over the two normalized record lists.
package engine

import (
	"github.com/crimson-sun/whatsnew/internal/engine/assembler"
	"github.com/crimson-sun/whatsnew/internal/engine/consolidator"
	"github.com/crimson-sun/whatsnew/internal/engine/importance"
	"github.com/crimson-sun/whatsnew/internal/engine/matcher"
	"github.com/crimson-sun/whatsnew/internal/model"
)

// Engine runs the merge stages in order. It is pure: no I/O, no shared
// state, identical inputs produce identical documents.
type Engine struct {
	matcher      *matcher.Matcher
	filter       *importance.Filter
	consolidator *consolidator.Consolidator
	assembler    *assembler.Assembler
}

// New creates an Engine with the provided components.
func New(m *matcher.Matcher, f *importance.Filter, c *consolidator.Consolidator, a *assembler.Assembler) *Engine {
	return &Engine{
		matcher:      m,
		filter:       f,
		consolidator: c,
		assembler:    a,
	}
}

// Report collects everything a run surfaces for human review: ambiguous
// matches, filter decisions, records the filter dropped, and records whose
// section key the registry does not know.
type Report struct {
	Warnings    []matcher.Warning
	Decisions   []importance.Decision
	Filtered    []model.FeatureRecord
	Unsectioned []assembler.Unsectioned
}

// Merge deduplicates the release-notes records against the PM list, filters
// and consolidates the survivors, and assembles the sectioned document.
// PM records never pass through the importance filter.
func (e *Engine) Merge(pm, rn []model.FeatureRecord) (model.Document, Report) {
	matched := e.matcher.Match(pm, rn)

	kept, filtered, decisions := e.filter.Apply(matched.Unmatched, matched.PM)

	consolidated := e.consolidator.Consolidate(kept)

	doc, unsectioned := e.assembler.Assemble(matched.PM, consolidated)

	return doc, Report{
		Warnings:    matched.Warnings,
		Decisions:   decisions,
		Filtered:    filtered,
		Unsectioned: unsectioned,
	}
}
