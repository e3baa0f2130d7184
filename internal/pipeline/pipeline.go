// Package pipeline connects the sources, normalizer, merge engine, and
// outputs into one run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/whatsnew/internal/engine"
	"github.com/crimson-sun/whatsnew/internal/model"
	"github.com/crimson-sun/whatsnew/internal/normalize"
	"github.com/crimson-sun/whatsnew/internal/output"
	"github.com/crimson-sun/whatsnew/internal/section"
	"github.com/crimson-sun/whatsnew/internal/source"
)

// Pipeline loads both record lists, merges them, and writes the document.
type Pipeline struct {
	pmSource source.Source
	rnSource source.Source
	engine   *engine.Engine
	output   output.Output
	hints    []section.Hint
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSectionHints overrides the keyword hints used to place records that
// arrive without a section key.
func WithSectionHints(hints []section.Hint) Option {
	return func(p *Pipeline) {
		p.hints = hints
	}
}

// New creates a Pipeline from the given components.
func New(pm, rn source.Source, eng *engine.Engine, out output.Output, opts ...Option) *Pipeline {
	p := &Pipeline{
		pmSource: pm,
		rnSource: rn,
		engine:   eng,
		output:   out,
		hints:    section.DefaultHints(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Summary is what one run reports back: per-record faults are isolated
// here, never fatal, so the caller can show what was skipped and why.
type Summary struct {
	Document  model.Document
	Report    engine.Report
	PMDropped []normalize.Dropped
	RNDropped []normalize.Dropped
}

// Run executes one merge. Source read failures are configuration faults and
// abort the run; everything per-record is logged and carried in the Summary.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	pmRaw, err := p.pmSource.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("pipeline: load pm features: %w", err)
	}
	rnRaw, err := p.rnSource.Load(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("pipeline: load release features: %w", err)
	}

	pm, pmDropped := normalize.RecordsHinted(pmRaw, model.OriginPMHighlighted, p.hints)
	rn, rnDropped := normalize.RecordsHinted(rnRaw, model.OriginReleaseNotes, p.hints)
	for _, d := range pmDropped {
		slog.Warn("pm record dropped", "index", d.Index, "reason", d.Reason)
	}
	for _, d := range rnDropped {
		slog.Warn("release record dropped", "index", d.Index, "reason", d.Reason)
	}

	doc, report := p.engine.Merge(pm, rn)
	for _, w := range report.Warnings {
		slog.Warn("match needs review", "kind", w.Kind, "record", w.RecordID, "detail", w.Message)
	}
	for _, u := range report.Unsectioned {
		slog.Warn("record has no known section", "record", u.RecordID, "title", u.Title, "section", u.SectionKey)
	}
	slog.Info("merge complete",
		"pm", len(pm), "release", len(rn),
		"total", doc.TotalFeatures, "filtered", len(report.Filtered))

	if err := p.output.Write(ctx, doc); err != nil {
		return Summary{}, fmt.Errorf("pipeline: write output: %w", err)
	}

	return Summary{
		Document:  doc,
		Report:    report,
		PMDropped: pmDropped,
		RNDropped: rnDropped,
	}, nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
