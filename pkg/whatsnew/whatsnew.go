package whatsnew

import (
	"fmt"

	"github.com/crimson-sun/whatsnew/internal/engine"
	"github.com/crimson-sun/whatsnew/internal/engine/assembler"
	"github.com/crimson-sun/whatsnew/internal/engine/consolidator"
	"github.com/crimson-sun/whatsnew/internal/engine/importance"
	"github.com/crimson-sun/whatsnew/internal/engine/matcher"
	"github.com/crimson-sun/whatsnew/internal/model"
	"github.com/crimson-sun/whatsnew/internal/normalize"
	"github.com/crimson-sun/whatsnew/internal/section"
)

// Merger merges PM highlighted features with release-notes features.
// Create once with New and reuse; all methods are safe for concurrent use.
type Merger struct {
	engine *engine.Engine
}

// New creates a Merger. Returns an error when the configured section list
// is empty or inconsistent.
func New(opts ...Option) (*Merger, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reg, err := buildRegistry(o.sections)
	if err != nil {
		return nil, fmt.Errorf("whatsnew: %w", err)
	}
	asm, err := assembler.New(reg)
	if err != nil {
		return nil, fmt.Errorf("whatsnew: %w", err)
	}

	eng := engine.New(
		matcher.New(matcher.Config{TitleThreshold: o.matchThreshold}),
		importance.New(importance.DefaultRules(o.incrementThreshold)),
		consolidator.New(consolidator.Config{
			Clusters:       consolidator.DefaultClusters(),
			TitleThreshold: o.consolidateThreshold,
		}),
		asm,
	)
	return &Merger{engine: eng}, nil
}

// Merge deduplicates the release-notes features against the PM list and
// returns the assembled document. Input records without a title are
// skipped; everything else surfaces in the document or its warnings.
func (m *Merger) Merge(pm, release []Feature) (Document, error) {
	pmRecs, _ := normalize.Records(toRaw(pm), model.OriginPMHighlighted)
	rnRecs, _ := normalize.Records(toRaw(release), model.OriginReleaseNotes)

	doc, report := m.engine.Merge(pmRecs, rnRecs)
	return documentFromModel(doc, report), nil
}

func buildRegistry(sections []Section) (*section.Registry, error) {
	if len(sections) == 0 {
		return section.New(section.DefaultSections())
	}
	list := make([]model.Section, len(sections))
	for i, s := range sections {
		list[i] = model.Section{Key: s.Key, DisplayName: s.Name}
	}
	return section.New(list)
}

func toRaw(features []Feature) []model.RawRecord {
	raws := make([]model.RawRecord, len(features))
	for i, f := range features {
		media := make([]model.RawMedia, len(f.Media))
		for j, m := range f.Media {
			media[j] = model.RawMedia{Filename: m.Filename, MediaType: m.Type}
		}
		raws[i] = model.RawRecord{
			Title:          f.Title,
			Description:    f.Description,
			Status:         f.Status,
			ReleaseVersion: f.Release,
			SectionKey:     f.Section,
			FeatureTags:    f.Tags,
			Links:          f.Links,
			Media:          media,
			PMOrder:        f.Order,
		}
	}
	return raws
}

func documentFromModel(doc model.Document, report engine.Report) Document {
	out := Document{
		Releases: doc.Releases,
		Total:    doc.TotalFeatures,
	}
	for _, g := range doc.Sections {
		group := SectionGroup{Key: g.Section.Key, Name: g.Section.DisplayName}
		for _, f := range g.Features {
			group.Features = append(group.Features, itemFromRecord(f))
		}
		out.Sections = append(out.Sections, group)
	}
	for _, f := range doc.Notable {
		out.Notable = append(out.Notable, itemFromRecord(f))
	}
	for _, w := range report.Warnings {
		out.Warnings = append(out.Warnings, w.Message)
	}
	for _, u := range report.Unsectioned {
		out.Warnings = append(out.Warnings, fmt.Sprintf("unknown section %q on %q", u.SectionKey, u.Title))
	}
	return out
}

func itemFromRecord(f model.FeatureRecord) Item {
	links := make([]Link, len(f.Links))
	for i, l := range f.Links {
		links[i] = Link{Kind: string(l.Kind), Repo: l.Repo, Number: l.Number, URL: l.URL}
	}
	media := make([]Media, len(f.Media))
	for i, m := range f.Media {
		media[i] = Media{Filename: m.Filename, Type: string(m.MediaType)}
	}
	return Item{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Status:      string(f.Status),
		Release:     f.ReleaseVersion,
		Tags:        f.FeatureTags,
		Links:       links,
		Media:       media,
		Highlighted: f.Origin == model.OriginPMHighlighted,
		MergedFrom:  f.MergedFrom,
	}
}
