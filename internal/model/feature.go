package model

import (
	"strconv"
	"strings"
)

// Status is the release maturity of a feature.
type Status string

const (
	StatusGA          Status = "GA"
	StatusTechPreview Status = "Tech Preview"
	StatusBeta        Status = "Beta"
)

// Rank orders statuses by maturity: GA > Tech Preview > Beta.
func (s Status) Rank() int {
	switch s {
	case StatusGA:
		return 3
	case StatusTechPreview:
		return 2
	case StatusBeta:
		return 1
	default:
		return 0
	}
}

// Origin records which input list a feature came from. Immutable once set.
type Origin string

const (
	OriginPMHighlighted Origin = "pm_highlighted"
	OriginReleaseNotes  Origin = "release_notes"
)

// LinkKind distinguishes GitHub pull requests and issues from plain doc links.
type LinkKind string

const (
	LinkPull  LinkKind = "pull"
	LinkIssue LinkKind = "issue"
	LinkDocs  LinkKind = "docs"
)

// Link is an external reference attached to a feature.
// Identity is (kind, repo, number) when a nonzero number is present,
// otherwise the normalized URL.
type Link struct {
	Kind   LinkKind `json:"kind" yaml:"kind"`
	Repo   string   `json:"repo,omitempty" yaml:"repo,omitempty"`
	Number int      `json:"number,omitempty" yaml:"number,omitempty"`
	URL    string   `json:"url" yaml:"url"`
}

// Identity returns the canonical identity key for link deduplication.
func (l Link) Identity() string {
	if l.Number > 0 {
		return string(l.Kind) + ":" + l.Repo + ":" + strconv.Itoa(l.Number)
	}
	return "url:" + strings.TrimSuffix(strings.ToLower(l.URL), "/")
}

// MediaType distinguishes screenshots from recordings.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaRef points at a downloaded media asset. Identity is the filename.
type MediaRef struct {
	Filename  string    `json:"filename" yaml:"filename"`
	MediaType MediaType `json:"media_type" yaml:"media_type"`
}

// FeatureRecord is the canonical feature unit flowing through the merge
// pipeline. Created once by the normalizer, updated functionally by the
// matcher or consolidator, immutable once assembled into a Document.
type FeatureRecord struct {
	ID             string     `json:"id"`
	Seq            int        `json:"seq"` // input sequence number, stable tie-break
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status,omitempty"`
	ReleaseVersion string     `json:"release_version,omitempty"`
	SectionKey     string     `json:"section_key,omitempty"`
	FeatureTags    []string   `json:"feature_tags,omitempty"`
	Links          []Link     `json:"links,omitempty"`
	Media          []MediaRef `json:"media,omitempty"`
	Origin         Origin     `json:"origin"`
	PMOrder        int        `json:"pm_order,omitempty"` // meaningful only for PM origin
	MergedFrom     []string   `json:"merged_from,omitempty"`
}

// LinkIdentities returns the set of link identity keys on the record.
func (f FeatureRecord) LinkIdentities() map[string]struct{} {
	ids := make(map[string]struct{}, len(f.Links))
	for _, l := range f.Links {
		ids[l.Identity()] = struct{}{}
	}
	return ids
}

// Clone returns a deep copy so stages can update records functionally
// without aliasing the input's slices.
func (f FeatureRecord) Clone() FeatureRecord {
	c := f
	c.FeatureTags = append([]string(nil), f.FeatureTags...)
	c.Links = append([]Link(nil), f.Links...)
	c.Media = append([]MediaRef(nil), f.Media...)
	c.MergedFrom = append([]string(nil), f.MergedFrom...)
	return c
}

// Absorb returns a copy of f with other's links and media folded in and
// other's ID recorded in MergedFrom. Links are unioned by identity, media
// appended when the filename is new. Title and description are untouched:
// the receiving record's prose is authoritative.
func (f FeatureRecord) Absorb(other FeatureRecord) FeatureRecord {
	merged := f.Clone()

	seen := merged.LinkIdentities()
	for _, l := range other.Links {
		if _, ok := seen[l.Identity()]; ok {
			continue
		}
		seen[l.Identity()] = struct{}{}
		merged.Links = append(merged.Links, l)
	}

	have := make(map[string]struct{}, len(merged.Media))
	for _, m := range merged.Media {
		have[m.Filename] = struct{}{}
	}
	for _, m := range other.Media {
		if _, ok := have[m.Filename]; ok {
			continue
		}
		have[m.Filename] = struct{}{}
		merged.Media = append(merged.Media, m)
	}

	merged.MergedFrom = append(merged.MergedFrom, other.ID)
	return merged
}

