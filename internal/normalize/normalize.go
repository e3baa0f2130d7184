// Package normalize canonicalizes raw parsed records, from the PM markdown
// parser, the release-notes extractor, or the selection UI, into the one
// in-memory feature shape the merge engine operates on.
package normalize

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/crimson-sun/whatsnew/internal/engine/linkid"
	"github.com/crimson-sun/whatsnew/internal/model"
	"github.com/crimson-sun/whatsnew/internal/section"
)

// recordNamespace seeds deterministic record IDs so repeated runs over the
// same inputs produce identical output documents.
var recordNamespace = uuid.MustParse("9b2f8c41-3d6a-4e19-b5c7-2a8e0f6d4c11")

// Dropped reports a raw record rejected during normalization. Per-record
// faults never abort the batch; the run report lists every one.
type Dropped struct {
	Index  int // position in the raw input
	Reason string
}

// videoExts are filename extensions inferred as video media.
var videoExts = map[string]struct{}{
	".mp4": {}, ".webm": {}, ".mov": {}, ".gif": {},
}

// Records converts raw records of one origin into canonical FeatureRecords.
// Sequence numbers count per origin from zero; every tie-break downstream
// compares records within one origin. Records without a title are dropped
// and reported, not fatal.
func Records(raws []model.RawRecord, origin model.Origin) ([]model.FeatureRecord, []Dropped) {
	return RecordsHinted(raws, origin, nil)
}

// RecordsHinted is Records with keyword section inference: a record that
// arrives without a section key is assigned the first hint matching its
// title or description. Records with an explicit section key are never
// reassigned.
func RecordsHinted(raws []model.RawRecord, origin model.Origin, hints []section.Hint) ([]model.FeatureRecord, []Dropped) {
	var out []model.FeatureRecord
	var dropped []Dropped

	seq := 0
	for i, raw := range raws {
		if strings.TrimSpace(raw.Title) == "" {
			dropped = append(dropped, Dropped{Index: i, Reason: "missing required title"})
			continue
		}

		rec := model.FeatureRecord{
			Seq:            seq,
			Title:          strings.TrimSpace(raw.Title),
			Description:    strings.TrimSpace(raw.Description),
			Status:         ParseStatus(raw.Status),
			ReleaseVersion: strings.TrimSpace(raw.ReleaseVersion),
			SectionKey:     strings.TrimSpace(raw.SectionKey),
			FeatureTags:    cleanTags(raw.FeatureTags),
			Links:          linkid.ResolveAll(raw.Links),
			Media:          normalizeMedia(raw.Media),
			Origin:         origin,
		}
		if origin == model.OriginPMHighlighted {
			rec.PMOrder = raw.PMOrder
			if rec.PMOrder == 0 {
				rec.PMOrder = seq + 1
			}
		}
		if rec.SectionKey == "" && len(hints) > 0 {
			if key, ok := section.InferKey(rec.Title+" "+rec.Description, hints); ok {
				rec.SectionKey = key
			}
		}
		if len(rec.FeatureTags) == 0 {
			if tag, ok := section.DefaultFeatureTag(rec.SectionKey); ok {
				rec.FeatureTags = []string{tag}
			}
		}
		rec.ID = recordID(origin, seq, rec.Title)

		out = append(out, rec)
		seq++
	}
	return out, dropped
}

// ParseStatus maps free-form status strings onto the maturity enum:
// a "GA" prefix means GA, anything mentioning beta is Beta, the rest is
// Tech Preview (the sources label everything not yet GA that way).
func ParseStatus(s string) model.Status {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return model.StatusGA
	}
	upper := strings.ToUpper(trimmed)
	switch {
	case strings.HasPrefix(upper, "GA"):
		return model.StatusGA
	case strings.Contains(upper, "BETA"):
		return model.StatusBeta
	default:
		return model.StatusTechPreview
	}
}

func cleanTags(tags []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func normalizeMedia(raws []model.RawMedia) []model.MediaRef {
	var out []model.MediaRef
	seen := map[string]struct{}{}
	for _, m := range raws {
		name := strings.TrimSpace(m.Filename)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, model.MediaRef{Filename: name, MediaType: mediaType(m)})
	}
	return out
}

// mediaType honors an explicit type and otherwise infers from the filename.
func mediaType(m model.RawMedia) model.MediaType {
	switch strings.ToLower(strings.TrimSpace(m.MediaType)) {
	case "video":
		return model.MediaVideo
	case "image":
		return model.MediaImage
	}
	ext := strings.ToLower(filepath.Ext(m.Filename))
	if _, ok := videoExts[ext]; ok {
		return model.MediaVideo
	}
	return model.MediaImage
}

func recordID(origin model.Origin, seq int, title string) string {
	key := string(origin) + "|" + strconv.Itoa(seq) + "|" + title
	return uuid.NewSHA1(recordNamespace, []byte(key)).String()
}
