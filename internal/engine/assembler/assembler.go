// Package assembler buckets merged records into registry-ordered sections
// and computes the document's summary metadata. Records become immutable
// once placed here.
package assembler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/crimson-sun/whatsnew/internal/model"
	"github.com/crimson-sun/whatsnew/internal/section"
)

// Unsectioned reports a record that could not be bucketed because its
// section key is not in the registry. Never silently dropped.
type Unsectioned struct {
	RecordID   string
	Title      string
	SectionKey string
}

// Assembler groups final records by section.
type Assembler struct {
	reg *section.Registry
}

// New creates an Assembler. The registry must be non-empty; section.New
// enforces that before anything reaches this package.
func New(reg *section.Registry) (*Assembler, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, fmt.Errorf("assembler: section registry is empty")
	}
	return &Assembler{reg: reg}, nil
}

// Assemble produces the final document from merged PM records and the
// consolidated release-notes records. Sections appear in registry order,
// empty sections omitted. Within a section PM records come first in
// ascending PMOrder, then non-PM records in input order. Notable lists PM
// records that absorbed nothing.
func (a *Assembler) Assemble(pm, rn []model.FeatureRecord) (model.Document, []Unsectioned) {
	buckets := make(map[string][]model.FeatureRecord, a.reg.Len())
	var loose []Unsectioned

	place := func(rec model.FeatureRecord) {
		if _, ok := a.reg.Lookup(rec.SectionKey); !ok {
			loose = append(loose, Unsectioned{RecordID: rec.ID, Title: rec.Title, SectionKey: rec.SectionKey})
			return
		}
		buckets[rec.SectionKey] = append(buckets[rec.SectionKey], rec)
	}
	for _, rec := range pm {
		place(rec)
	}
	for _, rec := range rn {
		place(rec)
	}

	doc := model.Document{}
	versions := map[string]struct{}{}
	for _, sec := range a.reg.Sections() {
		feats := buckets[sec.Key]
		if len(feats) == 0 {
			continue
		}
		sortBucket(feats)
		doc.Sections = append(doc.Sections, model.SectionGroup{Section: sec, Features: feats})
		doc.TotalFeatures += len(feats)
		for _, f := range feats {
			if f.ReleaseVersion != "" {
				versions[f.ReleaseVersion] = struct{}{}
			}
		}
	}

	for _, rec := range pm {
		if len(rec.MergedFrom) == 0 {
			doc.Notable = append(doc.Notable, rec)
		}
	}
	sort.SliceStable(doc.Notable, func(i, j int) bool {
		if doc.Notable[i].PMOrder != doc.Notable[j].PMOrder {
			return doc.Notable[i].PMOrder < doc.Notable[j].PMOrder
		}
		return doc.Notable[i].Seq < doc.Notable[j].Seq
	})

	doc.Releases = sortedVersions(versions)
	return doc, loose
}

// sortBucket applies the in-section ordering invariant: PM records precede
// non-PM, PM records by ascending PMOrder then Seq, non-PM stable on Seq.
func sortBucket(feats []model.FeatureRecord) {
	sort.SliceStable(feats, func(i, j int) bool {
		pi := feats[i].Origin == model.OriginPMHighlighted
		pj := feats[j].Origin == model.OriginPMHighlighted
		if pi != pj {
			return pi
		}
		if pi {
			if feats[i].PMOrder != feats[j].PMOrder {
				return feats[i].PMOrder < feats[j].PMOrder
			}
		}
		return feats[i].Seq < feats[j].Seq
	})
}

// sortedVersions orders dotted versions numerically, non-numeric parts
// lexically.
func sortedVersions(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return versionLess(out[i], out[j]) })
	return out
}

func versionLess(a, b string) bool {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr != nil || berr != nil {
			if as[i] != bs[i] {
				return as[i] < bs[i]
			}
			continue
		}
		if an != bn {
			return an < bn
		}
	}
	return len(as) < len(bs)
}
