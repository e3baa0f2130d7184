package normalize

import (
	"reflect"
	"testing"

	"github.com/crimson-sun/whatsnew/internal/model"
	"github.com/crimson-sun/whatsnew/internal/section"
)

func TestRecordsAssignsSeqAndID(t *testing.T) {
	raws := []model.RawRecord{
		{Title: "First feature"},
		{Title: "Second feature"},
	}
	recs, dropped := Records(raws, model.OriginReleaseNotes)
	if len(dropped) != 0 {
		t.Fatalf("unexpected drops: %v", dropped)
	}
	if recs[0].Seq != 0 || recs[1].Seq != 1 {
		t.Fatalf("seq = %d, %d", recs[0].Seq, recs[1].Seq)
	}
	if recs[0].ID == "" || recs[0].ID == recs[1].ID {
		t.Fatalf("ids not distinct: %q vs %q", recs[0].ID, recs[1].ID)
	}
}

func TestRecordsDeterministicIDs(t *testing.T) {
	raws := []model.RawRecord{{Title: "Same feature"}}
	a, _ := Records(raws, model.OriginReleaseNotes)
	b, _ := Records(raws, model.OriginReleaseNotes)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs must normalize identically, IDs included")
	}

	pmSide, _ := Records(raws, model.OriginPMHighlighted)
	if pmSide[0].ID == a[0].ID {
		t.Fatal("same title from different origins must get different IDs")
	}
}

func TestRecordsDropsMissingTitle(t *testing.T) {
	raws := []model.RawRecord{
		{Title: "Kept"},
		{Title: "   "},
		{Title: "Also kept"},
	}
	recs, dropped := Records(raws, model.OriginReleaseNotes)
	if len(recs) != 2 {
		t.Fatalf("expected 2 surviving records, got %d", len(recs))
	}
	if len(dropped) != 1 || dropped[0].Index != 1 {
		t.Fatalf("dropped = %v, want index 1", dropped)
	}
	// Dropping must not leave a gap in sequence numbers.
	if recs[1].Seq != 1 {
		t.Fatalf("Seq after drop = %d, want 1", recs[1].Seq)
	}
}

func TestRecordsResolvesAndDedupesLinks(t *testing.T) {
	raws := []model.RawRecord{{
		Title: "Feature",
		Links: []string{
			"https://github.com/elastic/kibana/pull/1",
			"https://github.com/elastic/kibana/pull/1",
			"https://www.elastic.co/docs/thing",
		},
	}}
	recs, _ := Records(raws, model.OriginReleaseNotes)
	if len(recs[0].Links) != 2 {
		t.Fatalf("links = %v", recs[0].Links)
	}
	if recs[0].Links[0].Kind != model.LinkPull || recs[0].Links[1].Kind != model.LinkDocs {
		t.Fatalf("kinds = %q, %q", recs[0].Links[0].Kind, recs[0].Links[1].Kind)
	}
}

func TestRecordsPMOrder(t *testing.T) {
	raws := []model.RawRecord{
		{Title: "Explicit", PMOrder: 5},
		{Title: "Implicit"},
	}
	recs, _ := Records(raws, model.OriginPMHighlighted)
	if recs[0].PMOrder != 5 {
		t.Fatalf("explicit PMOrder = %d", recs[0].PMOrder)
	}
	if recs[1].PMOrder != 2 {
		t.Fatalf("implicit PMOrder = %d, want position-derived 2", recs[1].PMOrder)
	}

	rnRecs, _ := Records(raws, model.OriginReleaseNotes)
	if rnRecs[1].PMOrder != 0 {
		t.Fatalf("release-notes record must not get a PM order, got %d", rnRecs[1].PMOrder)
	}
}

func TestRecordsDefaultFeatureTag(t *testing.T) {
	raws := []model.RawRecord{{Title: "Feature", SectionKey: "query-analysis"}}
	recs, _ := Records(raws, model.OriginReleaseNotes)
	if len(recs[0].FeatureTags) != 1 || recs[0].FeatureTags[0] != "Alerting" {
		t.Fatalf("tags = %v, want section default", recs[0].FeatureTags)
	}
}

func TestRecordsHintedInfersSection(t *testing.T) {
	raws := []model.RawRecord{
		{Title: "Adds OTel collector health view"},
		{Title: "Faster refresh", Description: "Reduces latency on the alert rule list"},
		{Title: "Explicit wins", Description: "otel everywhere", SectionKey: "streams"},
		{Title: "Nothing matches here"},
	}
	recs, _ := RecordsHinted(raws, model.OriginReleaseNotes, section.DefaultHints())

	if recs[0].SectionKey != "opentelemetry" {
		t.Fatalf("title inference = %q", recs[0].SectionKey)
	}
	if recs[1].SectionKey != "query-analysis" {
		t.Fatalf("description inference = %q", recs[1].SectionKey)
	}
	if recs[2].SectionKey != "streams" {
		t.Fatalf("explicit section key was overridden: %q", recs[2].SectionKey)
	}
	if recs[3].SectionKey != "" {
		t.Fatalf("unmatched record gained a section: %q", recs[3].SectionKey)
	}

	// The inferred section also drives the fallback feature tag.
	if len(recs[0].FeatureTags) != 1 || recs[0].FeatureTags[0] != "OpenTelemetry" {
		t.Fatalf("tags = %v, want inferred section default", recs[0].FeatureTags)
	}
}

func TestRecordsWithoutHintsLeavesSectionEmpty(t *testing.T) {
	raws := []model.RawRecord{{Title: "Adds OTel collector health view"}}
	recs, _ := Records(raws, model.OriginReleaseNotes)
	if recs[0].SectionKey != "" {
		t.Fatalf("SectionKey = %q, want empty without hints", recs[0].SectionKey)
	}
}

func TestRecordsMediaInference(t *testing.T) {
	raws := []model.RawRecord{{
		Title: "Feature",
		Media: []model.RawMedia{
			{Filename: "demo.mp4"},
			{Filename: "shot.png"},
			{Filename: "override.png", MediaType: "video"},
			{Filename: "demo.mp4"}, // duplicate filename
		},
	}}
	recs, _ := Records(raws, model.OriginReleaseNotes)
	media := recs[0].Media
	if len(media) != 3 {
		t.Fatalf("media = %v", media)
	}
	if media[0].MediaType != model.MediaVideo || media[1].MediaType != model.MediaImage || media[2].MediaType != model.MediaVideo {
		t.Fatalf("media types = %v", media)
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want model.Status
	}{
		{"GA", model.StatusGA},
		{"GA (was Tech Preview in 9.2)", model.StatusGA},
		{"", model.StatusGA},
		{"Tech Preview", model.StatusTechPreview},
		{"beta", model.StatusBeta},
		{"Public Beta", model.StatusBeta},
		{"Preview", model.StatusTechPreview},
	}
	for _, tc := range cases {
		if got := ParseStatus(tc.in); got != tc.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
