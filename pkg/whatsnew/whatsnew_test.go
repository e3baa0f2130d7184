package whatsnew

import (
	"reflect"
	"testing"
)

func TestMergeLinkedRecordsCollapse(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pm := []Feature{{
		Title:   "Streams significant events",
		Section: "streams",
		Links:   []string{"https://github.com/elastic/kibana/pull/1111"},
		Order:   1,
	}}
	release := []Feature{{
		Title:   "Adds significant events view to Streams",
		Section: "streams",
		Links: []string{
			"https://github.com/elastic/kibana/pull/1111",
			"https://github.com/elastic/kibana/pull/2222",
		},
	}}

	doc, err := m.Merge(pm, release)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if doc.Total != 1 {
		t.Fatalf("total = %d, want the two records merged", doc.Total)
	}
	item := doc.Sections[0].Features[0]
	if !item.Highlighted {
		t.Fatal("merged item must keep the PM origin")
	}
	if len(item.Links) != 2 {
		t.Fatalf("links = %v, want the union", item.Links)
	}
	if len(item.MergedFrom) != 1 {
		t.Fatalf("merged_from = %v", item.MergedFrom)
	}
}

func TestMergeCustomSections(t *testing.T) {
	m, err := New(WithSections([]Section{
		{Key: "search", Name: "Search"},
		{Key: "security", Name: "Security"},
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc, err := m.Merge(nil, []Feature{
		{Title: "Brand new query language for security rules", Section: "security"},
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Name != "Security" {
		t.Fatalf("sections = %+v", doc.Sections)
	}
}

func TestMergeRejectsEmptySectionList(t *testing.T) {
	if _, err := New(WithSections([]Section{{Key: "", Name: ""}})); err == nil {
		t.Fatal("expected an error for an unusable section list")
	}
}

func TestMergeUnknownSectionSurfacesWarning(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc, err := m.Merge(nil, []Feature{
		{Title: "Introduces profiling flamegraph diffs", Section: "profiling"},
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if doc.Total != 0 {
		t.Fatalf("total = %d, record with unknown section cannot be bucketed", doc.Total)
	}
	if len(doc.Warnings) != 1 {
		t.Fatalf("warnings = %v, the record must never vanish silently", doc.Warnings)
	}
}

func TestMergeDeterministic(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pm := []Feature{
		{Title: "Metrics exploration in Discover", Section: "infrastructure", Order: 2},
		{Title: "Agentic investigations workspace", Section: "ai-investigations", Order: 1},
	}
	release := []Feature{
		{Title: "Adds OTel native host views", Section: "infrastructure"},
	}

	a, err := m.Merge(pm, release)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	b, err := m.Merge(pm, release)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs must produce identical documents")
	}
}
