package linkid

import (
	"testing"

	"github.com/crimson-sun/whatsnew/internal/model"
)

func TestResolvePull(t *testing.T) {
	l := Resolve("https://github.com/elastic/kibana/pull/245784")
	if l.Kind != model.LinkPull {
		t.Fatalf("Kind = %q, want pull", l.Kind)
	}
	if l.Repo != "elastic/kibana" {
		t.Fatalf("Repo = %q", l.Repo)
	}
	if l.Number != 245784 {
		t.Fatalf("Number = %d", l.Number)
	}
}

func TestResolveIssue(t *testing.T) {
	l := Resolve("https://github.com/elastic/elasticsearch/issues/12345")
	if l.Kind != model.LinkIssue {
		t.Fatalf("Kind = %q, want issue", l.Kind)
	}
	if l.Number != 12345 {
		t.Fatalf("Number = %d", l.Number)
	}
}

func TestResolveDocsFallback(t *testing.T) {
	l := Resolve("https://www.elastic.co/docs/explore-analyze/workflows")
	if l.Kind != model.LinkDocs {
		t.Fatalf("Kind = %q, want docs", l.Kind)
	}
	if l.Number != 0 {
		t.Fatalf("Number = %d, want 0", l.Number)
	}
}

func TestResolveUnparseableFailsClosed(t *testing.T) {
	// Garbage input still comes back as a docs link, never discarded.
	l := Resolve("not a url at all")
	if l.Kind != model.LinkDocs {
		t.Fatalf("Kind = %q, want docs", l.Kind)
	}
	if l.URL != "not a url at all" {
		t.Fatalf("URL = %q, raw string not preserved", l.URL)
	}
}

func TestResolveTrimsTrailingPunctuation(t *testing.T) {
	l := Resolve("https://github.com/elastic/kibana/pull/99.")
	if l.Number != 99 {
		t.Fatalf("Number = %d, want 99", l.Number)
	}
}

func TestResolveAllDedupes(t *testing.T) {
	links := ResolveAll([]string{
		"https://github.com/elastic/kibana/pull/1",
		"https://github.com/elastic/kibana/pull/1",
		"",
		"https://github.com/elastic/kibana/pull/2",
	})
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if links[0].Number != 1 || links[1].Number != 2 {
		t.Fatalf("order not preserved: %v", links)
	}
}

func TestResolveAllEmpty(t *testing.T) {
	if got := ResolveAll(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := ResolveAll([]string{"", "  "}); got != nil {
		t.Fatalf("expected nil for all-blank input, got %v", got)
	}
}
