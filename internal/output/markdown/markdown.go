// Package markdown renders the assembled document as a human-reviewable
// sectioned markdown file.
package markdown

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/crimson-sun/whatsnew/internal/model"
)

// Output renders the document to a file path.
type Output struct {
	Path string
}

// New creates a markdown output writing to the given path.
func New(path string) *Output {
	return &Output{Path: path}
}

func (o *Output) Write(_ context.Context, doc model.Document) error {
	if err := os.WriteFile(o.Path, []byte(Render(doc)), 0o644); err != nil {
		return fmt.Errorf("markdown output: %w", err)
	}
	return nil
}

func (o *Output) Close() error { return nil }

// Render produces the full markdown document: a header with the covered
// releases and total feature count, one "##" block per section with a
// continuously numbered flat feature list, and the notable list at the end.
func Render(doc model.Document) string {
	var b strings.Builder

	b.WriteString("# What's New in Elastic Observability\n")
	if len(doc.Releases) > 0 {
		fmt.Fprintf(&b, "Releases covered: %s\n", strings.Join(doc.Releases, ", "))
	}
	fmt.Fprintf(&b, "Total features: %d\n\n", doc.TotalFeatures)

	num := 0
	for _, group := range doc.Sections {
		fmt.Fprintf(&b, "## %s\n\n", group.Section.DisplayName)
		for _, feat := range group.Features {
			num++
			writeFeature(&b, num, feat)
		}
	}

	if len(doc.Notable) > 0 {
		b.WriteString("## Notable Features Not in Release Notes\n\n")
		for _, feat := range doc.Notable {
			fmt.Fprintf(&b, "- %s\n", feat.Title)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeFeature(b *strings.Builder, num int, feat model.FeatureRecord) {
	fmt.Fprintf(b, "### %d. %s\n", num, feat.Title)

	source := "Release Notes"
	if feat.Origin == model.OriginPMHighlighted {
		source = "PM Highlighted"
	}
	fmt.Fprintf(b, "- **Source:** %s\n", source)
	fmt.Fprintf(b, "- **Description:** %s\n", feat.Description)
	if feat.Status != "" {
		fmt.Fprintf(b, "- **Status:** %s\n", feat.Status)
	}
	if len(feat.FeatureTags) > 0 {
		fmt.Fprintf(b, "- **Tags:** %s\n", strings.Join(feat.FeatureTags, ", "))
	}
	if feat.ReleaseVersion != "" {
		fmt.Fprintf(b, "- **Release:** %s\n", feat.ReleaseVersion)
	}

	if len(feat.Links) > 0 {
		b.WriteString("- **Links:**\n")
		for _, l := range feat.Links {
			fmt.Fprintf(b, "  - [%s](%s)\n", linkLabel(l), l.URL)
		}
	}

	if len(feat.Media) > 0 {
		b.WriteString("- **Media:**\n")
		for _, m := range feat.Media {
			fmt.Fprintf(b, "  - `media/%s` (%s)\n", m.Filename, m.MediaType)
		}
	}

	b.WriteString("\n---\n\n")
}

func linkLabel(l model.Link) string {
	switch l.Kind {
	case model.LinkPull:
		return fmt.Sprintf("PR #%d", l.Number)
	case model.LinkIssue:
		return fmt.Sprintf("Issue #%d", l.Number)
	case model.LinkDocs:
		return "Docs"
	default:
		return "Link"
	}
}
