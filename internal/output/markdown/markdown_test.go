package markdown

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/whatsnew/internal/model"
)

func sampleDocument() model.Document {
	return model.Document{
		Releases: []string{"9.2.0", "9.3.0"},
		Sections: []model.SectionGroup{
			{
				Section: model.Section{Key: "streams", DisplayName: "Log Analytics & Streams"},
				Features: []model.FeatureRecord{
					{
						Title:          "Streams significant events",
						Description:    "Surface the events that matter.",
						Status:         model.StatusGA,
						ReleaseVersion: "9.2.0",
						FeatureTags:    []string{"Streams", "Logs"},
						Links: []model.Link{
							{Kind: model.LinkPull, Repo: "elastic/kibana", Number: 1111, URL: "https://github.com/elastic/kibana/pull/1111"},
							{Kind: model.LinkDocs, URL: "https://www.elastic.co/docs/streams"},
						},
						Media:  []model.MediaRef{{Filename: "events.mp4", MediaType: model.MediaVideo}},
						Origin: model.OriginPMHighlighted,
					},
					{
						Title:       "Adds partitioning suggestions",
						Description: "Suggests partitions for new streams.",
						Status:      model.StatusTechPreview,
						Origin:      model.OriginReleaseNotes,
					},
				},
			},
			{
				Section: model.Section{Key: "apm", DisplayName: "Application Performance Monitoring"},
				Features: []model.FeatureRecord{
					{
						Title:       "Service map redesign",
						Description: "Rebuilt service map.",
						Origin:      model.OriginReleaseNotes,
					},
				},
			},
		},
		Notable: []model.FeatureRecord{
			{Title: "Metrics exploration in Discover", Origin: model.OriginPMHighlighted},
		},
		TotalFeatures: 3,
	}
}

func TestRenderHeader(t *testing.T) {
	out := Render(sampleDocument())

	assert.True(t, strings.HasPrefix(out, "# What's New in Elastic Observability\n"))
	assert.Contains(t, out, "Releases covered: 9.2.0, 9.3.0")
	assert.Contains(t, out, "Total features: 3")
}

func TestRenderNumberingContinuesAcrossSections(t *testing.T) {
	out := Render(sampleDocument())

	assert.Contains(t, out, "### 1. Streams significant events")
	assert.Contains(t, out, "### 2. Adds partitioning suggestions")
	assert.Contains(t, out, "### 3. Service map redesign")
}

func TestRenderSections(t *testing.T) {
	out := Render(sampleDocument())

	streams := strings.Index(out, "## Log Analytics & Streams")
	apm := strings.Index(out, "## Application Performance Monitoring")
	require.GreaterOrEqual(t, streams, 0)
	require.Greater(t, apm, streams, "sections must render in document order")
}

func TestRenderFeatureFields(t *testing.T) {
	out := Render(sampleDocument())

	assert.Contains(t, out, "- **Source:** PM Highlighted")
	assert.Contains(t, out, "- **Source:** Release Notes")
	assert.Contains(t, out, "- **Description:** Surface the events that matter.")
	assert.Contains(t, out, "- **Status:** GA")
	assert.Contains(t, out, "- **Tags:** Streams, Logs")
	assert.Contains(t, out, "- **Release:** 9.2.0")
	assert.Contains(t, out, "[PR #1111](https://github.com/elastic/kibana/pull/1111)")
	assert.Contains(t, out, "[Docs](https://www.elastic.co/docs/streams)")
	assert.Contains(t, out, "`media/events.mp4` (video)")
}

func TestRenderNotable(t *testing.T) {
	out := Render(sampleDocument())

	idx := strings.Index(out, "## Notable Features Not in Release Notes")
	require.GreaterOrEqual(t, idx, 0)
	assert.Contains(t, out[idx:], "- Metrics exploration in Discover")
}

func TestRenderOmitsEmptyNotable(t *testing.T) {
	doc := sampleDocument()
	doc.Notable = nil

	assert.NotContains(t, Render(doc), "Notable Features")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whats_new.md")
	o := New(path)

	require.NoError(t, o.Write(context.Background(), sampleDocument()))
	require.NoError(t, o.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# What's New in Elastic Observability")
}
