// Package consolidator folds clusters of near-duplicate incremental records
// into single composite entries. Known clusters are configuration (keyword
// sets tied to a primary tag) and a bounded generic rule catches the rest:
// same dominant tag plus title similarity above a medium threshold. It never
// infers novel clusters beyond that, so unrelated features cannot be merged
// silently.
package consolidator

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/whatsnew/internal/engine/similarity"
	"github.com/crimson-sun/whatsnew/internal/model"
)

// compositeNamespace seeds deterministic composite IDs: identical inputs
// produce identical output records, byte for byte.
var compositeNamespace = uuid.MustParse("5f1d3e0a-9c7b-4b7e-8a2d-6f0c4d9e1b23")

// Cluster is a configured known-cluster rule: records whose dominant tag is
// PrimaryTag and whose title contains any keyword belong together.
type Cluster struct {
	Name        string   `yaml:"name"`
	Title       string   `yaml:"title"`       // composite title
	Description string   `yaml:"description"` // composite description
	PrimaryTag  string   `yaml:"primary_tag"`
	Keywords    []string `yaml:"keywords"`
}

// Config controls consolidation behavior.
type Config struct {
	Clusters []Cluster
	// TitleThreshold is the minimum similarity for the generic same-tag
	// grouping rule.
	TitleThreshold float64
}

// Consolidator groups surviving release-notes records that are fragments of
// one capability.
type Consolidator struct {
	cfg Config
}

// New creates a Consolidator with the given config.
func New(cfg Config) *Consolidator {
	return &Consolidator{cfg: cfg}
}

// DefaultClusters returns the built-in known-cluster list.
func DefaultClusters() []Cluster {
	return []Cluster{
		{
			Name:        "alert-tagging",
			Title:       "Tagging and bulk tagging of alerts",
			Description: "Alerts now carry workflow tags end to end: tags can be added and edited from alert actions, applied in bulk, filtered on, and surfaced on the Overview tab.",
			PrimaryTag:  "Alerting",
			Keywords:    []string{"tag", "tags", "tagging"},
		},
	}
}

// LoadClusters reads a cluster list from a YAML file.
func LoadClusters(path string) ([]Cluster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("consolidation clusters: read %s: %w", path, err)
	}
	var clusters []Cluster
	if err := yaml.Unmarshal(data, &clusters); err != nil {
		return nil, fmt.Errorf("consolidation clusters: parse %s: %w", path, err)
	}
	for _, c := range clusters {
		if c.Name == "" || c.PrimaryTag == "" || len(c.Keywords) == 0 {
			return nil, fmt.Errorf("consolidation clusters: cluster %q needs name, primary_tag, and keywords", c.Name)
		}
	}
	return clusters, nil
}

// group accumulates members in first-occurrence order.
type group struct {
	cluster *Cluster // nil for generic groups
	members []model.FeatureRecord
	tokens  map[string]struct{} // seed member's title tokens
}

// Consolidate groups the records and replaces each group of two or more
// with one composite. Groups of one pass through unchanged. Output order is
// first-occurrence order of each group's seed, so identical input ordering
// always yields identical output.
func (c *Consolidator) Consolidate(records []model.FeatureRecord) []model.FeatureRecord {
	if len(records) == 0 {
		return nil
	}

	var order []*group
	clusterGroups := make(map[string]*group, len(c.cfg.Clusters))

	for _, rec := range records {
		if cl := c.matchCluster(rec); cl != nil {
			g, ok := clusterGroups[cl.Name]
			if !ok {
				g = &group{cluster: cl}
				clusterGroups[cl.Name] = g
				order = append(order, g)
			}
			g.members = append(g.members, rec)
			continue
		}

		if g := c.findGenericGroup(order, rec); g != nil {
			g.members = append(g.members, rec)
			continue
		}

		order = append(order, &group{
			members: []model.FeatureRecord{rec},
			tokens:  similarity.TokenSet(rec.Title),
		})
	}

	out := make([]model.FeatureRecord, 0, len(order))
	for _, g := range order {
		if len(g.members) == 1 {
			out = append(out, g.members[0])
			continue
		}
		out = append(out, c.composite(g))
	}
	return out
}

// matchCluster returns the first configured cluster the record belongs to.
func (c *Consolidator) matchCluster(rec model.FeatureRecord) *Cluster {
	tag := dominantTag(rec)
	if tag == "" {
		return nil
	}
	title := strings.ToLower(rec.Title)
	words := similarity.Tokens(rec.Title)
	for i := range c.cfg.Clusters {
		cl := &c.cfg.Clusters[i]
		if !strings.EqualFold(cl.PrimaryTag, tag) {
			continue
		}
		for _, kw := range cl.Keywords {
			lkw := strings.ToLower(kw)
			for _, w := range words {
				if w == lkw {
					return cl
				}
			}
			// Multi-word keywords fall back to substring matching.
			if strings.Contains(lkw, " ") && strings.Contains(title, lkw) {
				return cl
			}
		}
	}
	return nil
}

// findGenericGroup returns the first open generic group sharing the
// record's dominant tag with seed-title similarity above the threshold.
func (c *Consolidator) findGenericGroup(order []*group, rec model.FeatureRecord) *group {
	tag := dominantTag(rec)
	if tag == "" {
		return nil
	}
	tokens := similarity.TokenSet(rec.Title)
	for _, g := range order {
		if g.cluster != nil {
			continue
		}
		if !strings.EqualFold(dominantTag(g.members[0]), tag) {
			continue
		}
		if similarity.ScoreSets(tokens, g.tokens) >= c.cfg.TitleThreshold {
			return g
		}
	}
	return nil
}

// composite builds the single record replacing a group of two or more.
func (c *Consolidator) composite(g *group) model.FeatureRecord {
	members := g.members
	out := members[0].Clone()
	out.Seq = members[0].Seq
	out.Origin = model.OriginReleaseNotes

	if g.cluster != nil {
		out.Title = g.cluster.Title
		out.Description = g.cluster.Description
	} else {
		out.Title = sharedTitle(members)
		out.Description = composeDescription(out.Title, members)
	}

	// Union links by identity, concatenate media in relative order, union
	// tags preserving first-seen order, across all members.
	out.Links = nil
	out.Media = nil
	out.FeatureTags = nil
	out.MergedFrom = nil
	linkSeen := map[string]struct{}{}
	mediaSeen := map[string]struct{}{}
	tagSeen := map[string]struct{}{}
	for _, m := range members {
		for _, l := range m.Links {
			if _, ok := linkSeen[l.Identity()]; ok {
				continue
			}
			linkSeen[l.Identity()] = struct{}{}
			out.Links = append(out.Links, l)
		}
		for _, md := range m.Media {
			if _, ok := mediaSeen[md.Filename]; ok {
				continue
			}
			mediaSeen[md.Filename] = struct{}{}
			out.Media = append(out.Media, md)
		}
		for _, t := range m.FeatureTags {
			if _, ok := tagSeen[t]; ok {
				continue
			}
			tagSeen[t] = struct{}{}
			out.FeatureTags = append(out.FeatureTags, t)
		}
		out.MergedFrom = append(out.MergedFrom, m.ID)
		out.MergedFrom = append(out.MergedFrom, m.MergedFrom...)
	}

	out.Status, out.ReleaseVersion = mostAdvanced(members)
	out.ID = uuid.NewSHA1(compositeNamespace, []byte(strings.Join(out.MergedFrom, "|"))).String()
	return out
}

// dominantTag is the record's first feature tag.
func dominantTag(rec model.FeatureRecord) string {
	if len(rec.FeatureTags) == 0 {
		return ""
	}
	return rec.FeatureTags[0]
}

// sharedTitle derives a short generic phrase for an unconfigured group: the
// tokens common to every member's title, in the first member's word order.
// Falls back to the first member's title when nothing is shared.
func sharedTitle(members []model.FeatureRecord) string {
	shared := similarity.TokenSet(members[0].Title)
	for _, m := range members[1:] {
		next := similarity.TokenSet(m.Title)
		for tok := range shared {
			if _, ok := next[tok]; !ok {
				delete(shared, tok)
			}
		}
	}
	if len(shared) == 0 {
		return members[0].Title
	}

	var words []string
	for _, tok := range similarity.Tokens(members[0].Title) {
		if _, ok := shared[tok]; ok {
			words = append(words, tok)
			delete(shared, tok) // keep each shared token once
		}
	}
	title := strings.Join(words, " ")
	if title == "" {
		return members[0].Title
	}
	first, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(first)) + title[size:] + " improvements"
}

// composeDescription writes a fresh collective description rather than
// joining the members' prose.
func composeDescription(subject string, members []model.FeatureRecord) string {
	tag := dominantTag(members[0])
	area := strings.ToLower(subject)
	if tag != "" {
		area = tag
	}
	return strconv.Itoa(len(members)) + " related changes land together in " + area +
		", rounding out " + strings.ToLower(subject) + " across the workflow."
}

// mostAdvanced picks the group's status and release version: highest status
// rank wins; on a tie the earliest release version is taken.
func mostAdvanced(members []model.FeatureRecord) (model.Status, string) {
	best := members[0]
	for _, m := range members[1:] {
		switch {
		case m.Status.Rank() > best.Status.Rank():
			best = m
		case m.Status.Rank() == best.Status.Rank() && versionLess(m.ReleaseVersion, best.ReleaseVersion):
			best = m
		}
	}
	return best.Status, best.ReleaseVersion
}

// versionLess compares dotted numeric versions; an empty version is never
// earlier.
func versionLess(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr != nil || berr != nil {
			return a < b
		}
		if an != bn {
			return an < bn
		}
	}
	return len(as) < len(bs)
}
