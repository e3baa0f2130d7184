// Package matcher decides, for every release-notes record, whether it is
// already represented by a PM-highlighted record. Link identity is
// authoritative; a fuzzy title match is the fallback. Matched records are
// absorbed (links, media, bookkeeping); PM prose is never overwritten.
package matcher

import (
	"fmt"

	"github.com/crimson-sun/whatsnew/internal/engine/similarity"
	"github.com/crimson-sun/whatsnew/internal/model"
)

// Config controls matching behavior.
type Config struct {
	// TitleThreshold is the Jaccard title similarity a fuzzy match must
	// strictly exceed. A score equal to the threshold is not a match.
	TitleThreshold float64
}

// Warning flags a resolution a human may want to review. It is never an
// error: the matcher always resolves deterministically.
type Warning struct {
	Kind     string // "ambiguous_match"
	RecordID string
	Message  string
}

// Result holds the outcome of a match run.
type Result struct {
	PM        []model.FeatureRecord // every PM record exactly once, links/media merged
	Unmatched []model.FeatureRecord // release-notes records absorbed by nothing
	Warnings  []Warning
}

// Matcher cross-references release-notes records against PM records.
type Matcher struct {
	cfg Config
}

// New creates a Matcher with the given config.
func New(cfg Config) *Matcher {
	return &Matcher{cfg: cfg}
}

// pmEntry caches a PM record's matching keys. Identity and token sets are
// computed from the record as provided, not from absorbed links, so match
// results do not depend on the order unrelated records arrive in.
type pmEntry struct {
	current model.FeatureRecord
	linkIDs map[string]struct{}
	tokens  map[string]struct{}
}

// Match folds release-notes records into the PM records they belong to and
// returns the rest untouched. Every release-notes record lands in exactly
// one place. Running Match again with an empty release-notes list returns
// the PM list unchanged.
func (m *Matcher) Match(pm, rn []model.FeatureRecord) Result {
	entries := make([]*pmEntry, len(pm))
	for i, p := range pm {
		entries[i] = &pmEntry{
			current: p.Clone(),
			linkIDs: p.LinkIdentities(),
			tokens:  similarity.TokenSet(p.Title),
		}
	}

	var res Result
	for _, r := range rn {
		idx, warn := m.findMatch(entries, r)
		if warn != nil {
			res.Warnings = append(res.Warnings, *warn)
		}
		if idx < 0 {
			res.Unmatched = append(res.Unmatched, r)
			continue
		}
		entries[idx].current = entries[idx].current.Absorb(r)
	}

	res.PM = make([]model.FeatureRecord, len(entries))
	for i, e := range entries {
		res.PM[i] = e.current
	}
	return res
}

// findMatch returns the index of the PM record r belongs to, or -1.
func (m *Matcher) findMatch(entries []*pmEntry, r model.FeatureRecord) (int, *Warning) {
	// Strategy 1: link identity intersection. Largest intersection wins,
	// ties broken by PM input order.
	rIDs := r.LinkIdentities()
	bestIdx, bestOverlap := -1, 0
	for i, e := range entries {
		overlap := 0
		for id := range rIDs {
			if _, ok := e.linkIDs[id]; ok {
				overlap++
			}
		}
		if overlap > bestOverlap {
			bestIdx, bestOverlap = i, overlap
		}
	}
	if bestIdx >= 0 {
		return bestIdx, nil
	}

	// Strategy 2: fuzzy title similarity above the threshold. Highest score
	// wins, ties broken by PM input order and flagged for review.
	rTokens := similarity.TokenSet(r.Title)
	bestIdx = -1
	bestScore := 0.0
	tied := false
	for i, e := range entries {
		score := similarity.ScoreSets(rTokens, e.tokens)
		if score <= m.cfg.TitleThreshold {
			continue
		}
		if score > bestScore {
			bestIdx, bestScore, tied = i, score, false
		} else if score == bestScore && bestIdx >= 0 {
			tied = true
		}
	}
	if bestIdx < 0 {
		return -1, nil
	}
	if tied {
		return bestIdx, &Warning{
			Kind:     "ambiguous_match",
			RecordID: r.ID,
			Message: fmt.Sprintf("record %q matches multiple PM entries at score %.2f; resolved to %q by input order",
				r.Title, bestScore, entries[bestIdx].current.Title),
		}
	}
	return bestIdx, nil
}
