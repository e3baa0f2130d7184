// Package importance classifies unmatched release-notes records as keep or
// drop. The rule set is data, evaluated first-match-wins in declared order;
// a record no rule fires on is kept.
package importance

import (
	"github.com/crimson-sun/whatsnew/internal/engine/similarity"
	"github.com/crimson-sun/whatsnew/internal/model"
)

// Decision records which rule decided a record, for the run report.
type Decision struct {
	RecordID string
	Title    string
	Rule     string // "" when the default applied
	Verdict  Verdict
}

// Filter applies an ordered rule set to release-notes records.
type Filter struct {
	rules []Rule
}

// New creates a Filter with the given ordered rules.
func New(rules []Rule) *Filter {
	return &Filter{rules: rules}
}

// Apply classifies each record. The baseline (PM records, already
// pre-approved) seeds the minor-increment comparison and grows with every
// kept record, so a fragment of an already-kept capability is recognized.
// PM records themselves are never filtered; callers pass only unmatched
// release-notes records.
func (f *Filter) Apply(records, baseline []model.FeatureRecord) (kept, dropped []model.FeatureRecord, decisions []Decision) {
	env := Env{BaselineTokens: make([]map[string]struct{}, 0, len(baseline)+len(records))}
	for _, b := range baseline {
		env.BaselineTokens = append(env.BaselineTokens, similarity.TokenSet(b.Title))
	}

	for _, rec := range records {
		rule, verdict := f.decide(rec, env)
		decisions = append(decisions, Decision{
			RecordID: rec.ID,
			Title:    rec.Title,
			Rule:     rule,
			Verdict:  verdict,
		})
		if verdict == Keep {
			kept = append(kept, rec)
			env.BaselineTokens = append(env.BaselineTokens, similarity.TokenSet(rec.Title))
		} else {
			dropped = append(dropped, rec)
		}
	}
	return kept, dropped, decisions
}

// decide runs the rules in order and returns the deciding rule's name and
// verdict. Default: keep.
func (f *Filter) decide(rec model.FeatureRecord, env Env) (string, Verdict) {
	for _, r := range f.rules {
		if r.Match(rec, env) {
			return r.Name, r.Verdict
		}
	}
	return "", Keep
}
