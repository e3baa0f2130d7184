// Package similarity scores how alike two feature titles are. It is a pure
// function over normalized token sets, so match thresholds can be tuned
// without touching the matching engine.
package similarity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/whatsnew/internal/model"
)

// stripMarks removes diacritic marks so "observabilité" tokenizes the same
// as "observabilite".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stopwords carry no matching signal and are dropped during tokenization.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "in": {}, "of": {}, "to": {},
	"a": {}, "an": {}, "is": {}, "with": {}, "on": {}, "by": {},
}

// Tokens normalizes a title into its matching tokens: diacritics stripped,
// case-folded, punctuation removed, whitespace collapsed, stopwords dropped.
// Order follows the input; duplicates are retained (use TokenSet for sets).
func Tokens(s string) []string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	var out []string
	for _, w := range strings.Fields(b.String()) {
		if _, stop := stopwords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// TokenSet returns the normalized token set of a title.
func TokenSet(s string) map[string]struct{} {
	toks := Tokens(s)
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t] = struct{}{}
	}
	return set
}

// Score computes the Jaccard similarity of two titles' token sets,
// in [0, 1]. Two empty titles score 0: nothing in common is not the same
// as everything in common.
func Score(a, b string) float64 {
	return ScoreSets(TokenSet(a), TokenSet(b))
}

// ScoreSets is Score over pre-computed token sets, for callers that compare
// one title against many.
func ScoreSets(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for t := range small {
		if _, ok := large[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// RecordText returns the matching text of a record: title, description, and
// tags joined. The importance filter scores rules against this.
func RecordText(f model.FeatureRecord) string {
	parts := make([]string, 0, 2+len(f.FeatureTags))
	parts = append(parts, f.Title, f.Description)
	parts = append(parts, f.FeatureTags...)
	return strings.Join(parts, " ")
}
