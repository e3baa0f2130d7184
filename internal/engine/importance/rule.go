package importance

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/whatsnew/internal/engine/similarity"
	"github.com/crimson-sun/whatsnew/internal/model"
)

// Verdict is the outcome a rule assigns when it fires.
type Verdict string

const (
	Keep Verdict = "keep"
	Drop Verdict = "drop"
)

// Env is the read-only context a rule may consult: the titles of records
// already accepted (kept so far plus all PM records).
type Env struct {
	BaselineTokens []map[string]struct{}
}

// Rule is one named classification rule. Rules are evaluated in declared
// order; the first rule whose Match fires decides the record.
type Rule struct {
	Name    string
	Verdict Verdict
	Match   func(rec model.FeatureRecord, env Env) bool
}

// KeywordRule fires when any keyword appears as a substring of the record's
// lowercased title, description, or tags.
func KeywordRule(name string, verdict Verdict, keywords ...string) Rule {
	return Rule{
		Name:    name,
		Verdict: verdict,
		Match: func(rec model.FeatureRecord, _ Env) bool {
			text := strings.ToLower(similarity.RecordText(rec))
			for _, kw := range keywords {
				if strings.Contains(text, kw) {
					return true
				}
			}
			return false
		},
	}
}

// MinorIncrementRule fires when the record's title is similar (above the
// given low threshold) to a capability already present in the baseline,
// a small addition to something the document already covers.
func MinorIncrementRule(name string, threshold float64) Rule {
	return Rule{
		Name:    name,
		Verdict: Drop,
		Match: func(rec model.FeatureRecord, env Env) bool {
			tokens := similarity.TokenSet(rec.Title)
			for _, base := range env.BaselineTokens {
				if similarity.ScoreSets(tokens, base) >= threshold {
					return true
				}
			}
			return false
		},
	}
}

// DefaultRules returns the built-in rule order: keep rules first, then drop
// rules, per-record default keep. Keyword lists here are starting points;
// load a YAML rule file to extend them without code changes.
func DefaultRules(minorIncrementThreshold float64) []Rule {
	return []Rule{
		KeywordRule("new-capability-class", Keep,
			"first class", "first-class", "new capability", "brand new", "introduces", "all new"),
		KeywordRule("competitive", Keep,
			"datadog", "grafana", "splunk", "dynatrace", "opensearch", "new relic"),
		KeywordRule("ai-ml", Keep,
			"agentic", "ai-suggested", "ai-generated", "ai assistant", "llm", "genai", "machine learning"),
		KeywordRule("workflow-maturity", Keep,
			"bulk", "rbac", "role-based", "permission model", "space-aware", "spaces support",
			"tagging", "classification"),
		KeywordRule("cross-signal", Keep,
			"apm and infra", "apm+infra", "logs and metrics", "cross-signal", "correlation",
			"logs, metrics, and traces", "unified view"),
		KeywordRule("otel-native", Keep,
			"opentelemetry", "otel", "edot", "opamp", "semantic conventions"),
		KeywordRule("ui-polish", Drop,
			"icon", "tooltip", "empty state", "autoscroll", "spacing", "wrap", "padding", "alignment"),
		KeywordRule("internal-testing", Drop,
			"internal testing", "internal validation", "test coverage", "flaky test"),
		KeywordRule("permission-only", Drop,
			"permission check", "privilege check", "requires permission", "restricts access"),
		KeywordRule("error-messaging", Drop,
			"error message", "error text", "warning message", "improves the message"),
		MinorIncrementRule("minor-increment", minorIncrementThreshold),
	}
}

// ruleSpec is the YAML shape of an externally supplied rule.
type ruleSpec struct {
	Name     string   `yaml:"name"`
	Verdict  Verdict  `yaml:"verdict"`
	Kind     string   `yaml:"kind,omitempty"` // "keyword" (default) or "minor-increment"
	Keywords []string `yaml:"keywords,omitempty"`
}

// LoadRules reads an ordered rule list from a YAML file. The special kind
// "minor-increment" builds the baseline-similarity rule at the given
// threshold (no keywords).
func LoadRules(path string, minorIncrementThreshold float64) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("importance rules: read %s: %w", path, err)
	}
	var specs []ruleSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("importance rules: parse %s: %w", path, err)
	}

	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("importance rules: rule without a name in %s", path)
		}
		if s.Verdict != Keep && s.Verdict != Drop {
			return nil, fmt.Errorf("importance rules: rule %q has verdict %q, want keep or drop", s.Name, s.Verdict)
		}
		switch s.Kind {
		case "", "keyword":
			if len(s.Keywords) == 0 {
				return nil, fmt.Errorf("importance rules: keyword rule %q has no keywords", s.Name)
			}
			lowered := make([]string, len(s.Keywords))
			for i, kw := range s.Keywords {
				lowered[i] = strings.ToLower(kw)
			}
			rules = append(rules, KeywordRule(s.Name, s.Verdict, lowered...))
		case "minor-increment":
			rules = append(rules, MinorIncrementRule(s.Name, minorIncrementThreshold))
		default:
			return nil, fmt.Errorf("importance rules: rule %q has unknown kind %q", s.Name, s.Kind)
		}
	}
	return rules, nil
}
