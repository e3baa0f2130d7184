package section

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Hint maps keyword substrings to a section key. Hints are a fallback for
// records that arrive without a section assignment; the first hint whose
// keyword appears in the record text wins, so the list order matters.
type Hint struct {
	Keywords []string `yaml:"keywords"`
	Section  string   `yaml:"section"`
}

// DefaultHints returns the built-in keyword hints for the default sections.
func DefaultHints() []Hint {
	return []Hint{
		{Section: "streams", Keywords: []string{
			"stream", "log", "ingest", "pipeline", "routing", "processor",
			"processing", "partitioning", "schema tab", "field mapping",
			"unlink", "preview"}},
		{Section: "infrastructure", Keywords: []string{
			"infrastructure", "inventory", "host", "metrics", "tsdb",
			"downsampl", "time series", " ts ", "exponential histogram",
			"rollback", "agent version", "integration version", "fleet"}},
		{Section: "ai-investigations", Keywords: []string{
			"ai ", "llm", "genai", "knowledge base", "assistant", "gemini",
			"bedrock", "function calling", "connector", "system prompt"}},
		{Section: "query-analysis", Keywords: []string{
			"alert", "query", "discover", "case", "threshold", "rule",
			"api key", "dashboard", "saved quer", "workflow tag", "mute",
			"snooze"}},
		{Section: "opentelemetry", Keywords: []string{
			"otel", "opentelemetry", "edot", "opamp", "agent config"}},
		{Section: "apm", Keywords: []string{
			"apm", "trace", "span", "transaction", "service map",
			"service inventory", "custom link", "jvm metric", "similar error"}},
		{Section: "digital-experience", Keywords: []string{
			"synthetics", "monitor", "uptime", "slo", "sli", "browser",
			"journey step", "test run"}},
	}
}

// LoadHints reads an ordered hint list from a YAML file.
func LoadHints(path string) ([]Hint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("section hints: read %s: %w", path, err)
	}
	var hints []Hint
	if err := yaml.Unmarshal(data, &hints); err != nil {
		return nil, fmt.Errorf("section hints: parse %s: %w", path, err)
	}
	for _, h := range hints {
		if h.Section == "" {
			return nil, fmt.Errorf("section hints: hint without a section in %s", path)
		}
		if len(h.Keywords) == 0 {
			return nil, fmt.Errorf("section hints: hint for %q has no keywords in %s", h.Section, path)
		}
	}
	return hints, nil
}

// InferKey returns the section key of the first hint whose keyword occurs
// in the text, case-insensitively.
func InferKey(text string, hints []Hint) (string, bool) {
	lower := strings.ToLower(text)
	for _, h := range hints {
		for _, kw := range h.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return h.Section, true
			}
		}
	}
	return "", false
}
