package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version is the release version stamped into the CLI.
const Version = "0.3.0"

// Config holds all whatsnew configuration.
type Config struct {
	Input  InputConfig
	Engine EngineConfig
	Output OutputConfig
}

// InputConfig names the input format and files and the optional YAML
// overrides for the section registry, importance rules, section hints, and
// consolidation clusters.
type InputConfig struct {
	Format       string // registered source format reading both inputs
	PMPath       string // PM highlighted features, interchange JSON
	ReleasePath  string // release-notes features, interchange JSON
	SectionsPath string // empty means built-in
	RulesPath    string // empty means built-in
	HintsPath    string // empty means built-in
	ClustersPath string // empty means built-in
}

// EngineConfig holds the similarity thresholds driving the merge stages.
type EngineConfig struct {
	MatchThreshold       float64 // fuzzy title match between PM and release-notes records
	ConsolidateThreshold float64 // generic grouping inside one tag
	IncrementThreshold   float64 // minor-increment drop against the kept baseline
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Format       string // comma list of "json", "markdown", "webhook"
	JSONPath     string // empty means stdout
	MarkdownPath string
	WebhookURL   string
	Verbosity    string // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Input: InputConfig{
			Format:       getenv("WHATSNEW_INPUT_FORMAT", "jsonfile"),
			PMPath:       getenv("WHATSNEW_PM_FEATURES", "pm_features.json"),
			ReleasePath:  getenv("WHATSNEW_RELEASE_FEATURES", "release_features.json"),
			SectionsPath: os.Getenv("WHATSNEW_SECTIONS"),
			RulesPath:    os.Getenv("WHATSNEW_RULES"),
			HintsPath:    os.Getenv("WHATSNEW_SECTION_HINTS"),
			ClustersPath: os.Getenv("WHATSNEW_CLUSTERS"),
		},
		Engine: EngineConfig{
			MatchThreshold:       getenvFloat("WHATSNEW_MATCH_THRESHOLD", 0.60),
			ConsolidateThreshold: getenvFloat("WHATSNEW_CONSOLIDATE_THRESHOLD", 0.45),
			IncrementThreshold:   getenvFloat("WHATSNEW_INCREMENT_THRESHOLD", 0.35),
		},
		Output: OutputConfig{
			Format:       getenv("WHATSNEW_OUTPUT", "json"),
			JSONPath:     os.Getenv("WHATSNEW_JSON_PATH"),
			MarkdownPath: getenv("WHATSNEW_MARKDOWN_PATH", "whats_new.md"),
			WebhookURL:   os.Getenv("WHATSNEW_WEBHOOK_URL"),
			Verbosity:    getenv("WHATSNEW_VERBOSITY", "info"),
		},
	}
}

// Validate collects every configuration fault rather than stopping at the
// first, so one run reports everything the operator has to fix.
func (c Config) Validate() error {
	var problems []string

	thresholds := []struct {
		name  string
		value float64
	}{
		{"match threshold", c.Engine.MatchThreshold},
		{"consolidate threshold", c.Engine.ConsolidateThreshold},
		{"increment threshold", c.Engine.IncrementThreshold},
	}
	for _, th := range thresholds {
		if th.value < 0 || th.value > 1 {
			problems = append(problems, fmt.Sprintf("%s %v outside [0,1]", th.name, th.value))
		}
	}

	for _, format := range strings.Split(c.Output.Format, ",") {
		switch strings.TrimSpace(format) {
		case "json", "markdown":
		case "webhook":
			if c.Output.WebhookURL == "" {
				problems = append(problems, "webhook output requires WHATSNEW_WEBHOOK_URL")
			}
		default:
			problems = append(problems, fmt.Sprintf("unknown output format %q", format))
		}
	}

	switch c.Output.Verbosity {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid verbosity %q", c.Output.Verbosity))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
