package section

import "github.com/crimson-sun/whatsnew/internal/model"

// DefaultSections returns the built-in observability section order used when
// no registry file is configured.
func DefaultSections() []model.Section {
	return []model.Section{
		{Key: "streams", DisplayName: "Log Analytics & Streams", TagClass: "tag-streams"},
		{Key: "infrastructure", DisplayName: "Infrastructure Monitoring", TagClass: "tag-infra"},
		{Key: "ai-investigations", DisplayName: "Agentic Investigations", TagClass: "tag-ai"},
		{Key: "query-analysis", DisplayName: "Query, Analysis & Alerting", TagClass: "tag-query"},
		{Key: "opentelemetry", DisplayName: "OpenTelemetry", TagClass: "tag-otel"},
		{Key: "apm", DisplayName: "Application Performance Monitoring", TagClass: "tag-apm"},
		{Key: "digital-experience", DisplayName: "Digital Experience Monitoring", TagClass: "tag-digital"},
	}
}

// DefaultFeatureTag maps a section key to the fallback feature tag applied
// when a record arrives without tags of its own.
func DefaultFeatureTag(key string) (string, bool) {
	tags := map[string]string{
		"streams":            "Streams",
		"infrastructure":     "Infrastructure Monitoring",
		"ai-investigations":  "AI Assistant",
		"query-analysis":     "Alerting",
		"opentelemetry":      "OpenTelemetry",
		"apm":                "APM",
		"digital-experience": "Synthetics",
	}
	t, ok := tags[key]
	return t, ok
}
