package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WHATSNEW_INPUT_FORMAT", "WHATSNEW_PM_FEATURES",
		"WHATSNEW_RELEASE_FEATURES", "WHATSNEW_SECTIONS",
		"WHATSNEW_RULES", "WHATSNEW_SECTION_HINTS", "WHATSNEW_CLUSTERS",
		"WHATSNEW_MATCH_THRESHOLD", "WHATSNEW_CONSOLIDATE_THRESHOLD",
		"WHATSNEW_INCREMENT_THRESHOLD",
		"WHATSNEW_OUTPUT", "WHATSNEW_JSON_PATH", "WHATSNEW_MARKDOWN_PATH",
		"WHATSNEW_WEBHOOK_URL", "WHATSNEW_VERBOSITY",
	} {
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "jsonfile", cfg.Input.Format)
	assert.Equal(t, "pm_features.json", cfg.Input.PMPath)
	assert.Equal(t, "release_features.json", cfg.Input.ReleasePath)
	assert.Empty(t, cfg.Input.SectionsPath)
	assert.Empty(t, cfg.Input.HintsPath)
	assert.Equal(t, 0.60, cfg.Engine.MatchThreshold)
	assert.Equal(t, 0.45, cfg.Engine.ConsolidateThreshold)
	assert.Equal(t, 0.35, cfg.Engine.IncrementThreshold)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Output.Verbosity)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WHATSNEW_INPUT_FORMAT", "jsonfile")
	t.Setenv("WHATSNEW_MATCH_THRESHOLD", "0.7")
	t.Setenv("WHATSNEW_OUTPUT", "markdown,json")
	t.Setenv("WHATSNEW_SECTIONS", "sections.yaml")
	t.Setenv("WHATSNEW_SECTION_HINTS", "hints.yaml")

	cfg := Load()

	assert.Equal(t, "jsonfile", cfg.Input.Format)
	assert.Equal(t, 0.7, cfg.Engine.MatchThreshold)
	assert.Equal(t, "markdown,json", cfg.Output.Format)
	assert.Equal(t, "sections.yaml", cfg.Input.SectionsPath)
	assert.Equal(t, "hints.yaml", cfg.Input.HintsPath)
}

func TestLoad_BadFloatFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("WHATSNEW_MATCH_THRESHOLD", "not-a-number")

	cfg := Load()

	assert.Equal(t, 0.60, cfg.Engine.MatchThreshold)
}

func TestValidate_Valid(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	require.NoError(t, cfg.Validate())
}

func TestValidate_BadThreshold(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.Engine.MatchThreshold = 1.5

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "match threshold")
}

func TestValidate_UnknownFormat(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.Output.Format = "json,html"

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "html")
}

func TestValidate_WebhookNeedsURL(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.Output.Format = "webhook"

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "WHATSNEW_WEBHOOK_URL")

	cfg.Output.WebhookURL = "https://example.com/hook"
	require.NoError(t, cfg.Validate())
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.Engine.MatchThreshold = -0.1
	cfg.Output.Format = "bogus"
	cfg.Output.Verbosity = "loud"

	err := cfg.Validate()

	require.Error(t, err)
	for _, want := range []string{"match threshold", "bogus", "verbosity"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestVersion_IsSet(t *testing.T) {
	assert.NotEmpty(t, Version)
}
