package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/crimson-sun/whatsnew/internal/config"
	"github.com/crimson-sun/whatsnew/internal/engine"
	"github.com/crimson-sun/whatsnew/internal/engine/assembler"
	"github.com/crimson-sun/whatsnew/internal/engine/consolidator"
	"github.com/crimson-sun/whatsnew/internal/engine/importance"
	"github.com/crimson-sun/whatsnew/internal/engine/matcher"
	"github.com/crimson-sun/whatsnew/internal/logging"
	"github.com/crimson-sun/whatsnew/internal/output"
	"github.com/crimson-sun/whatsnew/internal/output/jsonout"
	"github.com/crimson-sun/whatsnew/internal/output/markdown"
	"github.com/crimson-sun/whatsnew/internal/output/multi"
	"github.com/crimson-sun/whatsnew/internal/output/webhook"
	"github.com/crimson-sun/whatsnew/internal/pipeline"
	"github.com/crimson-sun/whatsnew/internal/section"
	"github.com/crimson-sun/whatsnew/internal/source"
	_ "github.com/crimson-sun/whatsnew/internal/source/jsonfile"
)

var (
	flagInputFormat string
	flagPMFile      string
	flagReleaseFile string
	flagOutput      string
	flagJSONPath    string
	flagMarkdown    string
	flagIndent      bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Run the merge and write the assembled document",
	Long: `Load the PM highlighted features and the release-notes features,
deduplicate and consolidate them, and write the sectioned document to the
configured outputs.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVar(&flagInputFormat, "input-format", "", "registered source format (overrides WHATSNEW_INPUT_FORMAT)")
	mergeCmd.Flags().StringVar(&flagPMFile, "pm-file", "", "PM highlighted features JSON (overrides WHATSNEW_PM_FEATURES)")
	mergeCmd.Flags().StringVar(&flagReleaseFile, "release-file", "", "release-notes features JSON (overrides WHATSNEW_RELEASE_FEATURES)")
	mergeCmd.Flags().StringVar(&flagOutput, "output", "", "comma list of outputs: json, markdown, webhook")
	mergeCmd.Flags().StringVar(&flagJSONPath, "json-path", "", "interchange JSON destination, stdout when empty")
	mergeCmd.Flags().StringVar(&flagMarkdown, "markdown-path", "", "markdown destination")
	mergeCmd.Flags().BoolVar(&flagIndent, "indent", false, "pretty-print the interchange JSON")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if flagInputFormat != "" {
		cfg.Input.Format = flagInputFormat
	}
	if flagPMFile != "" {
		cfg.Input.PMPath = flagPMFile
	}
	if flagReleaseFile != "" {
		cfg.Input.ReleasePath = flagReleaseFile
	}
	if flagOutput != "" {
		cfg.Output.Format = flagOutput
	}
	if flagJSONPath != "" {
		cfg.Output.JSONPath = flagJSONPath
	}
	if flagMarkdown != "" {
		cfg.Output.MarkdownPath = flagMarkdown
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	jsonToStdout := strings.Contains(cfg.Output.Format, "json") && cfg.Output.JSONPath == ""
	logging.Init(jsonToStdout, logging.ParseLevel(cfg.Output.Verbosity))

	newSource, err := source.Get(cfg.Input.Format)
	if err != nil {
		return fmt.Errorf("input format %q: available formats are %s",
			cfg.Input.Format, strings.Join(source.Formats(), ", "))
	}

	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	hints := section.DefaultHints()
	if cfg.Input.HintsPath != "" {
		if hints, err = section.LoadHints(cfg.Input.HintsPath); err != nil {
			return err
		}
	}
	out, err := buildOutputs(cfg)
	if err != nil {
		return err
	}

	p := pipeline.New(
		newSource(cfg.Input.PMPath),
		newSource(cfg.Input.ReleasePath),
		eng,
		out,
		pipeline.WithSectionHints(hints),
	)
	defer p.Close()

	summary, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func buildEngine(cfg config.Config) (*engine.Engine, error) {
	reg, err := loadRegistry(cfg.Input.SectionsPath)
	if err != nil {
		return nil, err
	}
	asm, err := assembler.New(reg)
	if err != nil {
		return nil, err
	}

	rules := importance.DefaultRules(cfg.Engine.IncrementThreshold)
	if cfg.Input.RulesPath != "" {
		if rules, err = importance.LoadRules(cfg.Input.RulesPath, cfg.Engine.IncrementThreshold); err != nil {
			return nil, err
		}
	}
	clusters := consolidator.DefaultClusters()
	if cfg.Input.ClustersPath != "" {
		if clusters, err = consolidator.LoadClusters(cfg.Input.ClustersPath); err != nil {
			return nil, err
		}
	}

	return engine.New(
		matcher.New(matcher.Config{TitleThreshold: cfg.Engine.MatchThreshold}),
		importance.New(rules),
		consolidator.New(consolidator.Config{Clusters: clusters, TitleThreshold: cfg.Engine.ConsolidateThreshold}),
		asm,
	), nil
}

func loadRegistry(path string) (*section.Registry, error) {
	if path != "" {
		return section.LoadFile(path)
	}
	return section.New(section.DefaultSections())
}

func buildOutputs(cfg config.Config) (output.Output, error) {
	var outs []output.Output
	for _, format := range strings.Split(cfg.Output.Format, ",") {
		switch strings.TrimSpace(format) {
		case "json":
			if cfg.Output.JSONPath == "" {
				var opts []jsonout.Option
				if flagIndent {
					opts = append(opts, jsonout.WithIndent())
				}
				outs = append(outs, jsonout.New(opts...))
				continue
			}
			opts := []jsonout.Option{jsonout.WithIndent()}
			o, err := jsonout.NewFile(cfg.Output.JSONPath, opts...)
			if err != nil {
				return nil, err
			}
			outs = append(outs, o)
		case "markdown":
			outs = append(outs, markdown.New(cfg.Output.MarkdownPath))
		case "webhook":
			outs = append(outs, webhook.New(cfg.Output.WebhookURL))
		default:
			return nil, fmt.Errorf("unknown output format %q", format)
		}
	}
	if len(outs) == 1 {
		return outs[0], nil
	}
	return multi.New(outs...), nil
}

func printSummary(s pipeline.Summary) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(os.Stderr, "\n%s\n", cyan("=== What's New Merge ==="))
	fmt.Fprintf(os.Stderr, "  %s %d features across %d sections\n",
		green("✓"), s.Document.TotalFeatures, len(s.Document.Sections))
	if len(s.Document.Notable) > 0 {
		fmt.Fprintf(os.Stderr, "  %s %d notable features not in release notes\n",
			green("✓"), len(s.Document.Notable))
	}
	if n := len(s.Report.Filtered); n > 0 {
		fmt.Fprintf(os.Stderr, "  %s %d records filtered out\n", gray("○"), n)
	}
	for _, w := range s.Report.Warnings {
		fmt.Fprintf(os.Stderr, "  %s %s\n", yellow("⚠"), w.Message)
	}
	for _, u := range s.Report.Unsectioned {
		fmt.Fprintf(os.Stderr, "  %s unknown section %q on %q\n", yellow("⚠"), u.SectionKey, u.Title)
	}
	dropped := len(s.PMDropped) + len(s.RNDropped)
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "  %s %d malformed input records skipped\n", yellow("⚠"), dropped)
	}
}
