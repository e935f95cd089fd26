package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfcheck/internal/analyze"
	"github.com/pdiddy/pdfcheck/internal/extract"
	"github.com/pdiddy/pdfcheck/internal/fetch"
	"github.com/pdiddy/pdfcheck/internal/history"
	"github.com/pdiddy/pdfcheck/internal/limits"
	"github.com/pdiddy/pdfcheck/internal/profiles"
	"github.com/pdiddy/pdfcheck/internal/report"
	"github.com/pdiddy/pdfcheck/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|url|->",
	Short: "Analyze a document and print its compliance report",
	Long: `Analyze checks one document against the formatting rules and any
configured section page limits. The argument is a local file path, an
http(s) URL, or - for stdin.

Limits combine per key, most specific last: --profile, then --limits-file,
then repeated --limits name=pages assignments. A document that cannot be
parsed still yields a report with every format check failed.

The exit code is 0 for a compliant document, 1 for a non-compliant one,
and 2 when the analysis itself fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringArray("limits", nil, "section page limit as name=pages (repeatable)")
	analyzeCmd.Flags().String("limits-file", "", "JSON or YAML file of section page limits")
	analyzeCmd.Flags().String("profile", "", "named limit profile (see pdfcheck profiles)")
	analyzeCmd.Flags().String("format", "table", "report format: table, json, or text")
	analyzeCmd.Flags().String("output", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().Bool("save", false, "record the analysis in the history store")
	analyzeCmd.Flags().Bool("quiet", false, "suppress progress and warning output")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	profile, _ := cmd.Flags().GetString("profile")
	limitsFile, _ := cmd.Flags().GetString("limits-file")
	pairs, _ := cmd.Flags().GetStringArray("limits")
	lim, err := assembleLimits(cfg.Profiles.Dir, profile, limitsFile, pairs)
	if err != nil {
		return err
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	progress := io.Writer(os.Stderr)
	if quiet {
		progress = io.Discard
	}

	source := args[0]
	res, err := analyzeSource(extract.NewTabula(), source, lim, cfg, progress)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	if err := writeReport(res.Report, format, output, progress); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		id, err := saveAnalysis(context.Background(), cfg.History.Path, sourceLabel(source), res)
		if err != nil {
			return err
		}
		fmt.Fprintf(progress, "saved analysis %s\n", id)
	}

	if !res.Report.Compliant() {
		exitCode = 1
	}
	return nil
}

// analyzeSource runs the core on a local file, stdin, or a URL. Progress
// and parse warnings go to w so the report stream stays clean.
func analyzeSource(ext extract.Extractor, source string, lim types.SectionLimits, cfg types.Config, w io.Writer) (*analyze.Result, error) {
	switch {
	case source == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return analyze.AnalyzeBytes(ext, data, lim, cfg.Check, w)
	case fetch.IsURL(source):
		fmt.Fprintf(w, "downloading: %s\n", source)
		data, err := fetch.Fetch(context.Background(), source, cfg.Fetch)
		if err != nil {
			return nil, err
		}
		return analyze.AnalyzeBytes(ext, data, lim, cfg.Check, w)
	default:
		return analyze.AnalyzeFile(ext, source, lim, cfg.Check, w)
	}
}

// assembleLimits combines the three limit sources key by key: profile
// values first, then the limits file, then individual assignments.
func assembleLimits(profilesDir, profile, limitsFile string, pairs []string) (types.SectionLimits, error) {
	var lim types.SectionLimits

	if profile != "" {
		p, err := profiles.Get(profilesDir, profile)
		if err != nil {
			return nil, err
		}
		lim = p
	}
	if limitsFile != "" {
		fromFile, err := limits.LoadFile(limitsFile)
		if err != nil {
			return nil, err
		}
		lim = limits.Merge(lim, fromFile)
	}
	if len(pairs) > 0 {
		fromFlags, err := limits.ParseAssignments(pairs)
		if err != nil {
			return nil, err
		}
		lim = limits.Merge(lim, fromFlags)
	}
	return lim, nil
}

func writeReport(rep *types.ComplianceReport, format, output string, progress io.Writer) error {
	w := io.Writer(os.Stdout)
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := report.Render(rep, format, w); err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(progress, "report written to %s\n", output)
	}
	return nil
}

func saveAnalysis(ctx context.Context, path, source string, res *analyze.Result) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--save requires history.path in the config file or PDFCHECK_HISTORY_PATH")
	}
	store, err := history.NewStore(path)
	if err != nil {
		return "", err
	}
	defer store.Close()

	return store.Save(ctx, types.AnalysisRecord{
		Source:    source,
		Pages:     res.Pages,
		Sections:  len(res.Report.Content),
		Compliant: res.Report.Compliant(),
		Report:    *res.Report,
	})
}

// sourceLabel names the analyzed input for the history record.
func sourceLabel(source string) string {
	if source == "-" {
		return "stdin"
	}
	return source
}
