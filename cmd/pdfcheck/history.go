// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfcheck/internal/history"
	"github.com/pdiddy/pdfcheck/internal/report"
	"github.com/pdiddy/pdfcheck/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved analyses (list, show, export)",
	Long: `History manages the local store of saved analysis runs. Runs are
recorded by analyze --save and by the HTTP front end when a store is
configured. The store location comes from history.path in the config.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved analyses, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory(loadConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(records, jsonOutput)
}

func formatHistoryOutput(records []types.AnalysisRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No saved analyses.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-16s  %-40s  %5s  %s\n",
		"ID", "Created", "Source", "Pages", "Compliant")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range records {
		source := r.Source
		if len(source) > 40 {
			source = source[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-16s  %-40s  %5d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), source, r.Pages, yesNo(r.Compliant))
	}

	fmt.Fprintf(os.Stdout, "\n%d analyses\n", len(records))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved analysis with its full report",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistory(loadConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("ID:        %s\n", rec.ID)
	fmt.Printf("Created:   %s\n", rec.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Source:    %s\n", rec.Source)
	fmt.Printf("Pages:     %d\n", rec.Pages)
	fmt.Printf("Compliant: %s\n", yesNo(rec.Compliant))
	fmt.Println()

	format, _ := cmd.Flags().GetString("format")
	return report.Render(&rec.Report, format, os.Stdout)
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export one saved analysis as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := openHistory(loadConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return store.Export(context.Background(), args[0], os.Stdout)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := store.Export(context.Background(), args[0], f); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", output)
	return nil
}

// --- shared helpers ---

func openHistory(cfg types.Config) (*history.Store, error) {
	if cfg.History.Path == "" {
		return nil, fmt.Errorf("history is not configured: set history.path in the config file or PDFCHECK_HISTORY_PATH")
	}
	return history.NewStore(cfg.History.Path)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "maximum analyses to list (0 = use default)")
	historyListCmd.Flags().Bool("json", false, "output records as JSON")

	historyShowCmd.Flags().String("format", "table", "report format: table, json, or text")

	historyExportCmd.Flags().String("output", "", "write the export to a file instead of stdout")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
