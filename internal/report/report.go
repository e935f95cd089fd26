// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles compliance reports and renders them for the
// front ends.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pdiddy/pdfcheck/pkg/types"
)

// Assemble merges the format checks and the evaluated sections into one
// report. It is a pure structural merge: format keys keep their fixed order
// and content keeps segmentation discovery order.
func Assemble(checks types.FormatChecks, results []types.SectionResult) *types.ComplianceReport {
	return &types.ComplianceReport{Format: checks, Content: results}
}

// Render writes the report to w in the named output format: "table"
// (default), "json", or "text".
func Render(rep *types.ComplianceReport, format string, w io.Writer) error {
	switch format {
	case "", "table":
		WriteTable(rep, w)
		return nil
	case "json":
		return WriteJSON(rep, w)
	case "text":
		WriteText(rep, w)
		return nil
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteJSON writes the report's stable JSON shape, indented.
func WriteJSON(rep *types.ComplianceReport, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteTable renders the report as two tables, format checks then sections.
func WriteTable(rep *types.ComplianceReport, w io.Writer) {
	ft := table.NewWriter()
	ft.SetOutputMirror(w)
	ft.SetStyle(table.StyleLight)
	ft.AppendHeader(table.Row{"Format Check", "Result"})
	ft.AppendRow(table.Row{"file_type", string(rep.Format.FileType)})
	ft.AppendRow(table.Row{"font_size", string(rep.Format.FontSize)})
	ft.AppendRow(table.Row{"font_family", string(rep.Format.FontFamily)})
	ft.AppendRow(table.Row{"margin", string(rep.Format.Margin)})
	ft.Render()

	if len(rep.Content) == 0 {
		fmt.Fprintln(w, "(no sections detected)")
		return
	}

	st := table.NewWriter()
	st.SetOutputMirror(w)
	st.SetStyle(table.StyleLight)
	st.AppendHeader(table.Row{"Section", "Pages", "Status"})
	for _, s := range rep.Content {
		st.AppendRow(table.Row{s.Name, s.Pages, string(s.Status)})
	}
	st.Render()
}

// WriteText renders the report as plain fixed-width text, the shape used
// for exported .txt reports.
func WriteText(rep *types.ComplianceReport, w io.Writer) {
	fmt.Fprintln(w, "COMPLIANCE REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 40))

	fmt.Fprintln(w, "Format checks:")
	fmt.Fprintf(w, "  %-14s %s\n", "file_type", rep.Format.FileType)
	fmt.Fprintf(w, "  %-14s %s\n", "font_size", rep.Format.FontSize)
	fmt.Fprintf(w, "  %-14s %s\n", "font_family", rep.Format.FontFamily)
	fmt.Fprintf(w, "  %-14s %s\n", "margin", rep.Format.Margin)

	fmt.Fprintln(w, "Sections:")
	if len(rep.Content) == 0 {
		fmt.Fprintln(w, "  (none detected)")
	}
	for _, s := range rep.Content {
		fmt.Fprintf(w, "  %-24s %2d page(s)  %s\n", s.Name, s.Pages, s.Status)
	}

	fmt.Fprintln(w, strings.Repeat("-", 40))
	if rep.Compliant() {
		fmt.Fprintln(w, "Overall: COMPLIANT")
	} else {
		fmt.Fprintln(w, "Overall: NON-COMPLIANT")
	}
}
