// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze wires extraction, format checks, section segmentation,
// and limit evaluation into the single pipeline every front end calls.
package analyze

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/pdfcheck/internal/extract"
	"github.com/pdiddy/pdfcheck/internal/format"
	"github.com/pdiddy/pdfcheck/internal/limits"
	"github.com/pdiddy/pdfcheck/internal/report"
	"github.com/pdiddy/pdfcheck/internal/sections"
	"github.com/pdiddy/pdfcheck/pkg/types"
)

// ErrEmptyDocument is returned for a readable document with zero pages.
// There is nothing to measure, so no report is produced.
var ErrEmptyDocument = errors.New("document has no pages")

// Result is one analysis outcome: the complete compliance report plus the
// document facts front ends record alongside it.
type Result struct {
	// Report is the complete compliance report.
	Report *types.ComplianceReport

	// Pages is the analyzed document's page count, zero when the input
	// could not be parsed.
	Pages int
}

// AnalyzeFile checks the PDF at path against the format rules in cfg and
// the per-section page limits in lim, writing warnings to w.
//
// Unparseable input is a verdict, not an error: the result comes back with
// every format check failing, an empty content section, and a nil error.
// A readable document with zero pages returns ErrEmptyDocument. Malformed
// limits are rejected before any extraction work starts.
func AnalyzeFile(ext extract.Extractor, path string, lim types.SectionLimits, cfg types.CheckConfig, w io.Writer) (*Result, error) {
	lim, err := limits.Validate(lim)
	if err != nil {
		return nil, err
	}
	doc, err := ext.Extract(path)
	if err != nil {
		return parseVerdict(err, w)
	}
	return run(doc, lim, cfg)
}

// AnalyzeBytes is AnalyzeFile for a document already held in memory.
func AnalyzeBytes(ext extract.Extractor, data []byte, lim types.SectionLimits, cfg types.CheckConfig, w io.Writer) (*Result, error) {
	lim, err := limits.Validate(lim)
	if err != nil {
		return nil, err
	}
	doc, err := extract.FromBytes(ext, data)
	if err != nil {
		return parseVerdict(err, w)
	}
	return run(doc, lim, cfg)
}

// AnalyzeDocument checks a document that has already been extracted.
func AnalyzeDocument(doc *types.Document, lim types.SectionLimits, cfg types.CheckConfig) (*Result, error) {
	lim, err := limits.Validate(lim)
	if err != nil {
		return nil, err
	}
	return run(doc, lim, cfg)
}

// parseVerdict folds an extraction failure into the all-fail report.
// Errors other than parse failures pass through.
func parseVerdict(err error, w io.Writer) (*Result, error) {
	if errors.Is(err, extract.ErrParse) {
		fmt.Fprintf(w, "warning: %v\n", err)
		return &Result{Report: report.Assemble(format.Failed(), nil)}, nil
	}
	return nil, fmt.Errorf("extracting document: %w", err)
}

func run(doc *types.Document, lim types.SectionLimits, cfg types.CheckConfig) (*Result, error) {
	if doc == nil || doc.PageCount() == 0 {
		return nil, ErrEmptyDocument
	}
	checks, err := format.Check(doc, cfg)
	if err != nil {
		return nil, err
	}
	spans := sections.Segment(doc, cfg.MaxHeadingWords)
	content := limits.Evaluate(sections.Counts(spans), lim)
	return &Result{
		Report: report.Assemble(checks, content),
		Pages:  doc.PageCount(),
	}, nil
}
