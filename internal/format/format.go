// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format validates a document's page-1 formatting attributes
// against the configured compliance rules.
package format

import (
	"errors"
	"math"
	"strings"

	"github.com/pdiddy/pdfcheck/pkg/types"
)

// pointsPerInch converts the inch-based margin rule to the extractor's
// point-based measurements.
const pointsPerInch = 72.0

// Check inspects the first page only and reports the four formatting
// checks. The document must have been parsed already, so file_type always
// passes here; the all-fail shape for unparseable input comes from Failed.
// A zero-page document is a precondition failure, not a defaulted result.
// Later pages are never inspected.
func Check(doc *types.Document, cfg types.CheckConfig) (types.FormatChecks, error) {
	if doc == nil || doc.PageCount() == 0 {
		return Failed(), errors.New("document has no pages")
	}

	def := types.DefaultCheckConfig()
	if cfg.FontSizePoints <= 0 {
		cfg.FontSizePoints = def.FontSizePoints
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = def.FontFamily
	}
	if cfg.MarginInches <= 0 {
		cfg.MarginInches = def.MarginInches
	}
	if cfg.MarginToleranceInches <= 0 {
		cfg.MarginToleranceInches = def.MarginToleranceInches
	}

	page := doc.FirstPage()
	return types.FormatChecks{
		FileType:   types.StatusPass,
		FontSize:   fontSizeStatus(page.Fonts, cfg.FontSizePoints),
		FontFamily: fontFamilyStatus(page.Fonts, cfg.FontFamily),
		Margin:     marginStatus(page.Margins, cfg.MarginInches, cfg.MarginToleranceInches),
	}, nil
}

// Failed returns the check set reported when parsing fails: every check
// fails because no page-1 data exists to inspect.
func Failed() types.FormatChecks {
	return types.FormatChecks{
		FileType:   types.StatusFail,
		FontSize:   types.StatusFail,
		FontFamily: types.StatusFail,
		Margin:     types.StatusFail,
	}
}

// fontSizeStatus passes when every sample, rounded to the nearest integer
// point, equals the required size. No samples means fail.
func fontSizeStatus(fonts []types.FontSample, want int) types.CheckStatus {
	if len(fonts) == 0 {
		return types.StatusFail
	}
	for _, f := range fonts {
		if int(math.Round(f.Size)) != want {
			return types.StatusFail
		}
	}
	return types.StatusPass
}

// fontFamilyStatus passes when every sample's name contains the required
// substring after lower-casing and whitespace removal, which tolerates
// subset-prefixed names like "ABCDEF+TimesNewRomanPSMT". The comparison is
// AND over samples: page 1 must be font-consistent. No samples means fail.
func fontFamilyStatus(fonts []types.FontSample, want string) types.CheckStatus {
	if len(fonts) == 0 {
		return types.StatusFail
	}
	want = squash(want)
	for _, f := range fonts {
		if !strings.Contains(squash(f.Name), want) {
			return types.StatusFail
		}
	}
	return types.StatusPass
}

// marginStatus passes when all four measured margins fall within the
// configured target ± tolerance. An unmeasured margin set fails closed.
func marginStatus(m *types.Margins, inches, toleranceInches float64) types.CheckStatus {
	if m == nil {
		return types.StatusFail
	}
	target := inches * pointsPerInch
	tolerance := toleranceInches * pointsPerInch
	for _, side := range []float64{m.Top, m.Bottom, m.Left, m.Right} {
		if math.Abs(side-target) > tolerance {
			return types.StatusFail
		}
	}
	return types.StatusPass
}

// squash lower-cases a font name and removes all whitespace.
func squash(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
