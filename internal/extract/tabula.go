// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"math"
	"strings"

	"github.com/tsawler/tabula/layout"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/text"

	"github.com/pdiddy/pdfcheck/pkg/types"
)

// Tabula is the production extractor backed by github.com/tsawler/tabula.
// The zero value is ready to use.
type Tabula struct{}

// NewTabula returns the tabula-backed extractor.
func NewTabula() *Tabula {
	return &Tabula{}
}

// Extract parses the PDF at path. Every page yields its text lines in
// top-to-bottom order; the first page additionally yields font samples and
// margin measurements. Unreadable sources and documents with no extractable
// text wrap ErrParse.
func (t *Tabula) Extract(path string) (*types.Document, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	doc := &types.Document{}
	sawText := false
	for i := 0; i < count; i++ {
		page, err := r.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrParse, i+1, err)
		}
		width, err := page.Width()
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrParse, i+1, err)
		}
		height, err := page.Height()
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrParse, i+1, err)
		}
		fragments, err := r.ExtractTextFragments(page)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrParse, i+1, err)
		}

		p := types.Page{
			Number: i + 1,
			Lines:  pageLines(fragments, width, height),
		}
		if len(p.Lines) > 0 {
			sawText = true
		}
		if i == 0 {
			p.Fonts = fontSamples(fragments)
			p.Margins = measureMargins(fragments, width, height)
		}
		doc.Pages = append(doc.Pages, p)
	}

	if count > 0 && !sawText {
		return nil, fmt.Errorf("%w: no extractable text", ErrParse)
	}
	return doc, nil
}

// pageLines groups raw fragments into visual lines, keeping the detector's
// top-to-bottom ordering and dropping blank lines.
func pageLines(fragments []text.TextFragment, width, height float64) []types.TextLine {
	if len(fragments) == 0 {
		return nil
	}
	detected := layout.NewLineDetector().Detect(fragments, width, height)
	lines := make([]types.TextLine, 0, len(detected.Lines))
	for _, ln := range detected.Lines {
		if strings.TrimSpace(ln.Text) == "" {
			continue
		}
		lines = append(lines, types.TextLine{
			Text: ln.Text,
			Top:  height - (ln.BBox.Y + ln.BBox.Height),
		})
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

// fontSamples collects the distinct (name, size) pairs from the fragments
// in first-appearance order.
func fontSamples(fragments []text.TextFragment) []types.FontSample {
	var samples []types.FontSample
	seen := make(map[string]bool)
	for _, f := range fragments {
		if f.FontName == "" && f.FontSize == 0 {
			continue
		}
		key := fmt.Sprintf("%s/%g", f.FontName, f.FontSize)
		if seen[key] {
			continue
		}
		seen[key] = true
		samples = append(samples, types.FontSample{Name: f.FontName, Size: f.FontSize})
	}
	return samples
}

// measureMargins derives the four margins from the gap between the page box
// and the union of the fragment boxes. PDF Y grows upward, so the top
// margin is measured against the page height. Returns nil when there is
// nothing to measure, and the margin check fails closed on nil.
func measureMargins(fragments []text.TextFragment, width, height float64) *types.Margins {
	if len(fragments) == 0 || width <= 0 || height <= 0 {
		return nil
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, f := range fragments {
		minX = math.Min(minX, f.X)
		minY = math.Min(minY, f.Y)
		maxX = math.Max(maxX, f.X+f.Width)
		maxY = math.Max(maxY, f.Y+f.Height)
	}
	return &types.Margins{
		Top:    height - maxY,
		Bottom: minY,
		Left:   minX,
		Right:  width - maxX,
	}
}
