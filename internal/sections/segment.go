// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections segments a document into named sections using heading
// heuristics and counts how many pages each section spans.
package sections

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/pdfcheck/pkg/types"
)

// defaultMaxHeadingWords bounds the title-case heuristic when the caller
// passes a non-positive limit.
const defaultMaxHeadingWords = 6

// Span is one detected section: its normalized name and the distinct page
// numbers assigned to it, in ascending order. Pages need not be contiguous;
// a heading that recurs later in the document extends its original section.
type Span struct {
	Name  string
	Pages []int
}

// Count is a section's distinct-page total.
type Count struct {
	Name  string
	Pages int
}

// Segment scans the document's pages in order and assigns each page to the
// most recently seen heading's section. The first heading candidate on a
// page decides that page's own membership; every candidate, including later
// ones on the same page, updates the carried section for the pages that
// follow. Pages seen before any heading belong to no section and are
// omitted from the result. The scan is a single fold whose only state is
// the carried section name, so the same document always yields the same
// segmentation.
func Segment(doc *types.Document, maxHeadingWords int) []Span {
	if maxHeadingWords <= 0 {
		maxHeadingWords = defaultMaxHeadingWords
	}

	var spans []Span
	index := make(map[string]int)
	record := func(name string, page int) {
		i, ok := index[name]
		if !ok {
			i = len(spans)
			index[name] = i
			spans = append(spans, Span{Name: name})
		}
		pages := spans[i].Pages
		if len(pages) == 0 || pages[len(pages)-1] != page {
			spans[i].Pages = append(pages, page)
		}
	}

	current := ""
	for _, page := range doc.Pages {
		owner := ""
		for _, line := range page.Lines {
			name, ok := headingName(line.Text, maxHeadingWords)
			if !ok {
				continue
			}
			if owner == "" {
				owner = name
			}
			current = name
		}
		if owner == "" {
			owner = current
		}
		if owner != "" {
			record(owner, page.Number)
		}
	}
	return spans
}

// Counts aggregates spans into per-section distinct page counts, preserving
// discovery order.
func Counts(spans []Span) []Count {
	counts := make([]Count, len(spans))
	for i, s := range spans {
		counts[i] = Count{Name: s.Name, Pages: len(s.Pages)}
	}
	return counts
}

// headingName classifies a line as a heading candidate and returns its
// normalized section name. The predicates are independent and OR-combined,
// evaluated in a fixed order: all-caps, colon-terminated, title-case.
// Normalization is the same whichever predicate matches, so variant
// spellings of one heading ("Skills", "SKILLS:") collapse to one section.
// Candidates whose normalized name is empty are not headings.
func headingName(text string, maxWords int) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	if !isAllCaps(trimmed) && !endsWithColon(trimmed) && !isTitleCase(trimmed, maxWords) {
		return "", false
	}
	name := types.NormalizeSectionName(trimmed)
	if name == "" {
		return "", false
	}
	return name, true
}

// isAllCaps reports whether the line consists of upper-case letters, spaces,
// and punctuation only, with at least one letter and at least two characters
// ("SKILLS", "WORK EXPERIENCE:").
func isAllCaps(s string) bool {
	if utf8.RuneCountInString(s) < 2 {
		return false
	}
	hasLetter := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasLetter = true
		case unicode.IsSpace(r) || unicode.IsPunct(r):
		default:
			return false
		}
	}
	return hasLetter
}

// endsWithColon reports whether the line ends with a colon ("Budget:").
func endsWithColon(s string) bool {
	return strings.HasSuffix(s, ":")
}

// isTitleCase reports whether the line has a short title-case heading shape:
// at most maxWords words, every word starting with an upper-case letter, and
// no trailing sentence punctuation other than a colon ("Executive Summary").
func isTitleCase(s string, maxWords int) bool {
	words := strings.Fields(s)
	if len(words) == 0 || len(words) > maxWords {
		return false
	}
	for _, w := range words {
		first, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(first) {
			return false
		}
	}
	last, _ := utf8.DecodeLastRuneInString(s)
	if last != ':' && unicode.IsPunct(last) {
		return false
	}
	return true
}
