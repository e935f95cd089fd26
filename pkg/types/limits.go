// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// SectionLimits maps a normalized section name to the maximum number of
// pages the section may span. It is supplied per analysis and never
// persisted by the core.
type SectionLimits map[string]int

// NormalizeSectionName converts heading text or a limits key to the
// canonical section-name form: surrounding whitespace and trailing colons
// stripped, lower-cased, interior whitespace runs collapsed to single
// underscores. "  Executive Summary: " and "EXECUTIVE SUMMARY" both
// normalize to "executive_summary". The segmenter and the limits parser
// share this function so limit keys always match segmentation output.
func NormalizeSectionName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ":")
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), "_")
}
