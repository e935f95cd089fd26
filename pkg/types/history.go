// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AnalysisRecord is one saved analysis run in the history store.
type AnalysisRecord struct {
	// ID is a generated UUID identifying the run.
	ID string `json:"id" yaml:"id"`

	// CreatedAt is when the analysis ran (UTC).
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Source names the analyzed input: a file path, URL, or upload filename.
	Source string `json:"source" yaml:"source"`

	// Pages is the analyzed document's page count.
	Pages int `json:"pages" yaml:"pages"`

	// Sections is the number of sections segmentation found.
	Sections int `json:"sections" yaml:"sections"`

	// Compliant mirrors Report.Compliant() at save time.
	Compliant bool `json:"compliant" yaml:"compliant"`

	// Report is the full compliance report.
	Report ComplianceReport `json:"report" yaml:"report"`
}
