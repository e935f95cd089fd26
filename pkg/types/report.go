// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CheckStatus is the outcome of a single compliance check.
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusFail CheckStatus = "fail"
	// StatusNA marks a section that has a page count but no configured limit.
	StatusNA CheckStatus = "n/a"
)

// FormatChecks holds the four page-1 formatting check outcomes.
type FormatChecks struct {
	// FileType reports whether the source parsed as a well-formed document.
	FileType CheckStatus `json:"file_type" yaml:"file_type"`

	// FontSize reports whether every page-1 font sample matches the
	// required size.
	FontSize CheckStatus `json:"font_size" yaml:"font_size"`

	// FontFamily reports whether every page-1 font sample matches the
	// required family.
	FontFamily CheckStatus `json:"font_family" yaml:"font_family"`

	// Margin reports whether all four page-1 margins fall within tolerance.
	Margin CheckStatus `json:"margin" yaml:"margin"`
}

// AllPass reports whether every formatting check passed.
func (f FormatChecks) AllPass() bool {
	return f.FileType == StatusPass && f.FontSize == StatusPass &&
		f.FontFamily == StatusPass && f.Margin == StatusPass
}

// SectionResult is one detected section's page count and limit outcome.
type SectionResult struct {
	// Name is the normalized section name.
	Name string `json:"name" yaml:"name"`

	// Pages is the number of distinct pages the section spans.
	Pages int `json:"pages" yaml:"pages"`

	// Status is pass/fail against the caller's limit, or n/a when the
	// section has no configured limit.
	Status CheckStatus `json:"status" yaml:"status"`
}

// ComplianceReport is the complete result of one document analysis.
// Content preserves section discovery order; the JSON form is the stable
// two-map shape consumed by the front ends:
//
//	{"format": {"file_type": "pass", ...},
//	 "content": {"skills_pages": 2, "skills": "pass", ...}}
type ComplianceReport struct {
	Format  FormatChecks
	Content []SectionResult
}

// Compliant reports whether no check in the report failed. Sections with
// status n/a do not count against compliance.
func (r *ComplianceReport) Compliant() bool {
	if !r.Format.AllPass() {
		return false
	}
	for _, s := range r.Content {
		if s.Status == StatusFail {
			return false
		}
	}
	return true
}

// Section returns the result for the named section and whether it exists.
func (r *ComplianceReport) Section(name string) (SectionResult, bool) {
	for _, s := range r.Content {
		if s.Name == name {
			return s, true
		}
	}
	return SectionResult{}, false
}

// pagesSuffix distinguishes page-count keys from status keys in the
// serialized content map.
const pagesSuffix = "_pages"

// MarshalJSON writes the stable report shape: format keys in declaration
// order, then for each section (discovery order) its count key and status key.
func (r ComplianceReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"format":`)
	format, err := json.Marshal(r.Format)
	if err != nil {
		return nil, err
	}
	buf.Write(format)
	buf.WriteString(`,"content":{`)
	for i, s := range r.Content {
		if i > 0 {
			buf.WriteByte(',')
		}
		countKey, err := json.Marshal(s.Name + pagesSuffix)
		if err != nil {
			return nil, err
		}
		buf.Write(countKey)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(s.Pages))
		buf.WriteByte(',')
		nameKey, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(nameKey)
		buf.WriteByte(':')
		status, err := json.Marshal(s.Status)
		if err != nil {
			return nil, err
		}
		buf.Write(status)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a report from its serialized shape, preserving the
// content key order. Count keys are recognized by the _pages suffix and a
// numeric value; status keys by a string value.
func (r *ComplianceReport) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("compliance report: %w", err)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("compliance report: unexpected token %v", keyTok)
		}
		switch key {
		case "format":
			if err := dec.Decode(&r.Format); err != nil {
				return fmt.Errorf("compliance report format: %w", err)
			}
		case "content":
			if err := r.decodeContent(dec); err != nil {
				return fmt.Errorf("compliance report content: %w", err)
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
		}
	}
	_, err := dec.Token()
	return err
}

func (r *ComplianceReport) decodeContent(dec *json.Decoder) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	r.Content = nil
	index := make(map[string]int)
	entry := func(name string) *SectionResult {
		if i, ok := index[name]; ok {
			return &r.Content[i]
		}
		index[name] = len(r.Content)
		r.Content = append(r.Content, SectionResult{Name: name})
		return &r.Content[len(r.Content)-1]
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := valTok.(type) {
		case json.Number:
			pages, err := strconv.Atoi(v.String())
			if err != nil {
				return fmt.Errorf("key %q: %w", key, err)
			}
			entry(strings.TrimSuffix(key, pagesSuffix)).Pages = pages
		case string:
			entry(key).Status = CheckStatus(v)
		default:
			return fmt.Errorf("key %q: unexpected value %v", key, valTok)
		}
	}
	_, err := dec.Token()
	return err
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
