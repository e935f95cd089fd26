// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FontSample is a single font observation taken from the first page of a
// document. Name is the font name as reported by the parser, which may carry
// an embedded-subset prefix (e.g. "ABCDEF+TimesNewRomanPSMT").
type FontSample struct {
	// Name is the reported font family name.
	Name string `json:"name" yaml:"name"`

	// Size is the font size in points.
	Size float64 `json:"size" yaml:"size"`
}

// Margins holds the measured page margins in PDF points (72 per inch),
// derived from the gap between the page edges and the text bounding box.
type Margins struct {
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
}

// TextLine is one extracted line of text on a page.
type TextLine struct {
	// Text is the raw line content.
	Text string `json:"text" yaml:"text"`

	// Top is the line's distance from the top of the page in points.
	// Lines within a page are ordered top to bottom.
	Top float64 `json:"top" yaml:"top"`
}

// Page is one page of an extracted document.
type Page struct {
	// Number is the 1-indexed page number.
	Number int `json:"number" yaml:"number"`

	// Lines holds the page's text lines in top-to-bottom order.
	Lines []TextLine `json:"lines" yaml:"lines"`

	// Fonts holds font samples. Populated on the first page only;
	// later pages are never sampled.
	Fonts []FontSample `json:"fonts,omitempty" yaml:"fonts,omitempty"`

	// Margins holds measured margins. Populated on the first page only;
	// nil when no measurement could be derived.
	Margins *Margins `json:"margins,omitempty" yaml:"margins,omitempty"`
}

// Document is a page-structured document as returned by the extractor.
// It is immutable once extracted; analyses never modify it.
type Document struct {
	// Pages holds the document pages in order, numbered from 1.
	Pages []Page `json:"pages" yaml:"pages"`
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// FirstPage returns the first page, or nil for an empty document.
func (d *Document) FirstPage() *Page {
	if len(d.Pages) == 0 {
		return nil
	}
	return &d.Pages[0]
}
