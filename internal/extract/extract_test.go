// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/tsawler/tabula/text"

	"github.com/pdiddy/pdfcheck/pkg/types"
)

// fakeExtractor records the path it was handed and the spooled file's
// content at call time.
type fakeExtractor struct {
	doc *types.Document
	err error

	gotPath    string
	gotContent string
}

func (f *fakeExtractor) Extract(path string) (*types.Document, error) {
	f.gotPath = path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f.gotContent = string(data)
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func TestFromBytes(t *testing.T) {
	want := &types.Document{Pages: []types.Page{{Number: 1}}}
	fake := &fakeExtractor{doc: want}

	got, err := FromBytes(fake, []byte("%PDF-1.7 fake body"))
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}
	if got != want {
		t.Errorf("FromBytes() = %+v, want %+v", got, want)
	}
	if fake.gotContent != "%PDF-1.7 fake body" {
		t.Errorf("spooled content = %q, want the input bytes", fake.gotContent)
	}
	if _, err := os.Stat(fake.gotPath); !os.IsNotExist(err) {
		t.Errorf("temp file %s should be removed after extraction", fake.gotPath)
	}
}

func TestFromBytes_EmptyInput(t *testing.T) {
	_, err := FromBytes(&fakeExtractor{}, nil)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("FromBytes(nil) error = %v, want ErrParse", err)
	}
}

func TestFromBytes_ExtractorError(t *testing.T) {
	fake := &fakeExtractor{err: errors.New("boom")}
	if _, err := FromBytes(fake, []byte("x")); err == nil {
		t.Fatal("FromBytes() should propagate extractor errors")
	}
}

func TestFontSamples(t *testing.T) {
	fragments := []text.TextFragment{
		{Text: "Hello", FontName: "TimesNewRomanPSMT", FontSize: 12},
		{Text: "World", FontName: "TimesNewRomanPSMT", FontSize: 12}, // duplicate pair
		{Text: "Title", FontName: "TimesNewRomanPS-BoldMT", FontSize: 12},
		{Text: "Note", FontName: "TimesNewRomanPSMT", FontSize: 10},
		{Text: ""}, // degenerate fragment carries no sample
	}

	got := fontSamples(fragments)
	want := []types.FontSample{
		{Name: "TimesNewRomanPSMT", Size: 12},
		{Name: "TimesNewRomanPS-BoldMT", Size: 12},
		{Name: "TimesNewRomanPSMT", Size: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fontSamples() = %+v, want %+v", got, want)
	}
}

func TestMeasureMargins(t *testing.T) {
	// Letter page, 612x792. Text box spans x 72..540, y 72..720.
	fragments := []text.TextFragment{
		{Text: "top line", X: 72, Y: 708, Width: 400, Height: 12},
		{Text: "wide line", X: 80, Y: 400, Width: 460, Height: 12},
		{Text: "bottom line", X: 72, Y: 72, Width: 200, Height: 12},
	}

	got := measureMargins(fragments, 612, 792)
	if got == nil {
		t.Fatal("measureMargins() = nil, want measurements")
	}
	want := types.Margins{Top: 72, Bottom: 72, Left: 72, Right: 72}
	if *got != want {
		t.Errorf("measureMargins() = %+v, want %+v", *got, want)
	}
}

func TestMeasureMargins_NothingToMeasure(t *testing.T) {
	if got := measureMargins(nil, 612, 792); got != nil {
		t.Errorf("measureMargins(no fragments) = %+v, want nil", got)
	}
	frag := []text.TextFragment{{Text: "x", X: 1, Y: 1, Width: 1, Height: 1}}
	if got := measureMargins(frag, 0, 0); got != nil {
		t.Errorf("measureMargins(zero page box) = %+v, want nil", got)
	}
}
