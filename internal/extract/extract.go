// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract adapts an external PDF parsing library into the page
// model the compliance checks consume.
package extract

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdiddy/pdfcheck/pkg/types"
)

// ErrParse marks a source that is unreadable, not a well-formed PDF, or
// contains no extractable text. Callers classify with errors.Is.
var ErrParse = errors.New("cannot parse document")

// Extractor produces a page-structured document from a PDF file on disk.
// Implementations wrap a concrete parsing library; tests supply fakes.
type Extractor interface {
	Extract(path string) (*types.Document, error)
}

// FromBytes extracts an in-memory document by spooling it to a temporary
// file, which is removed before returning. The upload and URL front ends
// hand their byte streams here.
func FromBytes(ext Extractor, data []byte) (*types.Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrParse)
	}

	tmp, err := os.CreateTemp("", "pdfcheck-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}

	return ext.Extract(tmp.Name())
}
