// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package limits parses caller-supplied section page limits and evaluates
// detected sections against them.
package limits

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfcheck/internal/sections"
	"github.com/pdiddy/pdfcheck/pkg/types"
)

// ErrMalformed is returned when a limits mapping cannot be used: a
// non-positive or non-integer value, an empty section name, or two keys
// that collide after normalization. Malformed limits are rejected before
// any document work begins.
var ErrMalformed = errors.New("malformed section limits")

// Validate normalizes the keys of a raw limits mapping and rejects
// malformed entries. A nil input stays nil: no limits supplied.
func Validate(raw map[string]int) (types.SectionLimits, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(types.SectionLimits, len(raw))
	for k, v := range raw {
		key := types.NormalizeSectionName(k)
		if key == "" {
			return nil, fmt.Errorf("%w: empty section name %q", ErrMalformed, k)
		}
		if v <= 0 {
			return nil, fmt.Errorf("%w: section %q limit %d is not positive", ErrMalformed, k, v)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("%w: two sections normalize to %q", ErrMalformed, key)
		}
		out[key] = v
	}
	return out, nil
}

// ParseAssignments parses command-line "name=max" pairs into limits.
func ParseAssignments(pairs []string) (types.SectionLimits, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(types.SectionLimits, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not name=max", ErrMalformed, pair)
		}
		key := types.NormalizeSectionName(name)
		if key == "" {
			return nil, fmt.Errorf("%w: %q has an empty section name", ErrMalformed, pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %q has a non-integer limit", ErrMalformed, pair)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%w: section %q limit %d is not positive", ErrMalformed, key, n)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("%w: section %q given twice", ErrMalformed, key)
		}
		out[key] = n
	}
	return out, nil
}

// Parse reads a limits mapping from YAML or JSON bytes (JSON parses as
// YAML). Values must be positive integers.
func Parse(data []byte) (types.SectionLimits, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw == nil {
		return nil, nil
	}
	ints := make(map[string]int, len(raw))
	for k, v := range raw {
		n, ok := asInt(v)
		if !ok {
			return nil, fmt.Errorf("%w: section %q limit %v is not an integer", ErrMalformed, k, v)
		}
		ints[k] = n
	}
	return Validate(ints)
}

// LoadFile reads a limits mapping from a YAML or JSON file.
func LoadFile(path string) (types.SectionLimits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading limits file: %w", err)
	}
	lim, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("limits file %s: %w", path, err)
	}
	return lim, nil
}

// Merge lays explicit limits over a base set, typically a profile. Keys in
// over win; either side may be nil.
func Merge(base, over types.SectionLimits) types.SectionLimits {
	if base == nil && over == nil {
		return nil
	}
	out := make(types.SectionLimits, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Evaluate compares detected section counts against the limits, preserving
// discovery order. A section with no configured limit reports n/a; sections
// named only in the limits are never invented in the output.
func Evaluate(counts []sections.Count, lim types.SectionLimits) []types.SectionResult {
	results := make([]types.SectionResult, len(counts))
	for i, c := range counts {
		r := types.SectionResult{Name: c.Name, Pages: c.Pages, Status: types.StatusNA}
		if limit, ok := lim[c.Name]; ok {
			if c.Pages <= limit {
				r.Status = types.StatusPass
			} else {
				r.Status = types.StatusFail
			}
		}
		results[i] = r
	}
	return results
}

// asInt accepts integer-valued YAML scalars; whole-valued floats count
// because JSON decoders produce them.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}
