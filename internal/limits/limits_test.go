// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package limits

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/pdfcheck/internal/sections"
	"github.com/pdiddy/pdfcheck/pkg/types"
)

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    types.SectionLimits
		wantErr bool
	}{
		{
			name:  "simple pairs",
			pairs: []string{"skills=2", "experience=3"},
			want:  types.SectionLimits{"skills": 2, "experience": 3},
		},
		{
			name:  "keys are normalized",
			pairs: []string{"Executive Summary=2", "BUDGET:=1"},
			want:  types.SectionLimits{"executive_summary": 2, "budget": 1},
		},
		{
			name:  "no pairs means no limits",
			pairs: nil,
			want:  nil,
		},
		{
			name:    "missing equals sign",
			pairs:   []string{"skills"},
			wantErr: true,
		},
		{
			name:    "non-integer limit",
			pairs:   []string{"skills=two"},
			wantErr: true,
		},
		{
			name:    "zero limit",
			pairs:   []string{"skills=0"},
			wantErr: true,
		},
		{
			name:    "negative limit",
			pairs:   []string{"skills=-1"},
			wantErr: true,
		},
		{
			name:    "empty section name",
			pairs:   []string{"=3"},
			wantErr: true,
		},
		{
			name:    "duplicate after normalization",
			pairs:   []string{"skills=2", "SKILLS=3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAssignments(tt.pairs)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("ParseAssignments() error = %v, want ErrMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAssignments() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAssignments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    types.SectionLimits
		wantErr bool
	}{
		{
			name: "yaml mapping",
			data: "skills: 2\nexperience: 3\n",
			want: types.SectionLimits{"skills": 2, "experience": 3},
		},
		{
			name: "json mapping",
			data: `{"skills": 2, "education": 1}`,
			want: types.SectionLimits{"skills": 2, "education": 1},
		},
		{
			name: "keys normalized on load",
			data: "Executive Summary: 2\n",
			want: types.SectionLimits{"executive_summary": 2},
		},
		{
			name: "empty document means no limits",
			data: "",
			want: nil,
		},
		{
			name:    "fractional limit",
			data:    "skills: 2.5\n",
			wantErr: true,
		},
		{
			name:    "string limit",
			data:    "skills: two\n",
			wantErr: true,
		},
		{
			name:    "non-positive limit",
			data:    "skills: 0\n",
			wantErr: true,
		},
		{
			name:    "colliding keys",
			data:    "Skills: 2\nSKILLS: 3\n",
			wantErr: true,
		},
		{
			name:    "not a mapping",
			data:    "- skills\n- experience\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("Parse() error = %v, want ErrMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "limits.yaml")
	if err := os.WriteFile(path, []byte("summary: 1\nskills: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	want := types.SectionLimits{"summary": 1, "skills": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadFile() = %v, want %v", got, want)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile() on a missing file should error")
	}
}

func TestEvaluate(t *testing.T) {
	counts := []sections.Count{
		{Name: "skills", Pages: 2},
		{Name: "experience", Pages: 4},
		{Name: "budget", Pages: 1},
	}
	lim := types.SectionLimits{
		"skills":     2,
		"experience": 3,
		"appendix":   10, // never detected; must not appear in output
	}

	got := Evaluate(counts, lim)
	want := []types.SectionResult{
		{Name: "skills", Pages: 2, Status: types.StatusPass},
		{Name: "experience", Pages: 4, Status: types.StatusFail},
		{Name: "budget", Pages: 1, Status: types.StatusNA},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Evaluate() = %+v, want %+v", got, want)
	}
}

func TestEvaluate_NoLimits(t *testing.T) {
	counts := []sections.Count{{Name: "skills", Pages: 2}}

	got := Evaluate(counts, nil)
	if len(got) != 1 || got[0].Status != types.StatusNA {
		t.Errorf("Evaluate() with nil limits = %+v, want n/a statuses", got)
	}
}

func TestMerge(t *testing.T) {
	base := types.SectionLimits{"skills": 2, "experience": 3}
	over := types.SectionLimits{"skills": 5, "summary": 1}

	got := Merge(base, over)
	want := types.SectionLimits{"skills": 5, "experience": 3, "summary": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() = %+v, want %+v", got, want)
	}
	if base["skills"] != 2 {
		t.Error("Merge() must not mutate its inputs")
	}

	if got := Merge(nil, nil); got != nil {
		t.Errorf("Merge(nil, nil) = %+v, want nil", got)
	}
	if got := Merge(nil, over); !reflect.DeepEqual(got, over) {
		t.Errorf("Merge(nil, over) = %+v, want %+v", got, over)
	}
}
