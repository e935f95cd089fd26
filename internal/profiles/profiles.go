// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profiles provides named section-limit presets. Built-in profiles
// cover common document shapes; user profiles are loaded from a directory
// of <name>.yaml or <name>.json limit files, where the filename is the
// profile name.
package profiles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/pdfcheck/internal/limits"
	"github.com/pdiddy/pdfcheck/pkg/types"
)

// ErrUnknown is returned when no profile has the requested name.
var ErrUnknown = errors.New("unknown profile")

var builtins = map[string]types.SectionLimits{
	"resume": {
		"skills":     2,
		"experience": 3,
		"education":  1,
		"summary":    1,
	},
	"report": {
		"executive_summary": 2,
		"methodology":       3,
		"results":           5,
		"appendix":          10,
	},
}

// Builtin returns a copy of the named built-in profile.
func Builtin(name string) (types.SectionLimits, bool) {
	lim, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return clone(lim), true
}

// Load returns every available profile: the built-ins plus any profile
// files found in dir. A user profile with a built-in's name overrides it.
// An empty or missing dir yields the built-ins alone; a malformed profile
// file is an error, never silently skipped.
func Load(dir string) (map[string]types.SectionLimits, error) {
	all := make(map[string]types.SectionLimits, len(builtins))
	for name, lim := range builtins {
		all[name] = clone(lim)
	}
	if dir == "" {
		return all, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return all, nil
		}
		return nil, fmt.Errorf("reading profiles directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}
		lim, err := limits.LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		all[strings.TrimSuffix(name, ext)] = lim
	}
	return all, nil
}

// Get returns the named profile, looking in dir first and the built-ins
// second.
func Get(dir, name string) (types.SectionLimits, error) {
	all, err := Load(dir)
	if err != nil {
		return nil, err
	}
	lim, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return lim, nil
}

// Names returns the profile names in sorted order.
func Names(all map[string]types.SectionLimits) []string {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clone(lim types.SectionLimits) types.SectionLimits {
	out := make(types.SectionLimits, len(lim))
	for k, v := range lim {
		out[k] = v
	}
	return out
}
