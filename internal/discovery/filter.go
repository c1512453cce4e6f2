package discovery

import (
	"path"
	"strings"
)

// Filter narrows module identifiers by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the identifiers whose base name matches pattern.
// Supports wildcard patterns like "*math-test" or "*async*"; a pattern
// without wildcards matches as a substring. An empty pattern keeps everything.
func (f *Filter) FilterByName(ids []string, pattern string) []string {
	if pattern == "" {
		return ids
	}

	filtered := []string{}
	for _, id := range ids {
		if matchesName(path.Base(id), pattern) {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

func matchesName(name, pattern string) bool {
	if matched, err := path.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	// Looser match for patterns like "*async*": every literal part must appear
	hasPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		hasPart = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasPart
}
