package discovery

import (
	"strings"

	"tyrtlekarma/internal/domain"
)

const (
	// DefaultBasePrefix is stripped from manifest paths to form module identifiers
	DefaultBasePrefix = "/base/public/"
	// DefaultTestSuffix selects test files among the manifest paths
	DefaultTestSuffix = "-test.js"
	// DefaultModuleExt is stripped from the end of module identifiers
	DefaultModuleExt = ".js"
)

// Options controls how manifest paths become module identifiers
type Options struct {
	BasePrefix string
	TestSuffix string
	ModuleExt  string
}

// DefaultOptions returns the options matching the harness's default layout
func DefaultOptions() Options {
	return Options{
		BasePrefix: DefaultBasePrefix,
		TestSuffix: DefaultTestSuffix,
		ModuleExt:  DefaultModuleExt,
	}
}

// Discover returns the module identifier of every test file in the manifest,
// in manifest order. Paths that are not test files are ignored.
func Discover(m *domain.Manifest, opts Options) []string {
	ids := []string{}
	for _, path := range m.Keys() {
		if !strings.HasSuffix(path, opts.TestSuffix) {
			continue
		}
		ids = append(ids, Identifier(path, opts))
	}
	return ids
}

// Identifier strips the base prefix and the module extension from a manifest path
func Identifier(path string, opts Options) string {
	id := strings.TrimPrefix(path, opts.BasePrefix)
	return strings.TrimSuffix(id, opts.ModuleExt)
}
