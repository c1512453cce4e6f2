package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultBasePath is the directory served to the harness under /base/
	DefaultBasePath = "."
	// DefaultBasePrefix is stripped from manifest paths
	DefaultBasePrefix = "/base/public/"
	// DefaultTestSuffix marks test files in the manifest
	DefaultTestSuffix = "-test.js"
	// DefaultModuleExt is stripped from module identifiers
	DefaultModuleExt = ".js"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultListenAddr is the default address of the serve command
	DefaultListenAddr = "127.0.0.1:9877"
	// DefaultLoadConcurrency bounds parallel module loading
	DefaultLoadConcurrency = 4
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for test files
var DefaultPathsToIgnore = []string{
	"node_modules",
	"vendor",
	"coverage",
	"storage",
}
