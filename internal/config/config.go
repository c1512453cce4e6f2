package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables read by Apply
const (
	EnvBasePrefix = "TYRTLE_BASE_PREFIX"
	EnvTestSuffix = "TYRTLE_TEST_SUFFIX"
	EnvSocketURL  = "TYRTLE_SOCKET_URL"
	EnvCoverage   = "TYRTLE_COVERAGE_FILE"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	BasePath    string

	// Discovery settings
	BasePrefix   string
	TestSuffix   string
	ModuleExt    string
	ManifestFile string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Harness settings
	SocketURL    string
	CoverageFile string
	ListenAddr   string

	// Execution settings
	LoadConcurrency int
	Shards          int
	Shard           int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Database settings
	Database Database

	// Command flags
	Flags Flags
}

// Database holds MySQL connection settings
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Flags holds command-line flags
type Flags struct {
	ProjectPath  string
	BasePath     string
	ManifestFile string
	NameFilter   string
	Shards       int
	Shard        int
	SocketURL    string
	CoverageFile string
	ListenAddr   string
	JSONLines    bool
	TestCases    bool
	OpenFaills   bool
	SaveDB       bool
	Verbose      bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:     DefaultProjectPath,
		BasePath:        DefaultBasePath,
		BasePrefix:      DefaultBasePrefix,
		TestSuffix:      DefaultTestSuffix,
		ModuleExt:       DefaultModuleExt,
		OutputJSONFile:  DefaultOutputJSONFile,
		OutputJSONDir:   DefaultOutputJSONDir,
		ListenAddr:      DefaultListenAddr,
		LoadConcurrency: DefaultLoadConcurrency,
		Database: Database{
			Host: "127.0.0.1",
			Port: "3306",
			User: "root",
			Name: "tyrtlekarma",
		},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config from defaults, the project's .env file, the
// environment and flags, in increasing order of precedence.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if flags.ProjectPath != "" {
		cfg.ProjectPath = flags.ProjectPath
	}
	if err := LoadEnvFile(filepath.Join(cfg.ProjectPath, ".env")); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	cfg.ApplyFlags(flags)
	return cfg, nil
}

// LoadEnvFile loads variables from path into the process environment.
// Variables that are already set are kept. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnv overrides settings from environment variables looked up with getenv
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.BasePrefix, EnvBasePrefix)
	set(&c.TestSuffix, EnvTestSuffix)
	set(&c.SocketURL, EnvSocketURL)
	set(&c.CoverageFile, EnvCoverage)
	set(&c.Database.Host, "DB_HOST")
	set(&c.Database.Port, "DB_PORT")
	set(&c.Database.User, "DB_USERNAME")
	set(&c.Database.Password, "DB_PASSWORD")
	set(&c.Database.Name, "DB_DATABASE")
}

// ApplyFlags overrides settings with the flags that were given
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.ProjectPath != "" {
		c.ProjectPath = flags.ProjectPath
	}
	if flags.BasePath != "" {
		c.BasePath = flags.BasePath
	}
	if flags.ManifestFile != "" {
		c.ManifestFile = flags.ManifestFile
	}
	if flags.SocketURL != "" {
		c.SocketURL = flags.SocketURL
	}
	if flags.CoverageFile != "" {
		c.CoverageFile = flags.CoverageFile
	}
	if flags.ListenAddr != "" {
		c.ListenAddr = flags.ListenAddr
	}
	if flags.Shards > 0 {
		c.Shards = flags.Shards
		c.Shard = flags.Shard
	}
}

// GetBasePath returns the directory served as /base/, relative to the project
// unless it is absolute
func (c *Config) GetBasePath() string {
	if filepath.IsAbs(c.BasePath) {
		return c.BasePath
	}
	return filepath.Join(c.ProjectPath, c.BasePath)
}

// GetOutputPath returns the full path to the output JSON file (under project so run and faills use the same file).
// Resolves to an absolute path so run and faills always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
