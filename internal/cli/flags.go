package cli

import "tyrtlekarma/internal/config"

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

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath:  f.ProjectPath,
		BasePath:     f.BasePath,
		ManifestFile: f.ManifestFile,
		NameFilter:   f.NameFilter,
		Shards:       f.Shards,
		Shard:        f.Shard,
		SocketURL:    f.SocketURL,
		CoverageFile: f.CoverageFile,
		ListenAddr:   f.ListenAddr,
		JSONLines:    f.JSONLines,
		TestCases:    f.TestCases,
		OpenFaills:   f.OpenFaills,
		SaveDB:       f.SaveDB,
		Verbose:      f.Verbose,
	}
}
