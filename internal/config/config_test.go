package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := New()

	if cfg.BasePrefix != "/base/public/" {
		t.Errorf("expected base prefix /base/public/, got %s", cfg.BasePrefix)
	}
	if cfg.TestSuffix != "-test.js" {
		t.Errorf("expected test suffix -test.js, got %s", cfg.TestSuffix)
	}
	if cfg.ModuleExt != ".js" {
		t.Errorf("expected module extension .js, got %s", cfg.ModuleExt)
	}

	cfg.PathsToIgnore[0] = "changed"
	if DefaultPathsToIgnore[0] == "changed" {
		t.Error("New must copy the default ignore list")
	}
}

func TestConfig_GetBasePath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default path",
			config:   &Config{ProjectPath: ".", BasePath: "."},
			expected: ".",
		},
		{
			name:     "relative base path",
			config:   &Config{ProjectPath: "/project", BasePath: "testdata/base"},
			expected: "/project/testdata/base",
		},
		{
			name:     "absolute base path",
			config:   &Config{ProjectPath: "/project", BasePath: "/srv/base"},
			expected: "/srv/base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetBasePath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvBasePrefix: "/base/src/",
		EnvSocketURL:  "ws://localhost:9877/harness",
		"DB_HOST":     "db",
		"DB_DATABASE": "results",
	}
	cfg := New()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.BasePrefix != "/base/src/" {
		t.Errorf("expected base prefix from env, got %s", cfg.BasePrefix)
	}
	if cfg.TestSuffix != DefaultTestSuffix {
		t.Errorf("unset variable must keep default, got %s", cfg.TestSuffix)
	}
	if cfg.SocketURL != "ws://localhost:9877/harness" {
		t.Errorf("expected socket url from env, got %s", cfg.SocketURL)
	}
	if cfg.Database.Host != "db" || cfg.Database.Name != "results" || cfg.Database.Port != "3306" {
		t.Errorf("unexpected database settings %+v", cfg.Database)
	}
}

func TestConfig_FlagsOverrideEnv(t *testing.T) {
	cfg := New()
	cfg.ApplyEnv(func(k string) string {
		if k == EnvSocketURL {
			return "ws://env"
		}
		return ""
	})
	cfg.ApplyFlags(Flags{SocketURL: "ws://flag", Shards: 3, Shard: 1})

	if cfg.SocketURL != "ws://flag" {
		t.Errorf("expected flag to win, got %s", cfg.SocketURL)
	}
	if cfg.Shards != 3 || cfg.Shard != 1 {
		t.Errorf("expected shard 1 of 3, got %d of %d", cfg.Shard, cfg.Shards)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TYRTLE_TEST_SUFFIX=.spec.js\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvTestSuffix, "")
	os.Unsetenv(EnvTestSuffix)

	cfg, err := Load(Flags{ProjectPath: dir})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TestSuffix != ".spec.js" {
		t.Errorf("expected suffix from .env, got %s", cfg.TestSuffix)
	}
	if cfg.GetOutputPath() != filepath.Join(dir, "storage", "test-results.json") {
		t.Errorf("unexpected output path %s", cfg.GetOutputPath())
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	if _, err := Load(Flags{ProjectPath: t.TempDir()}); err != nil {
		t.Errorf("missing .env must not fail: %v", err)
	}
}
