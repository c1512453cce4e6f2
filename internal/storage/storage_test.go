package storage

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"tyrtlekarma/internal/config"
	"tyrtlekarma/internal/domain"
	"tyrtlekarma/internal/harness"
)

func recordRun(t *testing.T) []harness.Call {
	t.Helper()
	rec := harness.NewRecorder()
	rec.Info(domain.Info{Total: ldvalue.NewOptionalInt(3)})
	rec.Result(domain.Result{Description: "bar", Suite: []string{"Foo#"}, Success: true, Log: []string{""}, Time: 12})
	rec.Info(domain.Info{Dump: []interface{}{"x"}})
	rec.Result(domain.Result{Description: "baz", Suite: []string{"Foo#"}, Log: []string{"expected 1\ngot 2"}, Time: 4})
	rec.Result(domain.Result{Description: "qux", Suite: []string{"Bar#"}, Log: []string{""}})
	rec.Complete(domain.Completion{Coverage: ldvalue.String("lcov")})
	return rec.Calls()
}

func TestNewRunOutput(t *testing.T) {
	finished := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	out := NewRunOutput("run-1", recordRun(t), 1500*time.Millisecond, finished)

	m := out.Meta
	if m.RunID != "run-1" || m.TotalTests != 3 || m.ExecutedTests != 3 {
		t.Errorf("unexpected counts %+v", m)
	}
	if m.PassedTests != 1 || m.FailedTests != 2 || m.Dumps != 1 {
		t.Errorf("unexpected outcome counts %+v", m)
	}
	if !m.Completed || m.Coverage.StringValue() != "lcov" {
		t.Errorf("expected completed run with coverage, got %+v", m)
	}
	if m.Timestamp != "2026-01-02T03:04:05Z" || m.DurationSeconds != 1.5 {
		t.Errorf("unexpected timing %s %v", m.Timestamp, m.DurationSeconds)
	}

	if len(out.Details) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(out.Details))
	}
	first := out.Details[0]
	if first.Module != "Foo" || first.TestName != "baz" || first.Message != "expected 1\ngot 2" || first.TimeMS != 4 {
		t.Errorf("unexpected failure %+v", first)
	}
}

func TestNewRunOutputIncomplete(t *testing.T) {
	out := NewRunOutput("r", nil, 0, time.Now())
	if out.Meta.Completed {
		t.Error("run without completion must not be marked completed")
	}
	if out.Details == nil || !out.Meta.Coverage.IsNull() {
		t.Errorf("unexpected empty output %+v", out)
	}
}

func TestJSONStorageRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	s := NewJSONStorage(cfg)

	out := NewRunOutput("run-2", recordRun(t), time.Second, time.Now())
	out.Details[1].Resolved = true
	if err := s.Save(out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Meta.RunID != "run-2" || len(loaded.Details) != 2 || !loaded.Details[1].Resolved {
		t.Errorf("unexpected loaded output %+v", loaded)
	}
	if loaded.Meta.Coverage.StringValue() != "lcov" {
		t.Errorf("coverage not preserved: %s", loaded.Meta.Coverage.JSONString())
	}
}

func TestJSONStorageLoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	if _, err := NewJSONStorage(cfg).Load(); err == nil {
		t.Error("expected error for missing results file")
	}
}

func TestDSN(t *testing.T) {
	db := config.Database{Host: "db.local", Port: "3307", User: "ci", Password: "p@ss", Name: "results"}

	parsed, err := mysql.ParseDSN(DSN(db, true))
	if err != nil {
		t.Fatalf("ParseDSN failed: %v", err)
	}
	if parsed.User != "ci" || parsed.Passwd != "p@ss" || parsed.Addr != "db.local:3307" || parsed.DBName != "results" {
		t.Errorf("unexpected DSN %+v", parsed)
	}

	server, err := mysql.ParseDSN(DSN(db, false))
	if err != nil {
		t.Fatalf("ParseDSN failed: %v", err)
	}
	if server.DBName != "" {
		t.Errorf("server DSN must not select a database, got %s", server.DBName)
	}
}

func TestIsValidDatabaseName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"results", true},
		{"ci_results_2", true},
		{"", false},
		{"bad`name", false},
		{"x; DROP TABLE runs", false},
	}
	for _, tt := range tests {
		if got := isValidDatabaseName(tt.name); got != tt.valid {
			t.Errorf("isValidDatabaseName(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}
