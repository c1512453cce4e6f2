package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tyrtlekarma/internal/logging"
)

type entry struct {
	Level logging.Level
	Msg   string
}

func collect(entries *[]entry) logging.Logger {
	return logging.NewFuncLogger(func(level logging.Level, ts time.Time, msg string) {
		*entries = append(*entries, entry{level, msg})
	})
}

func TestAttachLoggerPropagates(t *testing.T) {
	var parent, child []entry
	ctx := logging.AttachLogger(context.Background(), collect(&parent))
	ctx = logging.AttachLogger(ctx, collect(&child))

	logging.Info(ctx, "hello ", 1)
	logging.Debugf(ctx, "n=%d", 2)

	want := []entry{{logging.LevelInfo, "hello 1"}, {logging.LevelDebug, "n=2"}}
	if diff := cmp.Diff(child, want); diff != "" {
		t.Errorf("child logs mismatch (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(parent, want); diff != "" {
		t.Errorf("parent logs mismatch (-got +want):\n%s", diff)
	}
}

func TestWithPrefix(t *testing.T) {
	var got []entry
	ctx := logging.AttachLogger(context.Background(), collect(&got))
	ctx = logging.WithPrefix(ctx, "[a] ")
	ctx = logging.WithPrefix(ctx, "[b] ")
	logging.Info(ctx, "msg")

	want := []entry{{logging.LevelInfo, "[a] [b] msg"}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("logs mismatch (-got +want):\n%s", diff)
	}
}

func TestNoLoggerIsSilent(t *testing.T) {
	ctx := context.Background()
	if logging.HasLogger(ctx) {
		t.Fatal("HasLogger returned true for a bare context")
	}
	logging.Info(ctx, "dropped")
}

func TestConsoleLoggerDropsDebugUnlessVerbose(t *testing.T) {
	var quiet, verbose bytes.Buffer
	logging.NewConsoleLogger(&quiet, false).Log(logging.LevelDebug, time.Now(), "dbg")
	logging.NewConsoleLogger(&verbose, true).Log(logging.LevelDebug, time.Now(), "dbg")

	if quiet.Len() != 0 {
		t.Errorf("quiet logger wrote %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "dbg") {
		t.Errorf("verbose logger output %q does not contain message", verbose.String())
	}
}
