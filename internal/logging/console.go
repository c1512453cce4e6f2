package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// NewConsoleLogger returns a Logger writing timestamped lines to w.
// Debug logs are dropped unless verbose is set.
func NewConsoleLogger(w io.Writer, verbose bool) *FuncLogger {
	debug := color.New(color.Faint)
	return NewFuncLogger(func(level Level, ts time.Time, msg string) {
		if level < LevelInfo && !verbose {
			return
		}
		line := fmt.Sprintf("[%s] %s", ts.Format(timestampFormat), msg)
		if level == LevelDebug {
			line = debug.Sprint(line)
		}
		fmt.Fprintln(w, line)
	})
}
