// Package cli implements the mwis command-line interface.
//
// # Commands
//
//   - solve: select a maximum-weight independent set from a graph file
//   - render: draw the graph with the selection highlighted (SVG, PNG, DOT)
//   - demo: run the built-in sample graph
//   - serve: run the HTTP API
//   - cache: inspect or clear the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Settings are
// read from --config or the default config file; flags override them.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Extra key/value pairs are passed through.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "duration", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
