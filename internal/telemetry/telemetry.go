// Package telemetry sets up the structured logger threaded through the
// optimizer and trajectory packages, the way damir5-kosarica's
// internal/telemetry/telemetry.go configures zerolog for its service.
package telemetry

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to w (os.Stderr if nil) at level,
// tagged with component="shelfopt" so a driver aggregating logs from
// several trajectories can filter on it.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("component", "shelfopt").
		Logger()
}

// Nop returns a logger that discards everything, for callers (tests,
// library consumers that supply their own logger) that don't want
// trajectory logging.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
