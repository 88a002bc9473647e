// Package logging configures the zerolog logger shared by dtoverlay.
//
// Until [Setup] is called every logger is a no-op, so library users get no
// output unless the command line tool asks for it.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var base = zerolog.Nop()

// LevelFor maps a -v count to a log level.
func LevelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Setup installs a console logger writing to w at the level for verbosity.
// Colors are enabled only when w is a terminal.
func Setup(verbosity int, w io.Writer) {
	level := LevelFor(verbosity)
	zerolog.SetGlobalLevel(level)

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}).Level(level).With().Timestamp().Logger()

	if verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}
	base = logger

	base.Debug().Int("verbosity", verbosity).Msg("logger initialized")
}

// GetLogger returns a logger tagged with the given component name.
func GetLogger(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}
