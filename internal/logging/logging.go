// Package logging configures the process-wide zerolog logger.
//
// Console output goes to stderr at a level chosen by the -v count; a JSON
// copy of everything is appended to a log file under the XDG state dir so
// verbose runs can be reconstructed after the fact.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/depstage-labs/depstage/internal/branding"
)

// Setup configures the global logger based on verbosity: 0 warn, 1 info,
// 2 debug, 3+ trace. logFile overrides the default state-dir location;
// "-" disables file logging entirely.
func Setup(verbosity int, logFile string) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	writers := []io.Writer{console}

	var fileErr error
	path := logFile
	if path != "-" {
		if path == "" {
			path, fileErr = xdg.StateFile(branding.CLIName() + "/" + branding.CLIName() + ".log")
		}
		if fileErr == nil {
			var f *os.File
			f, fileErr = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if fileErr == nil {
				writers = append(writers, f)
			}
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("log file unavailable, console only")
	}
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", path).Msg("logger initialized")
}

// GetLogger returns a logger tagged with a component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
