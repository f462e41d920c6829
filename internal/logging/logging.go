// Package logging configures the process-wide zerolog logger used by every
// other package in this module.
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure sets up the global logger. pretty selects a human-readable
// console writer (local/dev runs); otherwise the default JSON writer is
// used, which is what a container runtime's log collector expects.
func Configure(pretty bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.With().Caller().Logger()
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// Component returns a child logger tagged with a component field, the
// idiom every package below uses instead of importing the global logger
// directly.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
