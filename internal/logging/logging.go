// Package logging builds the zerolog loggers shared by the library packages
// and the command line tools.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// EnvDebug switches every component logger to debug level when set to "1".
const EnvDebug = "NTRU_DEBUG"

var base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger()

func init() {
	if os.Getenv(EnvDebug) == "1" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// New returns a logger tagged with the given component name.
func New(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// SetDebug lowers the global level to debug, or restores warn.
func SetDebug(on bool) {
	if on {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// SetLevel parses a zerolog level name ("debug", "info", ...) and applies it globally.
func SetLevel(name string) error {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
