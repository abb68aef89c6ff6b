// Package logging provides the configured zerolog logger.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with the component name. Output goes to
// stdout, which the WASM runtime forwards to the browser console.
func New(component string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().
		Str("component", component).
		Timestamp().
		Logger()
}
