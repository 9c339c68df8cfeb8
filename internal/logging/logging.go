// Package logging provides the shared debug logger. Logging is disabled
// unless the TREESCOPE_DEBUG environment variable is set, because stderr
// belongs to the TUI.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var (
	Debug   *log.Logger
	Enabled bool
)

func init() {
	if os.Getenv("TREESCOPE_DEBUG") == "" {
		Debug = log.New(io.Discard)
		return
	}

	Enabled = true

	f, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Better garbled output than silence when debugging was asked for.
		Debug = log.NewWithOptions(os.Stderr, log.Options{
			Level:  log.DebugLevel,
			Prefix: "treescope",
		})
		return
	}

	Debug = log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		Prefix:          "treescope",
		ReportTimestamp: true,
	})
}
