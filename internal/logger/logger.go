package logger

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init initializes the default logger
func Init(verbose, noColor bool) {
	log.SetDefault(log.NewWithOptions(os.Stderr,
		log.Options{
			ReportCaller:    false,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "PERISCOPE",
		}))

	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}
