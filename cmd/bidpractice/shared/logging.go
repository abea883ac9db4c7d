package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger. Debug wins over any configured
// level.
func SetupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// ApplyLogLevel sets the logger level from a config string, leaving the
// level alone when the string is empty or unknown.
func ApplyLogLevel(logger *log.Logger, level string) {
	if level == "" {
		return
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("Unknown log level, keeping current", "level", level)
		return
	}
	logger.SetLevel(parsed)
}
