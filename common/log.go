package common

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger returns a logger for one subsystem, derived from the default logger
// configured by main.
func Logger(prefix string) *log.Logger {
	return log.Default().WithPrefix(prefix)
}

// ConfigureLogging installs the process-wide default logger.
func ConfigureLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
		Level:           lvl,
	})
	log.SetDefault(logger)
	return nil
}
