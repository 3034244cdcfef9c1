// internal/logging/logging.go
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger with the given level.
// JSON formatted so log collectors can index the fields. An
// unrecognized level falls back to info rather than failing startup.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}
