// Package logging holds the process-wide structured logger.
package logging

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is shared by every component. Callers attach a "component" field.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetLevel(logrus.InfoLevel)
}

// Setup sets the minimum level ("debug", "info", "warn", ...).
func Setup(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	Log.SetLevel(lvl)
	return nil
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
