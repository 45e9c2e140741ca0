// Package fabriclog provides the shared structured logger for the topology
// and bridge-domain reasoning engine.
package fabriclog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the global logger instance used across the core pipeline.
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stderr)
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// SetLevel sets the logging level from a level name.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// SetJSONFormat switches to structured JSON output, for machine consumption
// of discovery/consolidation runs.
func SetJSONFormat() {
	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
}

// WithField returns an entry carrying a single field.
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger.WithField(key, value)
}

// WithFields returns an entry carrying multiple fields.
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return Logger.WithFields(fields)
}

// WithDevice tags a log entry with the canonical device key it concerns.
func WithDevice(device string) *logrus.Entry {
	return Logger.WithField("device", device)
}

// WithService tags a log entry with the service/bridge-domain name it concerns.
func WithService(service string) *logrus.Entry {
	return Logger.WithField("service", service)
}

// WithRun tags a log entry with the discovery/synthesis run id.
func WithRun(runID string) *logrus.Entry {
	return Logger.WithField("run_id", runID)
}
