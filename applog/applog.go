// Package applog wraps a single process-wide logrus logger, the way
// aldrin-isaac-newtron's pkg/util log wrapper configures logrus once at
// package init and exposes a handful of convenience helpers over it.
package applog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the shared logger every package writes through.
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stderr)
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetLevel parses level (error/warn/info/debug/trace) and applies it.
func SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(parsed)
	return nil
}

// SetOutput redirects log output, e.g. to a transcript buffer for upload.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// SetJSONFormat switches the logger to structured JSON lines.
func SetJSONFormat() {
	Logger.SetFormatter(&logrus.JSONFormatter{})
}

// Disable silences all log output, used when --logger=false or one of the
// json/special-for-gui modes forces logging off.
func Disable() {
	Logger.SetOutput(io.Discard)
}

// WithField is a shorthand over Logger.WithField for call sites that don't
// want to import logrus directly.
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger.WithField(key, value)
}

// WithProvider tags a log entry with the provider it concerns.
func WithProvider(name string) *logrus.Entry {
	return Logger.WithField("provider", name)
}
