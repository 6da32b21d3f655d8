// Package logger wraps logrus for use inside a client library: silent by
// default, opt-in via SetOutput/SetLogLevel, with structured fields.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func init() {
	logger.Level = logrus.WarnLevel
	logger.Formatter = &formatter{}
	// A library must not write to a host application's streams unless
	// asked to.
	logger.Out = io.Discard
}

// SetOutput directs log output to w. Pass os.Stderr (or any writer) to
// enable logging.
func SetOutput(w io.Writer) {
	logger.Out = w
}

// SetLogLevel sets the log level for the logger.
func SetLogLevel(level logrus.Level) {
	logger.Level = level
}

// Fields type, used to pass to `WithFields`.
type Fields logrus.Fields

// Debugf logs a message at level Debug with optional fields
func Debugf(format string, fields Fields, args ...interface{}) {
	if logger.Level >= logrus.DebugLevel {
		logger.WithFields(logrus.Fields(fields)).Debugf(format, args...)
	}
}

// Infof logs a message at level Info with optional fields
func Infof(format string, fields Fields, args ...interface{}) {
	if logger.Level >= logrus.InfoLevel {
		logger.WithFields(logrus.Fields(fields)).Infof(format, args...)
	}
}

// Warnf logs a message at level Warn with optional fields
func Warnf(format string, fields Fields, args ...interface{}) {
	if logger.Level >= logrus.WarnLevel {
		logger.WithFields(logrus.Fields(fields)).Warnf(format, args...)
	}
}

// Errorf logs an error message with fields
func Errorf(format string, fields Fields, args ...interface{}) {
	if logger.Level >= logrus.ErrorLevel {
		logger.WithFields(logrus.Fields(fields)).Errorf(format, args...)
	}
}

// Formatter implements logrus.Formatter interface
type formatter struct {
	prefix string
}

// Format building log message
func (f *formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var sb bytes.Buffer
	sb.WriteString(strings.ToUpper(entry.Level.String()))
	sb.WriteString(" ")
	sb.WriteString(entry.Time.Format(time.RFC3339))
	sb.WriteString(" ")
	sb.WriteString(f.prefix)
	sb.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		sb.WriteString(" [")
		for key, value := range entry.Data {
			sb.WriteString(fmt.Sprintf("%s=%v ", key, value))
		}
		sb.WriteString("]")
	}
	sb.WriteString("\n")

	return sb.Bytes(), nil
}
