package log

import (
	"io"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

// Logger is the fundamental interface for all log operations.
type Logger = log.Logger

// LoggerFunc is an adapter to allow use of ordinary functions as Loggers.
type LoggerFunc = log.LoggerFunc

// Supported output formats.
const (
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
	FormatLogrus = "logrus"
)

// ErrUnknownFormat is returned by New for a format it does not know.
var ErrUnknownFormat = errors.New("unknown log format")

// New returns a logger writing to w in the named format. The writer is
// wrapped in a SyncWriter, so the logger is safe for concurrent use.
func New(w io.Writer, format string) (Logger, error) {
	w = log.NewSyncWriter(w)
	switch format {
	case FormatLogfmt, "":
		return log.NewLogfmtLogger(w), nil
	case FormatJSON:
		return log.NewJSONLogger(w), nil
	case FormatLogrus:
		return NewLogrusLogger(w), nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// NewLogfmtLogger returns a logger that encodes keyvals to the Writer in
// logfmt format.
func NewLogfmtLogger(w io.Writer) Logger {
	return log.NewLogfmtLogger(w)
}

// NewNopLogger returns a logger that doesn't do anything.
func NewNopLogger() Logger {
	return log.NewNopLogger()
}

// With returns a new contextual logger with keyvals prepended to those
// passed to calls to Log.
func With(logger Logger, keyvals ...interface{}) Logger {
	return log.With(logger, keyvals...)
}

// NewStdlibAdapter returns a writer that logs each line written by a
// standard library logger as a "msg" event.
func NewStdlibAdapter(logger Logger) io.Writer {
	return log.NewStdlibAdapter(logger)
}

var (
	// DefaultTimestampUTC is a Valuer that returns the current time in UTC
	// when bound.
	DefaultTimestampUTC = log.DefaultTimestampUTC

	// DefaultCaller is a Valuer that returns the file and line where the Log
	// method was invoked.
	DefaultCaller = log.DefaultCaller
)
