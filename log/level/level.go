// Package level wraps github.com/go-kit/log/level and adds parsing of level
// names as they appear in configuration.
package level

import (
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Error returns a logger that includes a Key/ErrorValue pair.
func Error(logger log.Logger) log.Logger { return level.Error(logger) }

// Warn returns a logger that includes a Key/WarnValue pair.
func Warn(logger log.Logger) log.Logger { return level.Warn(logger) }

// Info returns a logger that includes a Key/InfoValue pair.
func Info(logger log.Logger) log.Logger { return level.Info(logger) }

// Debug returns a logger that includes a Key/DebugValue pair.
func Debug(logger log.Logger) log.Logger { return level.Debug(logger) }

// Option sets a parameter for the leveled logger.
type Option = level.Option

// NewFilter wraps next and squelches leveled events below the allowed
// level. Non-leveled events pass unmodified.
func NewFilter(next log.Logger, options ...Option) log.Logger {
	return level.NewFilter(next, options...)
}

// ErrUnknownLevel is returned by Parse for names it does not know.
var ErrUnknownLevel = errors.New("unknown log level")

// Parse maps a level name to the filter option allowing that level and
// everything more severe. The empty string means info.
func Parse(name string) (Option, error) {
	switch strings.ToLower(name) {
	case "debug":
		return level.AllowDebug(), nil
	case "info", "":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownLevel, "%q", name)
	}
}
