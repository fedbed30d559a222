package log

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

type logrusLogger struct {
	*logrus.Logger
}

// NewLogrusLogger returns a logger that writes keyvals as logrus fields in
// logrus' text format. A "level" key, as set by package level, selects the
// logrus level; events without one are logged at info.
func NewLogrusLogger(w io.Writer) Logger {
	l := logrus.New()
	l.Out = w
	l.Level = logrus.DebugLevel
	l.Formatter = &logrus.TextFormatter{DisableTimestamp: true, DisableColors: true}
	return logrusLogger{l}
}

func (l logrusLogger) Log(keyvals ...interface{}) error {
	var (
		fields = logrus.Fields{}
		lvl    = logrus.InfoLevel
		msg    string
	)
	for i := 0; i < len(keyvals); i += 2 {
		k := fmt.Sprint(keyvals[i])
		var v interface{} = "(MISSING)"
		if i+1 < len(keyvals) {
			v = keyvals[i+1]
		}
		switch k {
		case "level":
			if parsed, err := logrus.ParseLevel(fmt.Sprint(v)); err == nil {
				lvl = parsed
			}
		case "msg":
			msg = fmt.Sprint(v)
		default:
			fields[k] = v
		}
	}
	l.WithFields(fields).Log(lvl, msg)
	return nil
}
