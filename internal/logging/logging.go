// Package logging configures the logrus logger shared by all commands.
package logging

import (
	"errors"
	"io"

	log "github.com/sirupsen/logrus"
)

var defaultLogFormatter = &log.TextFormatter{DisableTimestamp: true}

// infoFormatter prints Info events as bare messages and everything else
// through the text formatter.
type infoFormatter struct{}

func (f *infoFormatter) Format(entry *log.Entry) ([]byte, error) {
	if entry.Level == log.InfoLevel {
		return append([]byte(entry.Message), '\n'), nil
	}
	return defaultLogFormatter.Format(entry)
}

// Setup configures l from the -q and -v flags. verbose counts repeated -v
// flags: 0 logs progress, 1 adds debug output, 2 adds trace output.
func Setup(l *log.Logger, out io.Writer, quiet bool, verbose int) error {
	if quiet && verbose > 0 {
		return errors.New("can't set quiet and verbose flag at the same time")
	}

	l.SetOutput(out)
	l.SetFormatter(new(infoFormatter))

	switch {
	case quiet:
		l.SetLevel(log.ErrorLevel)
	case verbose == 0:
		l.SetLevel(log.InfoLevel)
	case verbose == 1:
		l.SetFormatter(defaultLogFormatter)
		l.SetLevel(log.DebugLevel)
	case verbose == 2:
		l.SetFormatter(defaultLogFormatter)
		l.SetLevel(log.TraceLevel)
	default:
		return errors.New("verbose flag can only be given up to 2 times")
	}
	return nil
}
