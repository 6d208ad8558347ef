package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewConsole creates the human readable process logger.
// Unknown levels fall back to info.
func NewConsole(level string, out io.Writer) *logrus.Logger {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)

	return l
}

// Discard returns a console logger that drops everything, for tests
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
