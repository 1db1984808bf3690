package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// New returns new configured logger writing to standard error
func New(lvl logrus.Level) *logrus.Logger {
	return NewWithOutput(lvl, os.Stderr)
}

// NewWithOutput returns new configured logger writing to <out>
func NewWithOutput(lvl logrus.Level, out io.Writer) *logrus.Logger {
	formatter := prefixed.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.Stamp,
		ForceFormatting: true,
		DisableColors:   out != os.Stderr,
	}
	log := logrus.Logger{
		Out:       out,
		Formatter: &formatter,
		Level:     lvl,
		Hooks:     make(logrus.LevelHooks),
		ExitFunc:  os.Exit,
	}
	return &log
}

// NewDiscard returns logger which drops every message, useful for library callers which do not care about logs
func NewDiscard() *logrus.Logger {
	return NewWithOutput(logrus.PanicLevel, io.Discard)
}
