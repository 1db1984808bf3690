package logger

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/zenizh/go-capturer"
)

func TestNew(t *testing.T) {
	out := capturer.CaptureStderr(func() {
		log := New(logrus.DebugLevel)
		log.Trace("trace message")
		log.Debug("debug message")
		log.Infof("%v + %v", "message 1", "message 2")
		log.WithField("path", "config.yml").Warn("warn message")
		log.Error("error message")
		assert.Panics(t, func() { log.Panic("panic message") }, "should panic")
	})
	assert.NotRegexp(t, regexp.MustCompile(`trace message`), out, "should not print trace messages with debug level")
	assert.Regexp(t, regexp.MustCompile(`debug message`), out)
	assert.Regexp(t, regexp.MustCompile(`message 1 \+ message 2`), out)
	assert.Regexp(t, regexp.MustCompile(`warn message.*path=config\.yml`), out)
	assert.Regexp(t, regexp.MustCompile(`error message`), out)
	assert.Regexp(t, regexp.MustCompile(`panic message`), out)
}

func TestNewWithOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(logrus.InfoLevel, &buf)
	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden", "should filter by level")
	assert.Contains(t, buf.String(), "shown", "should write to given output")
	assert.NotContains(t, buf.String(), "\x1b[", "should not colorize output which is not a terminal")
}

func TestNewDiscard(t *testing.T) {
	out := capturer.CaptureStderr(func() {
		log := NewDiscard()
		log.Error("message")
	})
	assert.Empty(t, out, "should not print anything")
}
