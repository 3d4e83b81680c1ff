package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

// Logger wraps standard log with level-based output
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
	debug *log.Logger
	min   level
}

// NewLogger creates a logger writing info/warn/debug to stdout and errors to stderr.
// Messages below logLevel (debug, info, warn, error) are dropped.
func NewLogger(logLevel string) *Logger {
	return NewLoggerWithWriters(os.Stdout, os.Stderr, logLevel)
}

// NewLoggerWithWriters is NewLogger with explicit destinations
func NewLoggerWithWriters(out, errOut io.Writer, logLevel string) *Logger {
	flags := log.Lmsgprefix
	return &Logger{
		info:  log.New(out, "[INFO]  ", flags),
		warn:  log.New(out, "[WARN]  ", flags),
		error: log.New(errOut, "[ERROR] ", flags),
		debug: log.New(out, "[DEBUG] ", flags),
		min:   parseLevel(logLevel),
	}
}

// NewDiscardLogger drops everything; handy in tests
func NewDiscardLogger() *Logger {
	return NewLoggerWithWriters(io.Discard, io.Discard, "error")
}

func parseLevel(s string) level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *Logger) prefix() string {
	return fmt.Sprintf(" %s ", time.Now().Format("15:04:05"))
}

func (l *Logger) Info(msg string, args ...interface{}) {
	if l.min <= levelInfo {
		l.info.Printf(l.prefix()+msg, args...)
	}
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.min <= levelWarn {
		l.warn.Printf(l.prefix()+msg, args...)
	}
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.error.Printf(l.prefix()+msg, args...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.min <= levelDebug {
		l.debug.Printf(l.prefix()+msg, args...)
	}
}
