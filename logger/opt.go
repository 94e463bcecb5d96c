package logger

import (
	"fmt"
	"io"
	"log"
)

// A LoggerOptFn is a functional option configuring a AppLogger when constructing a new one.
type LoggerOptFn func(*AppLogger)

// WithEnv sets the environment AppLogger is operating in.
func WithEnv(env fmt.Stringer) LoggerOptFn {
	return func(l *AppLogger) {
		l.env = env.String()
	}
}

// WithLevel sets the log level AppLogger uses.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *AppLogger) {
		if level != LogLevelUnk {
			l.ll = level
		}
	}
}

// WithLogger sets the log.Logger AppLogger uses.
func WithLogger(log *log.Logger) LoggerOptFn {
	return func(l *AppLogger) {
		l.l = log
	}
}

// WithWriter points AppLogger at w, keeping the standard flags.
func WithWriter(w io.Writer) LoggerOptFn {
	return func(l *AppLogger) {
		l.l = log.New(w, "", log.LstdFlags)
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) LoggerOptFn {
	return func(l *AppLogger) {
		l.skip = skip
	}
}
