package logger

import (
	"io"
	"log"
	"os"
)

type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelDebug
	LevelTrace
)

// Logger writes leveled lines to stderr by default so that stdout stays
// reserved for the single confirmation line of a successful run.
type Logger struct {
	*log.Logger
	level LogLevel
}

type Option func(*Logger)

func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.Logger = log.New(w, l.Logger.Prefix(), l.Logger.Flags())
	}
}

func WithPrefix(prefix string) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), prefix, l.Logger.Flags())
	}
}

func WithFlags(flags int) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), l.Logger.Prefix(), flags)
	}
}

func WithLevel(level LogLevel) Option {
	return func(l *Logger) {
		l.level = level
	}
}

func New(options ...Option) *Logger {
	l := &Logger{
		Logger: log.New(os.Stderr, "", log.LstdFlags),
		level:  LevelInfo,
	}

	for _, opt := range options {
		opt(l)
	}

	return l
}

// Discard returns a logger that drops everything, for callers that do not
// care about diagnostics.
func Discard() *Logger {
	return New(WithOutput(io.Discard), WithFlags(0))
}

// LevelFor maps the --verbose and --debug switches onto a level. Debug wins.
func LevelFor(verbose, debug bool) LogLevel {
	switch {
	case debug:
		return LevelTrace
	case verbose:
		return LevelDebug
	default:
		return LevelInfo
	}
}

func (l *Logger) Info(format string, args ...any) {
	l.printf(LevelInfo, format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if l.level >= LevelDebug {
		l.printf(LevelDebug, format, args...)
	}
}

func (l *Logger) Trace(format string, args ...any) {
	if l.level >= LevelTrace {
		l.printf(LevelTrace, format, args...)
	}
}

func (l *Logger) printf(level LogLevel, format string, args ...any) {
	var prefix string
	switch level {
	case LevelInfo:
		prefix = "INFO: "
	case LevelDebug:
		prefix = "DEBUG: "
	case LevelTrace:
		prefix = "TRACE: "
	}
	l.Logger.Printf(prefix+format, args...)
}
