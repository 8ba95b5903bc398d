package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger defines the solicitreview logging contract.
// Implementations should support standard log levels and be safe for concurrent use.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// LogrusLogger implements Logger on top of a logrus logger.
type LogrusLogger struct {
	logger *logrus.Logger
}

// New creates a LogrusLogger writing text records to out at the given level
// ("debug", "info", "warn", "error").
func New(out io.Writer, level string) (*LogrusLogger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return &LogrusLogger{logger: l}, nil
}

func (l *LogrusLogger) Info(msg string, args ...any) {
	l.logger.Infof(msg, args...)
}

func (l *LogrusLogger) Warn(msg string, args ...any) {
	l.logger.Warnf(msg, args...)
}

func (l *LogrusLogger) Error(msg string, args ...any) {
	l.logger.Errorf(msg, args...)
}

func (l *LogrusLogger) Debug(msg string, args ...any) {
	l.logger.Debugf(msg, args...)
}

type discard struct{}

func (discard) Info(string, ...any)  {}
func (discard) Warn(string, ...any)  {}
func (discard) Error(string, ...any) {}
func (discard) Debug(string, ...any) {}

// Discard drops every record.
var Discard Logger = discard{}

// Default provides a global default logger writing to stderr at info level.
// Library packages take a Logger explicitly.
var Default Logger = &LogrusLogger{logger: func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	return l
}()}
