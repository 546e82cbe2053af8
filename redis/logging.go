package redis

import (
	"log"

	"go.uber.org/zap"
)

type (
	// Logger is an interface to the logger the client writes to.
	Logger interface {
		// Printf logs a message. Arguments should be handled in the manner of fmt.Printf.
		Printf(format string, args ...interface{})
	}

	defaultLogger struct{}
	nilLogger     struct{}

	zapLogger struct {
		logger *zap.SugaredLogger
	}
)

// NewNilLogger returns a logger that drops all messages.
func NewNilLogger() Logger {
	return &nilLogger{}
}

// NewZapLogger adapts a zap logger to the client's Logger interface.
func NewZapLogger(logger *zap.Logger) Logger {
	return &zapLogger{logger: logger.Sugar()}
}

func (l *defaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func (l *nilLogger) Printf(format string, args ...interface{}) {
}

func (l *zapLogger) Printf(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}
