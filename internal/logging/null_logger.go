package logging

import "github.com/clif-consortium/clifdict/pkg/clifdict"

// NullLogger discards all log messages. Useful for tests and for embedding
// the build pipeline in callers that report progress themselves.
type NullLogger struct{}

// NewNullLogger creates a logger that discards everything.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}
func (l *NullLogger) Info(format string, args ...interface{})    {}
func (l *NullLogger) Error(format string, args ...interface{})   {}

var _ clifdict.Logger = (*NullLogger)(nil)
