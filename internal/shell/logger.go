package shell

// Logger provides structured logging for discovery.
// *log.Logger from github.com/charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// noopLogger is the default logger used when none is provided.
type noopLogger struct{}

func (noopLogger) Debug(msg interface{}, keyvals ...interface{}) {}
func (noopLogger) Info(msg interface{}, keyvals ...interface{})  {}
func (noopLogger) Warn(msg interface{}, keyvals ...interface{})  {}
func (noopLogger) Error(msg interface{}, keyvals ...interface{}) {}
