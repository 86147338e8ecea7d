package core

// Logger is the application logger.
// args may carry errors and extra data (map[string]interface{}) to attach to the log entry.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
