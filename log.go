package net64update

var log Logger = &emptyLogger{}

// SetLogger redirects all logs to the logger defined in parameter.
// By default logs are not sent anywhere.
// It is meant to be called once at startup, before any check or download runs.
func SetLogger(logger Logger) {
	if logger == nil {
		logger = &emptyLogger{}
	}
	log = logger
}

// Logger interface. Compatible with standard log.Logger
type Logger interface {
	// Print calls Output to print to the standard logger. Arguments are handled in the manner of fmt.Print.
	Print(v ...interface{})
	// Printf calls Output to print to the standard logger. Arguments are handled in the manner of fmt.Printf.
	Printf(format string, v ...interface{})
}

// WarnLogger is implemented by loggers with a distinct warning level
// (*logrus.Logger, *zap.SugaredLogger). Failures of the update check and
// of the server listing are sent there when available.
type WarnLogger interface {
	Warnf(format string, v ...interface{})
}

func warnf(format string, v ...interface{}) {
	if w, ok := log.(WarnLogger); ok {
		w.Warnf(format, v...)
		return
	}
	log.Printf("WARN "+format, v...)
}

// emptyLogger to discard all logs by default
type emptyLogger struct{}

func (l *emptyLogger) Print(v ...interface{})                 {}
func (l *emptyLogger) Printf(format string, v ...interface{}) {}
