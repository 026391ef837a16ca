package log

// MultiLogger fans each event out to several loggers, typically a console
// SlogAdapter next to a FileLogger capture.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers into one. Events reach them in the order
// given.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log hands the event to every wrapped logger.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

var _ Logger = (*MultiLogger)(nil)
