package log

// Logger receives the capture events a connection emits: raw lines, decoded
// commands and replies, state transitions and errors. Implementations
// observe the protocol; library code never prints on its own.
type Logger interface {
	// Log records one capture event. Implementations must be safe for
	// concurrent use and should return quickly; the read loop calls this
	// inline.
	Log(event Event)
}

// NoopLogger drops every event. It stands in wherever no capture is
// configured and is usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}
