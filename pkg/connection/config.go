package connection

import (
	"time"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/log"
)

// DefaultPort is the TCP port of the Kaleidescape control protocol.
const DefaultPort = 10000

// Default timeouts.
const (
	DefaultConnectTimeout = 5 * time.Second
	DefaultRequestTimeout = 5 * time.Second
)

// Config configures a control connection.
type Config struct {
	// Host is the device hostname or IP address.
	Host string

	// Port is the control protocol port (default: 10000).
	Port int

	// ConnectTimeout bounds dialing and host resolution (default: 5s).
	ConnectTimeout time.Duration

	// RequestTimeout bounds waiting for a reply to a request (default: 5s).
	RequestTimeout time.Duration

	// Reconnect enables automatic reconnection after connection loss.
	Reconnect bool

	// ReconnectDelay is the initial reconnect backoff delay (default: 1s).
	// Subsequent attempts back off exponentially up to MaxBackoff.
	ReconnectDelay time.Duration

	// Logger receives protocol capture events. Nil disables capture.
	Logger log.Logger
}

// DefaultConfig returns the default connection configuration for a host.
func DefaultConfig(host string) Config {
	return Config{
		Host:           host,
		Port:           DefaultPort,
		ConnectTimeout: DefaultConnectTimeout,
		RequestTimeout: DefaultRequestTimeout,
		ReconnectDelay: InitialBackoff,
	}
}

func (c *Config) withDefaults() Config {
	cfg := *c
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = InitialBackoff
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NoopLogger{}
	}
	return cfg
}
