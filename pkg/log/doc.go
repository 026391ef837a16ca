// Package log provides structured protocol capture for Kaleidescape
// control connections.
//
// This package defines the Logger interface and Event types for recording
// protocol activity at multiple layers (transport lines, decoded messages,
// connection state). It is separate from operational logging (slog); protocol
// capture produces a complete machine-readable trace for debugging control
// integrations against real hardware.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.Logger, _ = log.NewFileLogger("/var/log/kaleidescape/player.klog")
//
//	// Both: use MultiLogger
//	cfg.Logger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: raw protocol lines as sent and received (LineEvent)
//   - Wire: decoded messages with sequence and status (MessageEvent)
//   - Service: connection state transitions (StateChangeEvent)
//
// Errors at any layer have a dedicated event type.
//
// # File Format
//
// Log files use CBOR encoding with the .klog extension. Reader streams and
// filters recorded events for offline analysis.
package log
