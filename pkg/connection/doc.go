// Package connection manages the persistent TCP control connection to a
// Kaleidescape device.
//
// A Connection owns the socket, a read loop that decodes incoming lines, a
// pending-request table correlating replies to requests by sequence number,
// and an optional reconnect loop with exponential backoff. Decoded replies
// and unsolicited events are published through a dispatch.Dispatcher so any
// number of consumers can observe device state without touching the socket.
//
// The connection moves through four states: DISCONNECTED, CONNECTING,
// CONNECTED and RECONNECTING. Disconnect is idempotent and always lands in
// DISCONNECTED, stopping the reconnect loop if one is running.
//
// # Reconnection Strategy
//
// When a connection is lost and reconnection is enabled, the client uses
// exponential backoff:
//
//  1. Initial delay: the configured reconnect delay (default 1 second)
//  2. Exponential increase: 2s, 4s, 8s, 16s, 32s
//  3. Maximum delay: 60 seconds
//  4. Continue at 60s until successful
//  5. Reset to the initial delay on successful reconnection
//
// # Jitter
//
// To prevent thundering herd when multiple controllers reconnect:
//
//	actual_delay = base_delay + random(0, base_delay * 0.25)
package connection
