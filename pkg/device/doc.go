// Package device provides a high-level façade over a Kaleidescape control
// connection. A Device tracks the remote component's state by priming it
// with queries on connect and applying unsolicited events as they arrive,
// exposing a typed snapshot instead of raw protocol messages.
package device
