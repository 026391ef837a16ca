// Package messages provides typed views over generically parsed wire
// messages.
//
// Each known message name has a variant type exposing strongly-typed
// accessors over the positional fields. Variants are selected by name through
// a Registry: an explicit static table built at package initialization and
// read-only afterwards, so lookups are safe from any number of connections.
// Unknown names are not an error; they decode to Generic, which exposes the
// raw fields. Protocol evolution must never break parsing of newer message
// types.
package messages
