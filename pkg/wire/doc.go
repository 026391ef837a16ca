// Package wire implements the line-oriented text format of the Kaleidescape
// control protocol.
//
// One message per line, ASCII, colon-separated fields:
//
//	<device>/<seq>:<status>:<name>:<field_1>:...:<field_n>:<checksum>
//
// where <device> is a two-digit control protocol device ID (optionally with a
// ".ZZ" zone suffix), a "#SERIAL" reference, or "??"; <seq> is a four-digit
// sequence number correlating a reply to the request that produced it (0000
// on unsolicited events); <status> is "OK" or a three-digit error code; and
// <checksum> is a two-digit modulo-100 sum over the rest of the line.
//
// Outgoing commands use the same structure without the status token and are
// rendered by EncodeRequest. The codec is pure and safe for concurrent use;
// sequence assignment belongs to the connection layer.
package wire
