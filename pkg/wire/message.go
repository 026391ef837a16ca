package wire

import (
	"fmt"
	"strings"
)

// Sequence numbering constants.
const (
	// EventSeq is the sequence number carried by unsolicited events.
	EventSeq = 0

	// SeqModulus bounds the sequence space. Assigned sequences are in
	// [1, SeqModulus) and wrap around, skipping EventSeq.
	SeqModulus = 10000
)

// LocalDeviceID addresses the device this client is directly connected to.
const LocalDeviceID = "01"

// Message is the decoded structural form of one protocol line.
type Message struct {
	// DeviceID identifies the originating or target device: a two-digit
	// control protocol device ID, a "#SERIAL" reference, or "??".
	DeviceID string

	// Zone is the zone within the device, 0 when unaddressed.
	Zone int

	// Seq correlates a reply to the request that produced it.
	// EventSeq (0) marks an unsolicited event.
	Seq int

	// Status is OK on success replies and events, an error code otherwise.
	Status Status

	// Name is the symbolic message type, empty for plain acknowledgements.
	Name string

	// Fields are the raw positional string tokens. Positional meaning is
	// defined per message type; see package messages.
	Fields []string

	// Checksum is the transmitted integrity value.
	Checksum int
}

// IsEvent reports whether the message is an unsolicited event rather than a
// reply to an in-flight request.
func (m *Message) IsEvent() bool {
	return m.Seq == EventSeq
}

// IsError reports whether the message carries an error status.
func (m *Message) IsError() bool {
	return m.Status.IsError()
}

// Field returns the field at index i, or the empty string when absent.
// Devices omit trailing empty fields on some firmware revisions.
func (m *Message) Field(i int) string {
	if i < 0 || i >= len(m.Fields) {
		return ""
	}
	return m.Fields[i]
}

// String returns the encoded line form of the message.
func (m *Message) String() string {
	return Encode(m)
}

// source renders the device/zone prefix of a line.
func source(deviceID string, zone int) string {
	if zone > 0 {
		return fmt.Sprintf("%s.%02d", deviceID, zone)
	}
	return deviceID
}

// GoString returns a verbose form for debug output.
func (m *Message) GoString() string {
	return fmt.Sprintf("wire.Message{device=%s zone=%d seq=%d status=%s name=%s fields=[%s]}",
		m.DeviceID, m.Zone, m.Seq, m.Status, m.Name, strings.Join(m.Fields, ", "))
}
