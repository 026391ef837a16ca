package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/wire"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	status := wire.StatusOK
	rtt := 42 * time.Millisecond

	original := Event{
		Timestamp:    time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC),
		ConnectionID: "6f3c2a9e-0001-4b2a-9f31-8c2d1e0a7b44",
		Direction:    DirectionIn,
		Layer:        LayerWire,
		Category:     CategoryMessage,
		RemoteAddr:   "10.0.0.40:10000",
		DeviceID:     "01",
		Message: &MessageEvent{
			Type:      MessageTypeReply,
			Seq:       17,
			Name:      "PLAY_STATUS",
			Status:    &status,
			Fields:    []string{"2", "0", "1", "7260", "4245", "12", "360", "105"},
			RoundTrip: &rtt,
		},
	}

	data, err := EncodeEvent(original)
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}

	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", decoded.Timestamp, original.Timestamp)
	}
	if decoded.ConnectionID != original.ConnectionID {
		t.Errorf("ConnectionID = %q, want %q", decoded.ConnectionID, original.ConnectionID)
	}
	if decoded.Message == nil {
		t.Fatal("Message payload missing after round trip")
	}
	if decoded.Message.Seq != 17 {
		t.Errorf("Seq = %d, want 17", decoded.Message.Seq)
	}
	if decoded.Message.Name != "PLAY_STATUS" {
		t.Errorf("Name = %q, want PLAY_STATUS", decoded.Message.Name)
	}
	if decoded.Message.Status == nil || *decoded.Message.Status != wire.StatusOK {
		t.Errorf("Status = %v, want OK", decoded.Message.Status)
	}
	if decoded.Message.RoundTrip == nil || *decoded.Message.RoundTrip != rtt {
		t.Errorf("RoundTrip = %v, want %v", decoded.Message.RoundTrip, rtt)
	}
	if len(decoded.Message.Fields) != 8 {
		t.Errorf("got %d fields, want 8", len(decoded.Message.Fields))
	}
}

func TestEncodeOmitsEmptyPayloads(t *testing.T) {
	event := Event{
		Timestamp:    time.Now().UTC(),
		ConnectionID: "c",
		Direction:    DirectionOut,
		Layer:        LayerTransport,
		Category:     CategoryMessage,
		Line:         &LineEvent{Size: 20, Data: "01/0001:PLAY:68:"},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}

	if decoded.Line == nil {
		t.Fatal("Line payload missing")
	}
	if decoded.Message != nil || decoded.StateChange != nil || decoded.Error != nil {
		t.Error("empty payloads must stay nil after round trip")
	}
}

func TestEncoderDecoderStreaming(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	for i := 0; i < 3; i++ {
		event := Event{
			Timestamp:    time.Now().UTC(),
			ConnectionID: "stream",
			Direction:    DirectionIn,
			Layer:        LayerWire,
			Category:     CategoryMessage,
			Message:      &MessageEvent{Type: MessageTypeEvent, Name: "UI_STATE"},
		}
		if err := enc.Encode(event); err != nil {
			t.Fatalf("Encode event %d: %v", i, err)
		}
	}

	dec := NewDecoder(&buf)
	for i := 0; i < 3; i++ {
		var event Event
		if err := dec.Decode(&event); err != nil {
			t.Fatalf("Decode event %d: %v", i, err)
		}
		if event.ConnectionID != "stream" {
			t.Errorf("event %d: ConnectionID = %q", i, event.ConnectionID)
		}
	}
}
