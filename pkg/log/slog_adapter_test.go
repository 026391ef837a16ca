package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/wire"
)

func captureSlog(t *testing.T, event Event) string {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))
	adapter.Log(event)
	return buf.String()
}

func TestSlogAdapterCommonAttrs(t *testing.T) {
	out := captureSlog(t, Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-slog",
		Direction:    DirectionIn,
		Layer:        LayerWire,
		Category:     CategoryMessage,
		DeviceID:     "01",
		RemoteAddr:   "10.0.0.40:10000",
	})

	for _, want := range []string{
		"conn_id=conn-slog",
		"direction=IN",
		"layer=WIRE",
		"category=MESSAGE",
		"device_id=01",
		"remote_addr=10.0.0.40:10000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogAdapterMessagePayload(t *testing.T) {
	status := wire.StatusInvalidRequest
	rtt := 10 * time.Millisecond
	out := captureSlog(t, Event{
		Direction: DirectionIn,
		Layer:     LayerWire,
		Category:  CategoryMessage,
		Message: &MessageEvent{
			Type:      MessageTypeReply,
			Seq:       7,
			Name:      "PLAY_STATUS",
			Status:    &status,
			RoundTrip: &rtt,
		},
	})

	for _, want := range []string{"msg_type=REPLY", "seq=7", "name=PLAY_STATUS", "round_trip=10ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogAdapterStatePayload(t *testing.T) {
	out := captureSlog(t, Event{
		Layer:    LayerService,
		Category: CategoryState,
		StateChange: &StateChangeEvent{
			OldState: "CONNECTING",
			NewState: "CONNECTED",
			Reason:   "dial succeeded",
		},
	})

	for _, want := range []string{"old_state=CONNECTING", "new_state=CONNECTED", `reason="dial succeeded"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogAdapterErrorPayload(t *testing.T) {
	code := 6
	out := captureSlog(t, Event{
		Layer:    LayerWire,
		Category: CategoryError,
		Error: &ErrorEventData{
			Layer:   LayerWire,
			Message: "checksum mismatch",
			Context: "decode",
			Code:    &code,
		},
	})

	for _, want := range []string{"error_layer=WIRE", `error_msg="checksum mismatch"`, "error_context=decode", "error_code=6"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
