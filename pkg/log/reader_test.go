package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func filterFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filter.klog")

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	writeEvents(t, path, []Event{
		{
			Timestamp:    base,
			ConnectionID: "conn-a",
			Direction:    DirectionOut,
			Layer:        LayerTransport,
			Category:     CategoryMessage,
			DeviceID:     "01",
		},
		{
			Timestamp:    base.Add(time.Second),
			ConnectionID: "conn-a",
			Direction:    DirectionIn,
			Layer:        LayerWire,
			Category:     CategoryMessage,
			DeviceID:     "01",
			Message:      &MessageEvent{Type: MessageTypeReply, Name: "PLAY_STATUS"},
		},
		{
			Timestamp:    base.Add(2 * time.Second),
			ConnectionID: "conn-b",
			Direction:    DirectionIn,
			Layer:        LayerWire,
			Category:     CategoryMessage,
			DeviceID:     "02",
			Message:      &MessageEvent{Type: MessageTypeEvent, Name: "UI_STATE"},
		},
		{
			Timestamp:    base.Add(3 * time.Second),
			ConnectionID: "conn-b",
			Direction:    DirectionIn,
			Layer:        LayerService,
			Category:     CategoryError,
			Error:        &ErrorEventData{Layer: LayerWire, Message: "bad checksum"},
		},
	})
	return path
}

func countMatches(t *testing.T, path string, filter Filter) int {
	t.Helper()
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		if _, err := reader.Next(); err != nil {
			if err == io.EOF {
				return count
			}
			t.Fatalf("Next: %v", err)
		}
		count++
	}
}

func TestReaderFilters(t *testing.T) {
	path := filterFixture(t)

	dirIn := DirectionIn
	layerWire := LayerWire
	catError := CategoryError
	cutoff := time.Date(2026, 8, 1, 12, 0, 2, 0, time.UTC)

	cases := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"NoFilter", Filter{}, 4},
		{"ByConnection", Filter{ConnectionID: "conn-a"}, 2},
		{"ByDirection", Filter{Direction: &dirIn}, 3},
		{"ByLayer", Filter{Layer: &layerWire}, 2},
		{"ByCategory", Filter{Category: &catError}, 1},
		{"ByDeviceID", Filter{DeviceID: "02"}, 1},
		{"ByMessageName", Filter{MessageName: "PLAY_STATUS"}, 1},
		{"ByTimeStart", Filter{TimeStart: &cutoff}, 2},
		{"ByTimeEnd", Filter{TimeEnd: &cutoff}, 2},
		{"Combined", Filter{ConnectionID: "conn-b", Category: &catError}, 1},
		{"NoMatch", Filter{ConnectionID: "conn-c"}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := countMatches(t, path, c.filter); got != c.want {
				t.Errorf("got %d matches, want %d", got, c.want)
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.klog")); err == nil {
		t.Error("expected error for missing file")
	}
}
