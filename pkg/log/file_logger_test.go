package log

import (
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func writeEvents(t *testing.T, path string, events []Event) {
	t.Helper()
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestFileLoggerWriteAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.klog")

	events := []Event{
		{
			Timestamp:    time.Now().UTC(),
			ConnectionID: "conn-1",
			Direction:    DirectionOut,
			Layer:        LayerTransport,
			Category:     CategoryMessage,
			Line:         &LineEvent{Size: 30, Data: "01/0001:GET_DEVICE_POWER_STATE:"},
		},
		{
			Timestamp:    time.Now().UTC(),
			ConnectionID: "conn-1",
			Direction:    DirectionIn,
			Layer:        LayerWire,
			Category:     CategoryMessage,
			Message:      &MessageEvent{Type: MessageTypeReply, Seq: 1, Name: "DEVICE_POWER_STATE"},
		},
	}
	writeEvents(t, path, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer reader.Close()

	var got []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, event)
	}

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Line == nil || got[0].Line.Data != "01/0001:GET_DEVICE_POWER_STATE:" {
		t.Errorf("first event line payload mismatch: %+v", got[0].Line)
	}
	if got[1].Message == nil || got[1].Message.Name != "DEVICE_POWER_STATE" {
		t.Errorf("second event message payload mismatch: %+v", got[1].Message)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "append.klog")

	writeEvents(t, path, []Event{{ConnectionID: "first"}})
	writeEvents(t, path, []Event{{ConnectionID: "second"}})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer reader.Close()

	var ids []string
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		ids = append(ids, event.ConnectionID)
	}
	if len(ids) != 2 || ids[0] != "first" || ids[1] != "second" {
		t.Errorf("ids = %v, want [first second]", ids)
	}
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "close.klog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	// Logging after close is silently dropped.
	logger.Log(Event{ConnectionID: "late"})
}

func TestFileLoggerConcurrentUse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concurrent.klog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				logger.Log(Event{
					Timestamp:    time.Now().UTC(),
					ConnectionID: "concurrent",
					Category:     CategoryMessage,
				})
			}
		}()
	}
	wg.Wait()

	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		if _, err := reader.Next(); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("Next: %v", err)
		}
		count++
	}
	if count != writers*perWriter {
		t.Errorf("got %d events, want %d", count, writers*perWriter)
	}
}
