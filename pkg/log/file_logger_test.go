package log

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.glog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerAddsExtension(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewFileLogger(filepath.Join(dir, "session"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	want := filepath.Join(dir, "session"+FileExtension)
	if logger.Path() != want {
		t.Errorf("Path: got %q, want %q", logger.Path(), want)
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.glog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp: time.Now(),
		SessionID: "session-123",
		Layer:     LayerBridge,
		Category:  CategoryState,
		StateChange: &StateChangeEvent{
			Entity:   StateEntityRegion,
			NewState: "created",
		},
	}

	logger.Log(event)
	if logger.Written() != 1 {
		t.Errorf("Written: got %d, want 1", logger.Written())
	}
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded.SessionID != event.SessionID {
		t.Errorf("SessionID: got %q, want %q", decoded.SessionID, event.SessionID)
	}
	if decoded.StateChange == nil || decoded.StateChange.Entity != StateEntityRegion {
		t.Errorf("StateChange: got %+v", decoded.StateChange)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.glog")

	for _, id := range []string{"session-1", "session-2"} {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), SessionID: id, Layer: LayerBridge, Category: CategoryState})
		logger.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	decoder := NewDecoder(bytes.NewReader(data))
	var events []Event
	for {
		var event Event
		if err := decoder.Decode(&event); err != nil {
			break
		}
		events = append(events, event)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].SessionID != "session-1" {
		t.Errorf("first event SessionID: got %q, want %q", events[0].SessionID, "session-1")
	}
	if events[1].SessionID != "session-2" {
		t.Errorf("second event SessionID: got %q, want %q", events[1].SessionID, "session-2")
	}
}

func TestFileLoggerThreadSafe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.glog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const numGoroutines = 10
	const eventsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				logger.Log(Event{
					Timestamp: time.Now(),
					SessionID: "session-" + string(rune('A'+id)),
					Layer:     LayerStream,
					Category:  CategoryEnvelope,
				})
			}
		}(i)
	}
	wg.Wait()
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	decoder := NewDecoder(bytes.NewReader(data))
	count := 0
	for {
		var event Event
		if err := decoder.Decode(&event); err != nil {
			break
		}
		count++
	}

	if count != numGoroutines*eventsPerGoroutine {
		t.Errorf("event count: got %d, want %d", count, numGoroutines*eventsPerGoroutine)
	}
}

func TestFileLoggerClose(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewFileLogger(filepath.Join(dir, "test.glog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Log(Event{Timestamp: time.Now(), SessionID: "s", Layer: LayerBridge, Category: CategoryState})

	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Ignored after close
	logger.Log(Event{Timestamp: time.Now(), SessionID: "s", Layer: LayerBridge, Category: CategoryState})
	if logger.Written() != 1 {
		t.Errorf("Written after close: got %d, want 1", logger.Written())
	}
}
