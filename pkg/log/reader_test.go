package log

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

func createTestTraceFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+FileExtension)

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test trace: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var events []Event
	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		events = append(events, event)
	}
}

func callEvent(conn, fn string, status mnd.Result, ts time.Time) Event {
	return Event{
		Timestamp:    ts,
		ConnectionID: conn,
		Category:     CategoryCall,
		Call:         &CallEvent{Function: fn, Status: status},
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	now := time.Now()
	path := createTestTraceFile(t, []Event{
		callEvent("conn-1", "mnd_root_create", mnd.Success, now),
		callEvent("conn-2", "mnd_root_get_device_count", mnd.Success, now),
		{Timestamp: now, ConnectionID: "conn-3", Category: CategoryLifecycle, Lifecycle: &LifecycleEvent{Stage: StageUnloaded}},
	})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].ConnectionID != "conn-1" {
		t.Errorf("first event ConnectionID = %q, want %q", read[0].ConnectionID, "conn-1")
	}
	if read[2].ConnectionID != "conn-3" {
		t.Errorf("last event ConnectionID = %q, want %q", read[2].ConnectionID, "conn-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestTraceFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next on empty file: got %v, want io.EOF", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope"+FileExtension)); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt"+FileExtension)
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0o644); err != nil {
		t.Fatal(err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err == nil || errors.Is(err, io.EOF) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestFilteredReader(t *testing.T) {
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	events := []Event{
		callEvent("conn-1", "mnd_root_create", mnd.Success, base),
		callEvent("conn-1", "mnd_root_get_client_state", mnd.ErrorInvalidValue, base.Add(time.Second)),
		callEvent("conn-2", "mnd_root_get_client_state", mnd.Success, base.Add(2*time.Second)),
		{Timestamp: base.Add(3 * time.Second), ConnectionID: "conn-2", Category: CategoryError,
			Error: &ErrorEventData{Message: "load failed"}},
		{Timestamp: base.Add(4 * time.Second), ConnectionID: "conn-1", Category: CategoryLifecycle,
			Lifecycle: &LifecycleEvent{Stage: StageRootDestroyed}},
	}
	path := createTestTraceFile(t, events)

	lifecycle := CategoryLifecycle
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 5},
		{"connection", Filter{ConnectionID: "conn-1"}, 3},
		{"category", Filter{Category: &lifecycle}, 1},
		{"function", Filter{Function: "mnd_root_get_client_state"}, 2},
		{"failed only", Filter{FailedOnly: true}, 2},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"combined", Filter{ConnectionID: "conn-2", Function: "mnd_root_get_client_state"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			if got := len(readAll(t, reader)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}
