package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/monado-tools/libmonado-go/pkg/log"
	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+log.FileExtension)

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

func callEvent(ts time.Time, conn, function string, status mnd.Result, d time.Duration) log.Event {
	return log.Event{
		Timestamp:    ts,
		ConnectionID: conn,
		Category:     log.CategoryCall,
		LibraryPath:  "/usr/lib/libmonado.so",
		Call: &log.CallEvent{
			Function: function,
			Status:   status,
			Duration: d,
		},
	}
}

func lifecycleEvent(ts time.Time, conn string, stage log.LifecycleStage, version string) log.Event {
	return log.Event{
		Timestamp:    ts,
		ConnectionID: conn,
		Category:     log.CategoryLifecycle,
		LibraryPath:  "/usr/lib/libmonado.so",
		Lifecycle:    &log.LifecycleEvent{Stage: stage, Version: version},
	}
}

func errorEvent(ts time.Time, conn string, code mnd.Result, msg string) log.Event {
	return log.Event{
		Timestamp:    ts,
		ConnectionID: conn,
		Category:     log.CategoryError,
		Error:        &log.ErrorEventData{Message: msg, Code: &code, Context: "version check"},
	}
}

// sessionEvents is a short connection followed by a rejected one.
func sessionEvents() []log.Event {
	base := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	return []log.Event{
		lifecycleEvent(base, "conn-aaaaaaaa-1", log.StageLoaded, ""),
		callEvent(base.Add(time.Millisecond), "conn-aaaaaaaa-1", "mnd_api_get_version", mnd.Success, 2*time.Microsecond),
		lifecycleEvent(base.Add(2*time.Millisecond), "conn-aaaaaaaa-1", log.StageRootCreated, "1.5.0"),
		callEvent(base.Add(3*time.Millisecond), "conn-aaaaaaaa-1", "mnd_root_get_device_count", mnd.Success, 40*time.Microsecond),
		callEvent(base.Add(4*time.Millisecond), "conn-aaaaaaaa-1", "mnd_root_get_device_count", mnd.Success, 60*time.Microsecond),
		callEvent(base.Add(5*time.Millisecond), "conn-aaaaaaaa-1", "mnd_root_get_device_brightness", mnd.ErrorInvalidProperty, 15*time.Microsecond),
		errorEvent(base.Add(time.Second), "conn-bbbbbbbb-2", mnd.ErrorInvalidVersion, "runtime API 2.0.0 does not satisfy ^1.3.0"),
	}
}
