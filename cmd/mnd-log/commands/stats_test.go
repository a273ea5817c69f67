package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/monado-tools/libmonado-go/pkg/log"
)

func TestCollectStats(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())

	stats, err := CollectStats(path)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}

	if stats.TotalEvents != 7 {
		t.Errorf("TotalEvents = %d, want 7", stats.TotalEvents)
	}
	if got := stats.EventsByCategory[log.CategoryCall]; got != 4 {
		t.Errorf("call events = %d, want 4", got)
	}
	if stats.FailedCalls != 1 || stats.Errors != 1 {
		t.Errorf("FailedCalls = %d, Errors = %d", stats.FailedCalls, stats.Errors)
	}

	fn := stats.Functions["mnd_root_get_device_count"]
	if fn == nil {
		t.Fatal("missing mnd_root_get_device_count stats")
	}
	if fn.Calls != 2 || fn.Max != 60*time.Microsecond || fn.Mean() != 50*time.Microsecond {
		t.Errorf("device_count stats = %+v (mean %v)", *fn, fn.Mean())
	}

	conn := stats.Connections["conn-aaaaaaaa-1"]
	if conn == nil {
		t.Fatal("missing connection stats")
	}
	if conn.Events != 6 || conn.Version != "1.5.0" || conn.LastStage != log.StageRootCreated {
		t.Errorf("connection stats = %+v", *conn)
	}
	if conn.Library != "/usr/lib/libmonado.so" {
		t.Errorf("Library = %q", conn.Library)
	}
	if len(stats.Connections) != 2 {
		t.Errorf("connections = %d, want 2", len(stats.Connections))
	}
}

func TestRunStatsOutput(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	wants := []string{
		"Total Events: 7",
		"CALL:",
		"Calls by Function:",
		"mnd_root_get_device_count",
		"Connections: 2",
		"[conn-aaa]",
		"Version: 1.5.0",
		"Failed calls: 1",
		"Errors: 1",
	}
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	// Busiest function is listed first.
	if strings.Index(output, "mnd_root_get_device_count") > strings.Index(output, "mnd_api_get_version") {
		t.Errorf("functions not sorted by call count:\n%s", output)
	}
}

func TestFunctionStatsMeanEmpty(t *testing.T) {
	if got := (&FunctionStats{}).Mean(); got != 0 {
		t.Errorf("Mean() = %v, want 0", got)
	}
}

func TestRunStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
