package commands

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/monado-tools/libmonado-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Functions        map[string]*FunctionStats
	Connections      map[string]*ConnectionStats
	FailedCalls      int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// FunctionStats holds call statistics for one libmonado function.
type FunctionStats struct {
	Calls    int
	Failures int
	Total    time.Duration
	Max      time.Duration
}

// Mean returns the average call duration.
func (f *FunctionStats) Mean() time.Duration {
	if f.Calls == 0 {
		return 0
	}
	return f.Total / time.Duration(f.Calls)
}

// ConnectionStats holds statistics for a single connection.
type ConnectionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Library   string
	Version   string
	LastStage log.LifecycleStage
	HasStage  bool
}

// CollectStats reads every event in the log file.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Functions:        make(map[string]*FunctionStats),
		Connections:      make(map[string]*ConnectionStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	conn, ok := s.Connections[event.ConnectionID]
	if !ok {
		conn = &ConnectionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Connections[event.ConnectionID] = conn
	}
	conn.Events++
	if event.Timestamp.After(conn.LastSeen) {
		conn.LastSeen = event.Timestamp
	}
	if event.LibraryPath != "" && conn.Library == "" {
		conn.Library = event.LibraryPath
	}

	switch {
	case event.Call != nil:
		fn, ok := s.Functions[event.Call.Function]
		if !ok {
			fn = &FunctionStats{}
			s.Functions[event.Call.Function] = fn
		}
		fn.Calls++
		fn.Total += event.Call.Duration
		fn.Max = max(fn.Max, event.Call.Duration)
		if event.Call.Failed() {
			fn.Failures++
			s.FailedCalls++
		}
	case event.Lifecycle != nil:
		conn.LastStage = event.Lifecycle.Stage
		conn.HasStage = true
		if event.Lifecycle.Version != "" {
			conn.Version = event.Lifecycle.Version
		}
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== libmonado Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryCall, log.CategoryLifecycle, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Functions) > 0 {
		names := make([]string, 0, len(stats.Functions))
		for name := range stats.Functions {
			names = append(names, name)
		}
		// Busiest first, then by name.
		slices.SortFunc(names, func(a, b string) int {
			if c := cmp.Compare(stats.Functions[b].Calls, stats.Functions[a].Calls); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})

		fmt.Fprintln(w, "Calls by Function:")
		for _, name := range names {
			fn := stats.Functions[name]
			fmt.Fprintf(w, "  %-40s %5d calls", name, fn.Calls)
			if fn.Failures > 0 {
				fmt.Fprintf(w, ", %d failed", fn.Failures)
			}
			fmt.Fprintf(w, ", mean %s, max %s\n", formatDuration(fn.Mean()), formatDuration(fn.Max))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Connections: %d\n", len(stats.Connections))
	if len(stats.Connections) > 0 {
		type connInfo struct {
			id    string
			stats *ConnectionStats
		}
		conns := make([]connInfo, 0, len(stats.Connections))
		for id, cs := range stats.Connections {
			conns = append(conns, connInfo{id, cs})
		}
		slices.SortFunc(conns, func(a, b connInfo) int {
			return a.stats.FirstSeen.Compare(b.stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, c := range conns {
			duration := c.stats.LastSeen.Sub(c.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenConnID(c.id), c.stats.Events, duration)
			if c.stats.Library != "" {
				fmt.Fprintf(w, "           Library: %s\n", c.stats.Library)
			}
			if c.stats.Version != "" {
				fmt.Fprintf(w, "           Version: %s\n", c.stats.Version)
			}
			if c.stats.HasStage {
				fmt.Fprintf(w, "           Last stage: %s\n", c.stats.LastStage)
			}
		}
	}

	if stats.FailedCalls > 0 || stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Failed calls: %d\n", stats.FailedCalls)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
