// Package commands implements the mnd-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/monado-tools/libmonado-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Category   *log.Category
	Function   string
	FailedOnly bool
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		Category:   f.Category,
		Function:   f.Function,
		FailedOnly: f.FailedOnly,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [conn:id] CATEGORY label
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	connID := shortenConnID(event.ConnectionID)

	var label string
	switch {
	case event.Call != nil:
		label = event.Call.Function
	case event.Lifecycle != nil:
		label = event.Lifecycle.Stage.String()
	case event.Error != nil:
		label = "Error"
	default:
		label = "Unknown"
	}

	fmt.Fprintf(w, "%s [conn:%s] %-9s %s\n", ts, connID, event.Category.String(), label)

	switch {
	case event.Call != nil:
		formatCallDetails(w, event.Call)
	case event.Lifecycle != nil:
		formatLifecycleDetails(w, event.Lifecycle, event.LibraryPath)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatCallDetails(w io.Writer, call *log.CallEvent) {
	if call.Target != "" {
		fmt.Fprintf(w, "  Target: %s\n", call.Target)
	}
	fmt.Fprintf(w, "  Status: %s (%d)\n", call.Status.String(), int32(call.Status))
	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(call.Duration))
}

func formatLifecycleDetails(w io.Writer, lc *log.LifecycleEvent, library string) {
	if library != "" {
		fmt.Fprintf(w, "  Library: %s\n", library)
	}
	if lc.Version != "" {
		fmt.Fprintf(w, "  Version: %s\n", lc.Version)
	}
	if lc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", lc.Reason)
	}
}

func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	if e.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", e.Context)
	}
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	if e.Code != nil {
		fmt.Fprintf(w, "  Code: %s (%d)\n", e.Code.String(), int32(*e.Code))
	}
}

// formatDuration formats a duration with an appropriate unit.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1e6)
	default:
		return d.Round(time.Millisecond).String()
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be call, lifecycle, or error)", s)
	}
	return c, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
