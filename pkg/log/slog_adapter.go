package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see libmonado calls in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Failed calls and error events
// are logged at Warn, everything else at Debug.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("category", event.Category.String()),
	}
	if event.LibraryPath != "" {
		attrs = append(attrs, slog.String("library", event.LibraryPath))
	}

	switch {
	case event.Call != nil:
		attrs = append(attrs,
			slog.String("function", event.Call.Function),
			slog.String("status", event.Call.Status.String()),
			slog.Duration("duration", event.Call.Duration),
		)
		if event.Call.Target != "" {
			attrs = append(attrs, slog.String("target", event.Call.Target))
		}
		if event.Call.Failed() {
			level = slog.LevelWarn
		}
	case event.Lifecycle != nil:
		attrs = append(attrs, slog.String("stage", event.Lifecycle.Stage.String()))
		if event.Lifecycle.Version != "" {
			attrs = append(attrs, slog.String("version", event.Lifecycle.Version))
		}
		if event.Lifecycle.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Lifecycle.Reason))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.String("error_code", event.Error.Code.String()))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "libmonado", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
