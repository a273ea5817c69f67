// Package log provides structured call tracing for libmonado connections.
//
// This package defines the Logger interface and Event types for capturing
// every call a connection makes into the runtime library, plus its load and
// teardown steps. It is separate from operational logging (slog): the trace
// is a complete machine-readable record for debugging and analysis.
//
// # Basic Usage
//
// Applications configure tracing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.TraceLogger = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to binary file
//	cfg.TraceLogger, _ = log.NewFileLogger("/tmp/monado.mndlog")
//
//	// Both: use MultiLogger
//	cfg.TraceLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - Call: one libmonado entry point invocation (CallEvent)
//   - Lifecycle: load, version check, root create/destroy, unload (LifecycleEvent)
//   - Error: failures outside a single call (ErrorEventData)
//
// # File Format
//
// Trace files use CBOR encoding with the .mndlog extension. The mnd-log CLI
// tool provides viewing, filtering, and export capabilities.
package log
