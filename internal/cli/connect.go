// Package cli holds the connection setup shared by the mnd-* commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/monado-tools/libmonado-go/pkg/log"
	"github.com/monado-tools/libmonado-go/pkg/monado"
)

// Options select how a command connects to the runtime.
type Options struct {
	// Library is an explicit libmonado path. Empty means auto-connect.
	Library string

	// TraceLog is a .mndlog file receiving every libmonado call.
	TraceLog string

	// LogLevel is debug, info, warn or error.
	LogLevel string

	// LogOutput receives slog output (default os.Stderr).
	LogOutput io.Writer

	// Loader overrides the library loader.
	Loader monado.Loader
}

// Conn is an open connection plus the trace file it writes to.
type Conn struct {
	*monado.Monado
	trace *log.FileLogger
}

// Close closes the connection and then the trace file, so the final
// lifecycle events are written.
func (c *Conn) Close() error {
	err := c.Monado.Close()
	if c.trace != nil {
		if terr := c.trace.Close(); err == nil {
			err = terr
		}
	}
	return err
}

// ParseLevel parses a log level name (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level: %s (use: debug, info, warn, error)", s)
	}
	return level, nil
}

// Connect opens a connection as described by opts.
func Connect(opts Options) (*Conn, error) {
	level, err := ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	cfg := monado.DefaultConfig()
	cfg.Logger = logger
	if opts.Loader != nil {
		cfg.Loader = opts.Loader
	}

	var trace *log.FileLogger
	if opts.TraceLog != "" {
		trace, err = log.NewFileLogger(opts.TraceLog)
		if err != nil {
			return nil, fmt.Errorf("trace log: %w", err)
		}
	}
	if level <= slog.LevelDebug || trace != nil {
		var file log.Logger
		if trace != nil {
			file = trace
		}
		cfg.TraceLogger = log.NewMultiLogger(file, log.NewSlogAdapter(logger))
	}

	var m *monado.Monado
	if opts.Library != "" {
		m, err = monado.CreateWithConfig(opts.Library, cfg)
	} else {
		m, err = monado.AutoConnectWithConfig(cfg)
	}
	if err != nil {
		if trace != nil {
			_ = trace.Close()
		}
		return nil, err
	}
	return &Conn{Monado: m, trace: trace}, nil
}
