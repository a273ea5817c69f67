// Command mnd-dump prints everything a Monado runtime reports through
// libmonado: API version, clients, devices, role bindings, tracking
// origins and reference space offsets.
//
// Usage:
//
//	mnd-dump [flags] [libmonado-path]
//
// Without a path the library is found through the active OpenXR runtime
// (LIBMONADO_PATH, XR_RUNTIME_JSON, then the XDG config directories).
//
// Flags:
//
//	-format string      Output format: text, json, yaml (default "text")
//	-ids                Show device name IDs
//	-log-level string   Log level: debug, info, warn, error (default "warn")
//	-trace-log string   Write a libmonado call trace (.mndlog)
//	-target string      Only describe one target, e.g. device/0 or space/stage
//
// Examples:
//
//	# Dump the active runtime
//	mnd-dump
//
//	# Dump a specific build as JSON
//	mnd-dump -format json ~/monado/build/src/xrt/targets/libmonado/libmonado.so
//
//	# Show the device bound to the left hand role
//	mnd-dump -target role/left
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/monado-tools/libmonado-go/internal/cli"
	"github.com/monado-tools/libmonado-go/pkg/inspect"
)

// Config holds the command configuration.
type Config struct {
	Format   string
	ShowIDs  bool
	LogLevel string
	TraceLog string
	Target   string
	Library  string
}

var config Config

func init() {
	flag.StringVar(&config.Format, "format", "text", "Output format: text, json, yaml")
	flag.BoolVar(&config.ShowIDs, "ids", false, "Show device name IDs")
	flag.StringVar(&config.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flag.StringVar(&config.TraceLog, "trace-log", "", "Write a libmonado call trace (.mndlog)")
	flag.StringVar(&config.Target, "target", "", "Only describe one target, e.g. device/0 or space/stage")
}

func main() {
	flag.Parse()
	if flag.NArg() > 0 {
		config.Library = flag.Arg(0)
	}

	if err := run(config, cli.Options{}, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run connects, dumps and disconnects. Fields of base that cfg does not
// cover (such as the loader) are kept.
func run(cfg Config, base cli.Options, w io.Writer) error {
	format, err := inspect.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	var target *inspect.Target
	if cfg.Target != "" {
		target, err = inspect.ParseTarget(cfg.Target)
		if err != nil {
			return err
		}
	}

	opts := base
	opts.Library = cfg.Library
	opts.TraceLog = cfg.TraceLog
	opts.LogLevel = cfg.LogLevel

	conn, err := cli.Connect(opts)
	if err != nil {
		return err
	}
	defer conn.Close()

	formatter := inspect.NewFormatter()
	formatter.ShowIDs = cfg.ShowIDs
	inspector := inspect.NewInspector(conn.Monado)

	var out any
	if target != nil {
		out, err = inspector.Describe(target)
	} else {
		out, err = inspector.Snapshot()
	}
	if err != nil {
		return err
	}
	return formatter.Write(w, out, format)
}
