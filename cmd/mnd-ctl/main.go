// Command mnd-ctl controls a running Monado service through libmonado.
//
// Without an action flag it lists the connected clients.
//
// Usage:
//
//	mnd-ctl [flags]
//
// Flags:
//
//	-config string       YAML configuration file (library, trace_log, log_level)
//	-library string      libmonado path (default: found through the active OpenXR runtime)
//	-log-level string    Log level: debug, info, warn, error (default "warn")
//	-trace-log string    Write a libmonado call trace (.mndlog)
//	-p id                Make a client the primary application
//	-f id                Give a client focus
//	-i id                Toggle a client's IO
//	-recenter            Recenter the local spaces
//	-role string         Show the device bound to a role
//	-brightness dev=v    Set device brightness (+v/-v is relative)
//	-space name=pose     Set a reference space offset
//	-origin id=pose      Set a tracking origin offset
//	-interactive         Enable interactive command mode
//
// Poses are written x,y,z or x,y,z,qx,qy,qz,qw.
//
// Examples:
//
//	# List clients
//	mnd-ctl
//
//	# Make client 3 primary and focus it
//	mnd-ctl -p 3 -f 3
//
//	# Raise the floor by 10cm
//	mnd-ctl -space local-floor=0,-0.1,0
//
//	# Dim the headset
//	mnd-ctl -brightness 0=-0.2
//
//	# Interactive mode with a call trace
//	mnd-ctl -interactive -trace-log /tmp/session.mndlog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/monado-tools/libmonado-go/cmd/mnd-ctl/interactive"
	"github.com/monado-tools/libmonado-go/internal/cli"
	"github.com/monado-tools/libmonado-go/pkg/inspect"
)

// Config holds the command configuration.
type Config struct {
	ConfigFile  string
	Library     string
	LogLevel    string
	TraceLog    string
	Interactive bool
	Actions     Actions
}

var config Config

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "YAML configuration file (library, trace_log, log_level)")
	flag.StringVar(&config.Library, "library", "", "libmonado path (default: found through the active OpenXR runtime)")
	flag.StringVar(&config.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flag.StringVar(&config.TraceLog, "trace-log", "", "Write a libmonado call trace (.mndlog)")
	flag.BoolVar(&config.Interactive, "interactive", false, "Enable interactive command mode")

	flag.Var(&config.Actions.Primary, "p", "Make a client the primary application")
	flag.Var(&config.Actions.Focused, "f", "Give a client focus")
	flag.Var(&config.Actions.IOToggle, "i", "Toggle a client's IO")
	flag.BoolVar(&config.Actions.Recenter, "recenter", false, "Recenter the local spaces")
	flag.StringVar(&config.Actions.Role, "role", "", "Show the device bound to a role")
	flag.StringVar(&config.Actions.Brightness, "brightness", "", "Set device brightness as device=value (+v/-v is relative)")
	flag.StringVar(&config.Actions.Space, "space", "", "Set a reference space offset as name=pose")
	flag.StringVar(&config.Actions.Origin, "origin", "", "Set a tracking origin offset as id=pose")
}

func main() {
	flag.Parse()

	if config.ConfigFile != "" {
		fc, err := LoadFileConfig(config.ConfigFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		fc.apply(&config, set)
	}

	setupLogging(config.LogLevel)

	if err := run(config, cli.Options{}, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run connects and applies the configured actions. Fields of base that
// cfg does not cover (such as the loader) are kept.
func run(cfg Config, base cli.Options, w io.Writer) error {
	opts := base
	opts.Library = cfg.Library
	opts.TraceLog = cfg.TraceLog
	opts.LogLevel = cfg.LogLevel

	conn, err := cli.Connect(opts)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("Connected to libmonado %s at %s", conn.APIVersion(), conn.Path())

	if !cfg.Actions.empty() {
		if err := applyActions(conn.Monado, &cfg.Actions, w); err != nil {
			return err
		}
	} else if !cfg.Interactive {
		if err := listClients(conn.Monado, w, inspect.NewFormatter()); err != nil {
			return err
		}
	}

	if cfg.Interactive {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return interactive.New(conn.Monado).Run(ctx)
	}
	return nil
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetOutput(io.Discard)
	}
}
