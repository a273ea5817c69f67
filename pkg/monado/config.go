package monado

import (
	"log/slog"

	"github.com/monado-tools/libmonado-go/pkg/discovery"
	"github.com/monado-tools/libmonado-go/pkg/log"
	"github.com/monado-tools/libmonado-go/pkg/mnd"
	"github.com/monado-tools/libmonado-go/pkg/version"
)

// Loader loads libmonado from path and binds its call table.
type Loader func(path string) (*mnd.Library, error)

// Config controls how a connection is made.
type Config struct {
	// Logger receives operational debug output. Defaults to slog.Default().
	Logger *slog.Logger

	// TraceLogger receives one event per libmonado call plus lifecycle
	// events. Defaults to log.NoopLogger.
	TraceLogger log.Logger

	// Loader loads the library. Defaults to mnd.Open.
	Loader Loader

	// Environment is used by AutoConnect for runtime resolution.
	// Nil captures the process environment at connect time.
	Environment discovery.Environment

	// Prober resolves bare library names through the system loader.
	// Defaults to discovery.SystemProber.
	Prober discovery.LibraryProber

	// Requirement is the accepted API version range.
	// Defaults to version.Required.
	Requirement string
}

// DefaultConfig returns a Config with all defaults filled in.
func DefaultConfig() Config {
	return Config{
		Logger:      slog.Default(),
		TraceLogger: log.NoopLogger{},
		Loader:      mnd.Open,
		Prober:      discovery.SystemProber{},
		Requirement: version.Required,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Logger == nil {
		c.Logger = d.Logger
	}
	if c.TraceLogger == nil {
		c.TraceLogger = d.TraceLogger
	}
	if c.Loader == nil {
		c.Loader = d.Loader
	}
	if c.Prober == nil {
		c.Prober = d.Prober
	}
	if c.Requirement == "" {
		c.Requirement = d.Requirement
	}
	return c
}
