package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk configuration loaded with -config.
//
// Example:
//
//	library: /usr/lib/libmonado.so
//	trace_log: /tmp/mnd-ctl.mndlog
//	log_level: debug
type FileConfig struct {
	Library  string `yaml:"library"`
	TraceLog string `yaml:"trace_log"`
	LogLevel string `yaml:"log_level"`
}

// LoadFileConfig reads a YAML configuration file. Unknown keys are errors.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// apply fills fields of c that were not set on the command line.
func (fc *FileConfig) apply(c *Config, setFlags map[string]bool) {
	if !setFlags["library"] && fc.Library != "" {
		c.Library = fc.Library
	}
	if !setFlags["trace-log"] && fc.TraceLog != "" {
		c.TraceLog = fc.TraceLog
	}
	if !setFlags["log-level"] && fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
}
