package discovery

import (
	"encoding/json"
	"errors"
)

// RuntimeManifest is the subset of an OpenXR active runtime manifest this
// package reads.
type RuntimeManifest struct {
	Runtime RuntimeInfo `json:"runtime"`
}

// RuntimeInfo is the "runtime" object of the manifest.
type RuntimeInfo struct {
	// LibraryPath is the OpenXR runtime library. It is required by the
	// schema but not used for resolution.
	LibraryPath string `json:"library_path"`

	// LibmonadoPath is the vendor key naming libmonado. Nil when absent.
	LibmonadoPath *string `json:"MND_libmonado_path,omitempty"`
}

// ParseRuntimeManifest decodes an active runtime manifest.
func ParseRuntimeManifest(data []byte) (*RuntimeManifest, error) {
	var m RuntimeManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Runtime.LibraryPath == "" {
		return nil, errors.New("missing runtime.library_path")
	}
	return &m, nil
}
