//go:build darwin || freebsd || linux

package mnd

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Open loads the shared object at path and binds the call table.
func Open(path string) (*Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	var api API
	lookup := func(name string) (uintptr, error) {
		return purego.Dlsym(handle, name)
	}
	if err := Bind(&api, lookup, purego.RegisterFunc); err != nil {
		_ = purego.Dlclose(handle)
		return nil, err
	}

	return NewLibrary(path, api, func() error {
		return purego.Dlclose(handle)
	}), nil
}
