package mnd

import (
	"errors"
	"sync"
)

// ErrUnsupportedPlatform is returned by Open on platforms without a dynamic
// loader binding.
var ErrUnsupportedPlatform = errors.New("dynamic loading not supported on this platform")

// Library is a loaded libmonado with its bound call table.
type Library struct {
	API

	path    string
	closeFn func() error
	once    sync.Once
	err     error
}

// NewLibrary wraps an already bound call table. closeFn releases whatever
// backs the table and may be nil. Alternative loaders (and tests) use this
// instead of Open.
func NewLibrary(path string, api API, closeFn func() error) *Library {
	return &Library{
		API:     api,
		path:    path,
		closeFn: closeFn,
	}
}

// Path returns the path the library was loaded from.
func (l *Library) Path() string {
	return l.path
}

// Close unloads the library. It is safe to call Close multiple times; only
// the first call releases the loader handle.
func (l *Library) Close() error {
	l.once.Do(func() {
		if l.closeFn != nil {
			l.err = l.closeFn()
		}
	})
	return l.err
}
