//go:build !(darwin || freebsd || linux)

package mnd

// Open is not available on this platform.
func Open(path string) (*Library, error) {
	return nil, ErrUnsupportedPlatform
}
