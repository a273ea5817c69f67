//go:build !linux

package discovery

// SystemProber cannot query the loader's resolved path on this platform, so
// bare names always fall back to directory-relative resolution.
type SystemProber struct{}

// ProbeLibrary implements LibraryProber.
func (SystemProber) ProbeLibrary(string) (string, bool) {
	return "", false
}
