package discovery

// LibraryProber asks the platform dynamic loader to find a library by bare
// file name using its own search path.
type LibraryProber interface {
	// ProbeLibrary loads name through the loader search path and returns
	// the canonical path the loader resolved it to. The probe load is
	// released before returning. ok is false if the library was not found
	// or the platform cannot report the path.
	ProbeLibrary(name string) (path string, ok bool)
}

// NoProber never finds anything, forcing directory-relative resolution.
type NoProber struct{}

// ProbeLibrary always reports not found.
func (NoProber) ProbeLibrary(string) (string, bool) {
	return "", false
}

// Compile-time interface satisfaction checks.
var (
	_ LibraryProber = NoProber{}
	_ LibraryProber = SystemProber{}
)
