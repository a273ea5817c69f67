package discovery

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Resolution errors.
var (
	ErrLibraryOverrideInvalid    = errors.New("LIBMONADO_PATH does not point to a valid file")
	ErrNoRuntimeManifest         = errors.New("couldn't find the active runtime json")
	ErrRuntimeManifestUnparsable = errors.New("couldn't parse the active runtime json")
	ErrNoLibmonadoPath           = errors.New("couldn't find libmonado path in active runtime json")
	ErrCanonicalize              = errors.New("failed to canonicalize runtime json path")
	ErrInvalidLibraryName        = errors.New("library name contains invalid unicode characters")
)

// Resolver finds the libmonado library path from an environment snapshot.
type Resolver struct {
	env    Environment
	prober LibraryProber
	logger *slog.Logger
}

// NewResolver creates a Resolver. A nil prober disables loader-search
// lookups for bare file names.
func NewResolver(env Environment, prober LibraryProber) *Resolver {
	if prober == nil {
		prober = NoProber{}
	}
	return &Resolver{
		env:    env,
		prober: prober,
		logger: slog.Default(),
	}
}

// SetLogger sets the logger used for resolution debug output.
func (r *Resolver) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Resolve returns the path of the libmonado shared object to load.
func (r *Resolver) Resolve() (string, error) {
	if p, ok := r.env.Lookup(EnvLibmonadoPath); ok {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			return "", ErrLibraryOverrideInvalid
		}
		r.logger.Debug("using library override", "env", EnvLibmonadoPath, "path", p)
		return p, nil
	}

	manifest, manifestPath, err := r.FindManifest()
	if err != nil {
		return "", err
	}

	lib := manifest.Runtime.LibmonadoPath
	if lib == nil || *lib == "" {
		return "", ErrNoLibmonadoPath
	}

	path, err := ResolveLibraryPath(*lib, manifestPath, r.prober)
	if err != nil {
		return "", err
	}
	r.logger.Debug("resolved libmonado", "manifest", manifestPath, "entry", *lib, "path", path)
	return path, nil
}

// FindManifest returns the first manifest candidate that exists and parses,
// together with the path it was read from.
func (r *Resolver) FindManifest() (*RuntimeManifest, string, error) {
	var lastErr error
	for _, p := range r.env.ManifestCandidates() {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		m, err := ParseRuntimeManifest(data)
		if err != nil {
			r.logger.Debug("skipping unparsable runtime manifest", "path", p, "error", err)
			lastErr = fmt.Errorf("%s: %w", p, err)
			continue
		}
		return m, p, nil
	}

	if lastErr != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrRuntimeManifestUnparsable, lastErr)
	}
	return nil, "", ErrNoRuntimeManifest
}

// ResolveLibraryPath resolves the manifest's libmonado entry lib against the
// real directory of manifestPath.
//
// Paths with more than one component are joined to that directory as-is.
// Bare file names are first offered to prober and fall back to the join.
func ResolveLibraryPath(lib, manifestPath string, prober LibraryProber) (string, error) {
	dir, err := realDir(manifestPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCanonicalize, err)
	}

	if filepath.IsAbs(lib) {
		return lib, nil
	}

	joined := filepath.Join(dir, lib)
	if !isBareName(lib) {
		return joined, nil
	}

	if !utf8.ValidString(lib) {
		return "", ErrInvalidLibraryName
	}

	if prober != nil {
		if p, ok := prober.ProbeLibrary(lib); ok {
			return p, nil
		}
	}
	return joined, nil
}

// realDir returns the directory containing the symlink-resolved path.
func realDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return filepath.Dir(resolved), nil
}

// isBareName reports whether lib is a single path component.
func isBareName(lib string) bool {
	return !strings.ContainsFunc(lib, func(r rune) bool {
		return r < utf8.RuneSelf && os.IsPathSeparator(uint8(r))
	})
}
