package discovery

import (
	"os"
	"path/filepath"
	"strings"
)

// Environment variable names consulted during resolution.
const (
	EnvLibmonadoPath = "LIBMONADO_PATH"
	EnvRuntimeJSON   = "XR_RUNTIME_JSON"
	EnvConfigHome    = "XDG_CONFIG_HOME"
	EnvConfigDirs    = "XDG_CONFIG_DIRS"
	EnvHome          = "HOME"
)

// ActiveRuntimeSubpath is the manifest location relative to a config directory.
const ActiveRuntimeSubpath = "openxr/1/active_runtime.json"

// defaultConfigDirs is used when XDG_CONFIG_DIRS is unset or empty.
var defaultConfigDirs = []string{"/etc/xdg"}

// Environment is a snapshot of environment variables.
type Environment map[string]string

// OSEnvironment captures the current process environment.
func OSEnvironment() Environment {
	env := make(Environment)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			env[k] = v
		}
	}
	return env
}

// Lookup returns the value of key and whether it is set.
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// ConfigDirs returns the XDG configuration directories, most specific first.
// Relative entries are ignored as the XDG base directory rules require.
func (e Environment) ConfigDirs() []string {
	var dirs []string

	if home := e[EnvConfigHome]; home != "" && filepath.IsAbs(home) {
		dirs = append(dirs, home)
	} else if h := e[EnvHome]; h != "" && filepath.IsAbs(h) {
		dirs = append(dirs, filepath.Join(h, ".config"))
	}

	var system []string
	for _, d := range filepath.SplitList(e[EnvConfigDirs]) {
		if d != "" && filepath.IsAbs(d) {
			system = append(system, d)
		}
	}
	if len(system) == 0 {
		system = defaultConfigDirs
	}

	return append(dirs, system...)
}

// ManifestCandidates returns the active runtime manifest paths to try, in
// priority order.
func (e Environment) ManifestCandidates() []string {
	var paths []string
	if p, ok := e[EnvRuntimeJSON]; ok {
		paths = append(paths, p)
	}
	for _, dir := range e.ConfigDirs() {
		paths = append(paths, filepath.Join(dir, ActiveRuntimeSubpath))
	}
	return paths
}
