// Package discovery locates the libmonado shared object to load when the
// caller does not name one.
//
// # Resolution Order
//
//  1. LIBMONADO_PATH names the library directly. It must be an existing
//     regular file; otherwise resolution fails without further fallback.
//  2. The active OpenXR runtime manifest is located: XR_RUNTIME_JSON first,
//     then openxr/1/active_runtime.json under $XDG_CONFIG_HOME and each
//     $XDG_CONFIG_DIRS entry, most specific first.
//  3. The first manifest that exists and parses supplies
//     runtime.MND_libmonado_path. Unreadable or malformed manifests are
//     skipped.
//  4. Relative library paths resolve against the symlink-resolved directory
//     of that manifest. Bare file names are first looked up through the
//     dynamic loader's own search path.
//
// All inputs come from an Environment snapshot and a LibraryProber, so the
// algorithm can be exercised without touching the process environment:
//
//	r := discovery.NewResolver(discovery.OSEnvironment(), discovery.SystemProber{})
//	path, err := r.Resolve()
package discovery
