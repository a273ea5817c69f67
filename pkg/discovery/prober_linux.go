//go:build linux

package discovery

import (
	"sync"

	"github.com/ebitengine/purego"
	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

// RTLD_DI_LINKMAP from <dlfcn.h>.
const rtldDILinkmap = 2

// linkMap mirrors the leading fields of glibc's struct link_map.
type linkMap struct {
	addr uintptr
	name *byte
	ld   uintptr
	next *linkMap
	prev *linkMap
}

var (
	dlinfoOnce sync.Once
	dlinfoFn   func(handle uintptr, request int32, info **linkMap) int32
)

func loadDlinfo() {
	addr, err := purego.Dlsym(purego.RTLD_DEFAULT, "dlinfo")
	if err != nil {
		// glibc before 2.34 keeps dlinfo in libdl.
		lib, lerr := purego.Dlopen("libdl.so.2", purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if lerr != nil {
			return
		}
		if addr, err = purego.Dlsym(lib, "dlinfo"); err != nil {
			return
		}
	}
	purego.RegisterFunc(&dlinfoFn, addr)
}

// SystemProber resolves bare library names with dlopen and
// dlinfo(RTLD_DI_LINKMAP).
type SystemProber struct{}

// ProbeLibrary implements LibraryProber.
func (SystemProber) ProbeLibrary(name string) (string, bool) {
	dlinfoOnce.Do(loadDlinfo)
	if dlinfoFn == nil {
		return "", false
	}

	handle, err := purego.Dlopen(name, purego.RTLD_LAZY|purego.RTLD_LOCAL)
	if err != nil {
		return "", false
	}
	defer purego.Dlclose(handle)

	var lm *linkMap
	if dlinfoFn(handle, rtldDILinkmap, &lm) != 0 || lm == nil {
		return "", false
	}

	path, err := mnd.GoString(lm.name)
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}
