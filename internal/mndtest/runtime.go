// Package mndtest provides an in-memory libmonado for tests.
//
// A Runtime fills an mnd.API with Go closures over plain data. Tests edit
// the exported fields, inject failures per symbol and then inspect call
// counts. It is safe for concurrent use.
package mndtest

import (
	"strings"
	"sync"

	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

// Client is a connected application as seen by the fake runtime.
type Client struct {
	ID    uint32
	Name  string
	State uint32
}

// Battery is the battery status reported for a device.
type Battery struct {
	Present  bool
	Charging bool
	Charge   float32
}

// Device is a device slot of the fake runtime.
type Device struct {
	NameID     uint32
	Name       string
	Bools      map[mnd.Property]bool
	I32s       map[mnd.Property]int32
	U32s       map[mnd.Property]uint32
	Floats     map[mnd.Property]float32
	Strings    map[mnd.Property]string
	Battery    Battery
	Brightness float32
}

// Origin is a tracking origin of the fake runtime.
type Origin struct {
	ID     uint32
	Name   string
	Offset mnd.Pose
}

// KnownRoles are the role names the fake runtime accepts.
var KnownRoles = []string{
	"head", "eyes", "left", "right", "gamepad",
	"hand-tracking-left", "hand-tracking-right",
}

// Runtime is a scriptable fake libmonado.
type Runtime struct {
	mu sync.Mutex

	// Version reported by mnd_api_get_version.
	Major, Minor, Patch uint32

	// Clients is the live client list. mnd_root_update_client_list
	// snapshots it; count and id queries read the snapshot.
	Clients []Client
	Devices []Device
	Origins []Origin

	// Roles maps role names to device indices. Known roles that are
	// missing report index -1.
	Roles map[string]int32

	Spaces map[mnd.ReferenceSpaceType]mnd.Pose

	// NoBrightness leaves the optional brightness slots unbound.
	NoBrightness bool

	// CreateRoot is the handle written by mnd_root_create, also when
	// CreateStatus is a failure. Zero picks a fresh handle on success and
	// writes nothing on failure.
	CreateRoot   mnd.Root
	CreateStatus mnd.Result

	// CreateNull makes a successful mnd_root_create leave the handle null.
	CreateNull bool

	// OnCall runs before every call with the symbol name, outside the lock.
	OnCall func(symbol string)

	failures    map[string]failure
	nullStrings map[string]bool
	calls       map[string]int
	listed      []Client
	live        map[mnd.Root]bool
	nextRoot    mnd.Root
	created     int
	destroyed   int
	unloads     int
	keep        [][]byte
}

type failure struct {
	status mnd.Result
	after  int
}

// New returns a runtime reporting version 1.5.0 with no entities.
func New() *Runtime {
	return &Runtime{
		Major:  1,
		Minor:  5,
		Patch:  0,
		Roles:  map[string]int32{},
		Spaces: map[mnd.ReferenceSpaceType]mnd.Pose{},
	}
}

// Fail makes every call to symbol return status.
func (r *Runtime) Fail(symbol string, status mnd.Result) {
	r.FailAfter(symbol, status, 0)
}

// FailAfter lets n calls to symbol succeed, then returns status.
func (r *Runtime) FailAfter(symbol string, status mnd.Result, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures == nil {
		r.failures = map[string]failure{}
	}
	r.failures[symbol] = failure{status: status, after: n}
}

// NullString makes string-returning calls to symbol succeed with a null
// pointer.
func (r *Runtime) NullString(symbol string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nullStrings == nil {
		r.nullStrings = map[string]bool{}
	}
	r.nullStrings[symbol] = true
}

// Calls returns how often symbol was called.
func (r *Runtime) Calls(symbol string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[symbol]
}

// RootsCreated returns the number of non-zero handles written by mnd_root_create.
func (r *Runtime) RootsCreated() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

// RootsDestroyed returns the number of handles released by mnd_root_destroy.
func (r *Runtime) RootsDestroyed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.destroyed
}

// LiveRoots returns the number of created handles not yet destroyed.
func (r *Runtime) LiveRoots() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Unloads returns how often a library built by Library was closed.
func (r *Runtime) Unloads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unloads
}

// Library wraps the call table in an mnd.Library whose Close is counted.
func (r *Runtime) Library(path string) *mnd.Library {
	return mnd.NewLibrary(path, r.API(), func() error {
		r.mu.Lock()
		r.unloads++
		r.mu.Unlock()
		return nil
	})
}

// Loader returns a loader function that ignores the path it is given.
func (r *Runtime) Loader() func(path string) (*mnd.Library, error) {
	return func(path string) (*mnd.Library, error) {
		return r.Library(path), nil
	}
}

// enter records a call and returns a non-success status when a failure is
// injected or the root is not live. The lock is held on return.
func (r *Runtime) enter(symbol string, root mnd.Root, checkRoot bool) mnd.Result {
	if hook := r.OnCall; hook != nil {
		hook(symbol)
	}
	r.mu.Lock()
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[symbol]++
	if f, ok := r.failures[symbol]; ok && r.calls[symbol] > f.after {
		return f.status
	}
	if checkRoot && !r.live[root] {
		return mnd.ErrorInvalidValue
	}
	return mnd.Success
}

// cstring returns a NUL-terminated copy of s kept alive by the runtime.
func (r *Runtime) cstring(symbol, s string) *byte {
	if r.nullStrings[symbol] {
		return nil
	}
	b := append([]byte(s), 0)
	r.keep = append(r.keep, b)
	return &b[0]
}

func (r *Runtime) device(index uint32) (*Device, mnd.Result) {
	if int(index) >= len(r.Devices) {
		return nil, mnd.ErrorInvalidValue
	}
	return &r.Devices[index], mnd.Success
}

func (r *Runtime) client(id uint32) (*Client, mnd.Result) {
	for i := range r.Clients {
		if r.Clients[i].ID == id {
			return &r.Clients[i], mnd.Success
		}
	}
	return nil, mnd.ErrorInvalidValue
}

func (r *Runtime) origin(id uint32) (*Origin, mnd.Result) {
	for i := range r.Origins {
		if r.Origins[i].ID == id {
			return &r.Origins[i], mnd.Success
		}
	}
	return nil, mnd.ErrorInvalidValue
}

// API returns a call table backed by the runtime.
func (r *Runtime) API() mnd.API {
	api := mnd.API{
		GetVersion: func(major, minor, patch *uint32) {
			r.enter("mnd_api_get_version", 0, false)
			defer r.mu.Unlock()
			*major, *minor, *patch = r.Major, r.Minor, r.Patch
		},

		RootCreate: func(out *mnd.Root) mnd.Result {
			if res := r.enter("mnd_root_create", 0, false); res != mnd.Success {
				r.mu.Unlock()
				return res
			}
			defer r.mu.Unlock()
			root := r.CreateRoot
			if root == 0 && (r.CreateNull || r.CreateStatus != mnd.Success) {
				return r.CreateStatus
			}
			if root == 0 {
				r.nextRoot += 0x10
				root = 0x1000 + r.nextRoot
			}
			*out = root
			if r.live == nil {
				r.live = map[mnd.Root]bool{}
			}
			r.live[root] = true
			r.created++
			return r.CreateStatus
		},

		RootDestroy: func(root *mnd.Root) {
			r.enter("mnd_root_destroy", 0, false)
			defer r.mu.Unlock()
			if r.live[*root] {
				delete(r.live, *root)
				r.destroyed++
			}
			*root = 0
		},

		UpdateClientList: func(root mnd.Root) mnd.Result {
			res := r.enter("mnd_root_update_client_list", root, true)
			defer r.mu.Unlock()
			if res == mnd.Success {
				r.listed = append([]Client(nil), r.Clients...)
			}
			return res
		},

		GetNumberClients: func(root mnd.Root, out *uint32) mnd.Result {
			res := r.enter("mnd_root_get_number_clients", root, true)
			defer r.mu.Unlock()
			if res == mnd.Success {
				*out = uint32(len(r.listed))
			}
			return res
		},

		GetClientIDAtIndex: func(root mnd.Root, index uint32, out *uint32) mnd.Result {
			res := r.enter("mnd_root_get_client_id_at_index", root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			if int(index) >= len(r.listed) {
				return mnd.ErrorInvalidValue
			}
			*out = r.listed[index].ID
			return mnd.Success
		},

		GetClientName: func(root mnd.Root, id uint32, out **byte) mnd.Result {
			const sym = "mnd_root_get_client_name"
			res := r.enter(sym, root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			c, res := r.client(id)
			if res == mnd.Success {
				*out = r.cstring(sym, c.Name)
			}
			return res
		},

		GetClientState: func(root mnd.Root, id uint32, out *uint32) mnd.Result {
			res := r.enter("mnd_root_get_client_state", root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			c, res := r.client(id)
			if res == mnd.Success {
				*out = c.State
			}
			return res
		},

		SetClientPrimary: func(root mnd.Root, id uint32) mnd.Result {
			res := r.enter("mnd_root_set_client_primary", root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			if _, res = r.client(id); res != mnd.Success {
				return res
			}
			for i := range r.Clients {
				if r.Clients[i].ID == id {
					r.Clients[i].State |= mnd.ClientPrimaryApp
				} else {
					r.Clients[i].State &^= mnd.ClientPrimaryApp
				}
			}
			return mnd.Success
		},

		SetClientFocused: func(root mnd.Root, id uint32) mnd.Result {
			res := r.enter("mnd_root_set_client_focused", root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			if _, res = r.client(id); res != mnd.Success {
				return res
			}
			for i := range r.Clients {
				if r.Clients[i].ID == id {
					r.Clients[i].State |= mnd.ClientSessionFocused
				} else {
					r.Clients[i].State &^= mnd.ClientSessionFocused
				}
			}
			return mnd.Success
		},

		ToggleClientIOActive: func(root mnd.Root, id uint32) mnd.Result {
			res := r.enter("mnd_root_toggle_client_io_active", root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			c, res := r.client(id)
			if res == mnd.Success {
				c.State ^= mnd.ClientIOActive
			}
			return res
		},

		GetDeviceCount: func(root mnd.Root, out *uint32) mnd.Result {
			res := r.enter("mnd_root_get_device_count", root, true)
			defer r.mu.Unlock()
			if res == mnd.Success {
				*out = uint32(len(r.Devices))
			}
			return res
		},

		GetDeviceInfo: func(root mnd.Root, index uint32, outNameID *uint32, outName **byte) mnd.Result {
			const sym = "mnd_root_get_device_info"
			res := r.enter(sym, root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			d, res := r.device(index)
			if res == mnd.Success {
				*outNameID = d.NameID
				*outName = r.cstring(sym, d.Name)
			}
			return res
		},

		GetDeviceFromRole: func(root mnd.Root, role string, out *int32) mnd.Result {
			res := r.enter("mnd_root_get_device_from_role", root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			known := false
			for _, k := range KnownRoles {
				if strings.EqualFold(k, role) {
					known = true
					break
				}
			}
			if !known {
				return mnd.ErrorInvalidValue
			}
			idx, ok := r.Roles[role]
			if !ok {
				idx = -1
			}
			*out = idx
			return mnd.Success
		},

		GetDeviceInfoBool: func(root mnd.Root, index uint32, prop mnd.Property, out *bool) mnd.Result {
			res := r.enter("mnd_root_get_device_info_bool", root, true)
			defer r.mu.Unlock()
			return lookupProperty(r, res, index, prop, out, func(d *Device) map[mnd.Property]bool { return d.Bools })
		},

		GetDeviceInfoI32: func(root mnd.Root, index uint32, prop mnd.Property, out *int32) mnd.Result {
			res := r.enter("mnd_root_get_device_info_i32", root, true)
			defer r.mu.Unlock()
			return lookupProperty(r, res, index, prop, out, func(d *Device) map[mnd.Property]int32 { return d.I32s })
		},

		GetDeviceInfoU32: func(root mnd.Root, index uint32, prop mnd.Property, out *uint32) mnd.Result {
			res := r.enter("mnd_root_get_device_info_u32", root, true)
			defer r.mu.Unlock()
			return lookupProperty(r, res, index, prop, out, func(d *Device) map[mnd.Property]uint32 { return d.U32s })
		},

		GetDeviceInfoFloat: func(root mnd.Root, index uint32, prop mnd.Property, out *float32) mnd.Result {
			res := r.enter("mnd_root_get_device_info_float", root, true)
			defer r.mu.Unlock()
			return lookupProperty(r, res, index, prop, out, func(d *Device) map[mnd.Property]float32 { return d.Floats })
		},

		GetDeviceInfoString: func(root mnd.Root, index uint32, prop mnd.Property, out **byte) mnd.Result {
			const sym = "mnd_root_get_device_info_string"
			res := r.enter(sym, root, true)
			defer r.mu.Unlock()
			var s string
			res = lookupProperty(r, res, index, prop, &s, func(d *Device) map[mnd.Property]string { return d.Strings })
			if res == mnd.Success {
				*out = r.cstring(sym, s)
			}
			return res
		},

		GetDeviceBatteryStatus: func(root mnd.Root, index uint32, present, charging *bool, charge *float32) mnd.Result {
			res := r.enter("mnd_root_get_device_battery_status", root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			d, res := r.device(index)
			if res == mnd.Success {
				*present = d.Battery.Present
				*charging = d.Battery.Charging
				*charge = d.Battery.Charge
			}
			return res
		},

		RecenterLocalSpaces: func(root mnd.Root) mnd.Result {
			res := r.enter("mnd_root_recenter_local_spaces", root, true)
			r.mu.Unlock()
			return res
		},

		GetReferenceSpaceOffset: func(root mnd.Root, space mnd.ReferenceSpaceType, out *mnd.Pose) mnd.Result {
			res := r.enter("mnd_root_get_reference_space_offset", root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			if !space.Valid() {
				return mnd.ErrorInvalidValue
			}
			p, ok := r.Spaces[space]
			if !ok {
				p = mnd.Pose{Orientation: mnd.Quaternion{W: 1}}
			}
			*out = p
			return mnd.Success
		},

		SetReferenceSpaceOffset: func(root mnd.Root, space mnd.ReferenceSpaceType, offset *mnd.Pose) mnd.Result {
			res := r.enter("mnd_root_set_reference_space_offset", root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			if !space.Valid() {
				return mnd.ErrorInvalidValue
			}
			if r.Spaces == nil {
				r.Spaces = map[mnd.ReferenceSpaceType]mnd.Pose{}
			}
			r.Spaces[space] = *offset
			return mnd.Success
		},

		GetTrackingOriginCount: func(root mnd.Root, out *uint32) mnd.Result {
			res := r.enter("mnd_root_get_tracking_origin_count", root, true)
			defer r.mu.Unlock()
			if res == mnd.Success {
				*out = uint32(len(r.Origins))
			}
			return res
		},

		GetTrackingOriginName: func(root mnd.Root, id uint32, out **byte) mnd.Result {
			const sym = "mnd_root_get_tracking_origin_name"
			res := r.enter(sym, root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			o, res := r.origin(id)
			if res == mnd.Success {
				*out = r.cstring(sym, o.Name)
			}
			return res
		},

		GetTrackingOriginOffset: func(root mnd.Root, id uint32, out *mnd.Pose) mnd.Result {
			res := r.enter("mnd_root_get_tracking_origin_offset", root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			o, res := r.origin(id)
			if res == mnd.Success {
				*out = o.Offset
			}
			return res
		},

		SetTrackingOriginOffset: func(root mnd.Root, id uint32, offset *mnd.Pose) mnd.Result {
			res := r.enter("mnd_root_set_tracking_origin_offset", root, true)
			defer r.mu.Unlock()
			if res != mnd.Success {
				return res
			}
			o, res := r.origin(id)
			if res == mnd.Success {
				o.Offset = *offset
			}
			return res
		},
	}

	if r.NoBrightness {
		return api
	}

	api.GetDeviceBrightness = func(root mnd.Root, index uint32, out *float32) mnd.Result {
		res := r.enter("mnd_root_get_device_brightness", root, true)
		defer r.mu.Unlock()
		if res != mnd.Success {
			return res
		}
		d, res := r.device(index)
		if res == mnd.Success {
			*out = d.Brightness
		}
		return res
	}
	api.SetDeviceBrightness = func(root mnd.Root, index uint32, brightness float32, relative bool) mnd.Result {
		res := r.enter("mnd_root_set_device_brightness", root, true)
		defer r.mu.Unlock()
		if res != mnd.Success {
			return res
		}
		d, res := r.device(index)
		if res != mnd.Success {
			return res
		}
		if relative {
			brightness += d.Brightness
		}
		d.Brightness = min(max(brightness, 0), 1)
		return mnd.Success
	}
	return api
}

func lookupProperty[T any](r *Runtime, res mnd.Result, index uint32, prop mnd.Property, out *T, pick func(*Device) map[mnd.Property]T) mnd.Result {
	if res != mnd.Success {
		return res
	}
	d, res := r.device(index)
	if res != mnd.Success {
		return res
	}
	v, ok := pick(d)[prop]
	if !ok {
		return mnd.ErrorInvalidProperty
	}
	*out = v
	return mnd.Success
}
