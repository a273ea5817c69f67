package mnd

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrMissingSymbol is returned when a required entry point is not exported
// by the loaded library.
var ErrMissingSymbol = errors.New("missing libmonado symbol")

// API is the libmonado call table. Every slot is bound by the C symbol named
// in its tag. Out-parameters are written by the callee; returned strings
// (**byte) point into runtime-owned memory.
type API struct {
	GetVersion func(major, minor, patch *uint32) `mnd:"mnd_api_get_version"`

	RootCreate  func(outRoot *Root) Result `mnd:"mnd_root_create"`
	RootDestroy func(root *Root)           `mnd:"mnd_root_destroy"`

	UpdateClientList     func(root Root) Result                                       `mnd:"mnd_root_update_client_list"`
	GetNumberClients     func(root Root, outNum *uint32) Result                       `mnd:"mnd_root_get_number_clients"`
	GetClientIDAtIndex   func(root Root, index uint32, outClientID *uint32) Result    `mnd:"mnd_root_get_client_id_at_index"`
	GetClientName        func(root Root, clientID uint32, outName **byte) Result      `mnd:"mnd_root_get_client_name"`
	GetClientState       func(root Root, clientID uint32, outFlags *uint32) Result    `mnd:"mnd_root_get_client_state"`
	SetClientPrimary     func(root Root, clientID uint32) Result                      `mnd:"mnd_root_set_client_primary"`
	SetClientFocused     func(root Root, clientID uint32) Result                      `mnd:"mnd_root_set_client_focused"`
	ToggleClientIOActive func(root Root, clientID uint32) Result                      `mnd:"mnd_root_toggle_client_io_active"`

	GetDeviceCount         func(root Root, outCount *uint32) Result                                           `mnd:"mnd_root_get_device_count"`
	GetDeviceInfo          func(root Root, index uint32, outNameID *uint32, outName **byte) Result            `mnd:"mnd_root_get_device_info"`
	GetDeviceFromRole      func(root Root, roleName string, outIndex *int32) Result                           `mnd:"mnd_root_get_device_from_role"`
	GetDeviceInfoBool      func(root Root, index uint32, prop Property, out *bool) Result                     `mnd:"mnd_root_get_device_info_bool"`
	GetDeviceInfoI32       func(root Root, index uint32, prop Property, out *int32) Result                    `mnd:"mnd_root_get_device_info_i32"`
	GetDeviceInfoU32       func(root Root, index uint32, prop Property, out *uint32) Result                   `mnd:"mnd_root_get_device_info_u32"`
	GetDeviceInfoFloat     func(root Root, index uint32, prop Property, out *float32) Result                  `mnd:"mnd_root_get_device_info_float"`
	GetDeviceInfoString    func(root Root, index uint32, prop Property, out **byte) Result                    `mnd:"mnd_root_get_device_info_string"`
	GetDeviceBatteryStatus func(root Root, index uint32, present, charging *bool, charge *float32) Result     `mnd:"mnd_root_get_device_battery_status"`
	GetDeviceBrightness    func(root Root, index uint32, out *float32) Result                                 `mnd:"mnd_root_get_device_brightness,optional"`
	SetDeviceBrightness    func(root Root, index uint32, brightness float32, relative bool) Result            `mnd:"mnd_root_set_device_brightness,optional"`

	RecenterLocalSpaces     func(root Root) Result                                          `mnd:"mnd_root_recenter_local_spaces"`
	GetReferenceSpaceOffset func(root Root, space ReferenceSpaceType, out *Pose) Result    `mnd:"mnd_root_get_reference_space_offset"`
	SetReferenceSpaceOffset func(root Root, space ReferenceSpaceType, offset *Pose) Result `mnd:"mnd_root_set_reference_space_offset"`

	GetTrackingOriginCount  func(root Root, outCount *uint32) Result                 `mnd:"mnd_root_get_tracking_origin_count"`
	GetTrackingOriginName   func(root Root, originID uint32, outName **byte) Result  `mnd:"mnd_root_get_tracking_origin_name"`
	GetTrackingOriginOffset func(root Root, originID uint32, out *Pose) Result       `mnd:"mnd_root_get_tracking_origin_offset"`
	SetTrackingOriginOffset func(root Root, originID uint32, offset *Pose) Result    `mnd:"mnd_root_set_tracking_origin_offset"`
}

// Symbol describes one slot of the call table.
type Symbol struct {
	Name     string
	Field    string
	Optional bool
}

// Symbols returns the entry points of the call table in declaration order.
func Symbols() []Symbol {
	t := reflect.TypeFor[API]()
	syms := make([]Symbol, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup("mnd")
		if !ok {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		syms = append(syms, Symbol{
			Name:     name,
			Field:    f.Name,
			Optional: opts == "optional",
		})
	}
	return syms
}

// SymbolLookup resolves a symbol name to its address in a loaded library.
type SymbolLookup func(name string) (uintptr, error)

// FuncRegistrar turns a symbol address into a callable Go function stored
// through fptr (a pointer to a func-typed slot).
type FuncRegistrar func(fptr any, addr uintptr)

// Bind fills every slot of api. Required symbols that cannot be resolved
// abort the bind with ErrMissingSymbol; optional ones leave the slot nil.
func Bind(api *API, lookup SymbolLookup, register FuncRegistrar) error {
	v := reflect.ValueOf(api).Elem()
	for _, sym := range Symbols() {
		slot := v.FieldByName(sym.Field)
		addr, err := lookup(sym.Name)
		if err != nil || addr == 0 {
			if sym.Optional {
				slot.SetZero()
				continue
			}
			if err == nil {
				err = errors.New("null address")
			}
			return fmt.Errorf("%w: %s: %v", ErrMissingSymbol, sym.Name, err)
		}
		register(slot.Addr().Interface(), addr)
	}
	return nil
}
