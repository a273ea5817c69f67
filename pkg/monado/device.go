package monado

import (
	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

// Device is a device slot of the runtime. Index is valid for the
// enumeration that produced it. NameID is the runtime's device name
// enumeration value and is not unique.
type Device[R Ref] struct {
	Index  uint32
	NameID uint32
	Name   string
	ref    R
}

// BatteryStatus is the battery state of a device. Charging and Charge are
// only meaningful when Present is true.
type BatteryStatus struct {
	Present  bool    `json:"present" yaml:"present"`
	Charging bool    `json:"charging" yaml:"charging"`
	Charge   float32 `json:"charge" yaml:"charge"`
}

// DevicesOf returns every device in index order. Any failure aborts the
// whole enumeration.
func DevicesOf[R Ref](r R) ([]Device[R], error) {
	m := r.Monado()

	var count uint32
	err := m.invoke("mnd_root_get_device_count", "", func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.GetDeviceCount(root, &count)
	})
	if err != nil {
		return nil, err
	}

	devices := make([]Device[R], 0, count)
	for i := range count {
		d, err := deviceAt(r, i)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// DeviceFromRoleOf returns the device bound to role. A role without a
// device reports mnd.ErrorInvalidValue.
func DeviceFromRoleOf[R Ref](r R, role DeviceRole) (Device[R], error) {
	idx, err := r.Monado().DeviceIndexFromRole(role)
	if err != nil {
		return Device[R]{}, err
	}
	return deviceAt(r, idx)
}

func deviceAt[R Ref](r R, index uint32) (Device[R], error) {
	var nameID uint32
	name, err := r.Monado().invokeString("mnd_root_get_device_info", deviceTarget(index),
		func(api *mnd.API, root mnd.Root, out **byte) mnd.Result {
			return api.GetDeviceInfo(root, index, &nameID, out)
		})
	if err != nil {
		return Device[R]{}, err
	}
	return Device[R]{Index: index, NameID: nameID, Name: name, ref: r}, nil
}

// Ref returns the reference the device reaches its connection through.
func (d Device[R]) Ref() R {
	return d.ref
}

func deviceInfo[T any](m *Monado, index uint32, function string, call func(api *mnd.API, root mnd.Root, index uint32, out *T) mnd.Result) (T, error) {
	var out T
	err := m.invoke(function, deviceTarget(index), func(api *mnd.API, root mnd.Root) mnd.Result {
		return call(api, root, index, &out)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// InfoBool returns a boolean device property.
func (d Device[R]) InfoBool(prop mnd.Property) (bool, error) {
	return deviceInfo(d.ref.Monado(), d.Index, "mnd_root_get_device_info_bool", func(api *mnd.API, root mnd.Root, index uint32, out *bool) mnd.Result {
		return api.GetDeviceInfoBool(root, index, prop, out)
	})
}

// InfoI32 returns a signed integer device property.
func (d Device[R]) InfoI32(prop mnd.Property) (int32, error) {
	return deviceInfo(d.ref.Monado(), d.Index, "mnd_root_get_device_info_i32", func(api *mnd.API, root mnd.Root, index uint32, out *int32) mnd.Result {
		return api.GetDeviceInfoI32(root, index, prop, out)
	})
}

// InfoU32 returns an unsigned integer device property.
func (d Device[R]) InfoU32(prop mnd.Property) (uint32, error) {
	return deviceInfo(d.ref.Monado(), d.Index, "mnd_root_get_device_info_u32", func(api *mnd.API, root mnd.Root, index uint32, out *uint32) mnd.Result {
		return api.GetDeviceInfoU32(root, index, prop, out)
	})
}

// InfoF32 returns a float device property.
func (d Device[R]) InfoF32(prop mnd.Property) (float32, error) {
	return deviceInfo(d.ref.Monado(), d.Index, "mnd_root_get_device_info_float", func(api *mnd.API, root mnd.Root, index uint32, out *float32) mnd.Result {
		return api.GetDeviceInfoFloat(root, index, prop, out)
	})
}

// InfoString returns a string device property, copied out of runtime
// memory.
func (d Device[R]) InfoString(prop mnd.Property) (string, error) {
	return d.ref.Monado().invokeString("mnd_root_get_device_info_string", deviceTarget(d.Index),
		func(api *mnd.API, root mnd.Root, out **byte) mnd.Result {
			return api.GetDeviceInfoString(root, d.Index, prop, out)
		})
}

// Serial returns the device serial number.
func (d Device[R]) Serial() (string, error) {
	return d.InfoString(mnd.PropertySerialString)
}

// BatteryStatus returns the battery state reported in one call.
func (d Device[R]) BatteryStatus() (BatteryStatus, error) {
	var s BatteryStatus
	err := d.ref.Monado().invoke("mnd_root_get_device_battery_status", deviceTarget(d.Index), func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.GetDeviceBatteryStatus(root, d.Index, &s.Present, &s.Charging, &s.Charge)
	})
	if err != nil {
		return BatteryStatus{}, err
	}
	return s, nil
}

// Brightness returns the display brightness of the device. Libraries
// without brightness support report mnd.ErrorInvalidOperation.
func (d Device[R]) Brightness() (float32, error) {
	return deviceInfo(d.ref.Monado(), d.Index, "mnd_root_get_device_brightness", func(api *mnd.API, root mnd.Root, index uint32, out *float32) mnd.Result {
		if api.GetDeviceBrightness == nil {
			return mnd.ErrorInvalidOperation
		}
		return api.GetDeviceBrightness(root, index, out)
	})
}

// SetBrightness sets the display brightness, or adds to it when relative is
// true. Libraries without brightness support report mnd.ErrorInvalidOperation.
func (d Device[R]) SetBrightness(brightness float32, relative bool) error {
	return d.ref.Monado().invoke("mnd_root_set_device_brightness", deviceTarget(d.Index), func(api *mnd.API, root mnd.Root) mnd.Result {
		if api.SetDeviceBrightness == nil {
			return mnd.ErrorInvalidOperation
		}
		return api.SetDeviceBrightness(root, d.Index, brightness, relative)
	})
}
