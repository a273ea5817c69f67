package inspect

import "github.com/monado-tools/libmonado-go/pkg/monado"

// Snapshot is a point-in-time view of a runtime.
type Snapshot struct {
	Library         string       `json:"library" yaml:"library"`
	Version         string       `json:"version" yaml:"version"`
	Clients         []ClientInfo `json:"clients" yaml:"clients"`
	Devices         []DeviceInfo `json:"devices" yaml:"devices"`
	Roles           []RoleInfo   `json:"roles" yaml:"roles"`
	TrackingOrigins []OriginInfo `json:"tracking_origins" yaml:"tracking_origins"`
	ReferenceSpaces []SpaceInfo  `json:"reference_spaces" yaml:"reference_spaces"`
}

// ClientInfo describes one connected application.
type ClientInfo struct {
	ID    uint32   `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	State string   `json:"state" yaml:"state"`
	Flags []string `json:"flags,omitempty" yaml:"flags,omitempty"`
	Error string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// DeviceInfo describes one device. Optional properties the runtime does
// not report are left unset.
type DeviceInfo struct {
	Index      uint32                `json:"index" yaml:"index"`
	NameID     uint32                `json:"name_id" yaml:"name_id"`
	Name       string                `json:"name" yaml:"name"`
	Serial     string                `json:"serial,omitempty" yaml:"serial,omitempty"`
	Battery    *monado.BatteryStatus `json:"battery,omitempty" yaml:"battery,omitempty"`
	Brightness *float32              `json:"brightness,omitempty" yaml:"brightness,omitempty"`
}

// RoleInfo maps a device role to the index of the device bound to it.
type RoleInfo struct {
	Role   string  `json:"role" yaml:"role"`
	Device *uint32 `json:"device,omitempty" yaml:"device,omitempty"`
}

// OriginInfo describes one tracking origin.
type OriginInfo struct {
	ID     uint32       `json:"id" yaml:"id"`
	Name   string       `json:"name" yaml:"name"`
	Offset *monado.Pose `json:"offset,omitempty" yaml:"offset,omitempty"`
	Error  string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// SpaceInfo describes one reference space offset.
type SpaceInfo struct {
	Space  string       `json:"space" yaml:"space"`
	Offset *monado.Pose `json:"offset,omitempty" yaml:"offset,omitempty"`
	Error  string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// BoundDevice returns the device index bound to role, if any.
func (s *Snapshot) BoundDevice(role string) (uint32, bool) {
	for _, r := range s.Roles {
		if r.Role == role && r.Device != nil {
			return *r.Device, true
		}
	}
	return 0, false
}
