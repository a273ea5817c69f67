package monado

import (
	"fmt"

	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

// DeviceRole is a well-known device role.
type DeviceRole uint8

const (
	RoleHead DeviceRole = iota
	RoleEyes
	RoleLeft
	RoleRight
	RoleGamepad
	RoleHandTrackingLeft
	RoleHandTrackingRight
)

// DeviceRoles lists every role.
var DeviceRoles = []DeviceRole{
	RoleHead,
	RoleEyes,
	RoleLeft,
	RoleRight,
	RoleGamepad,
	RoleHandTrackingLeft,
	RoleHandTrackingRight,
}

var roleNames = map[DeviceRole]string{
	RoleHead:              "head",
	RoleEyes:              "eyes",
	RoleLeft:              "left",
	RoleRight:             "right",
	RoleGamepad:           "gamepad",
	RoleHandTrackingLeft:  "hand-tracking-left",
	RoleHandTrackingRight: "hand-tracking-right",
}

func (r DeviceRole) wireName() (string, bool) {
	name, ok := roleNames[r]
	return name, ok
}

// String returns the role name libmonado uses.
func (r DeviceRole) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseDeviceRole returns the role with the given name.
func ParseDeviceRole(s string) (DeviceRole, error) {
	for _, r := range DeviceRoles {
		if roleNames[r] == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown device role %q", mnd.ErrorInvalidValue, s)
}
