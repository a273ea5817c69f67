package inspect

import (
	"strings"

	"github.com/monado-tools/libmonado-go/pkg/mnd"
	"github.com/monado-tools/libmonado-go/pkg/monado"
)

// Name tables for resolving human-readable names.
var (
	kindNames = map[string]TargetKind{
		"client": TargetClient,
		"c":      TargetClient,
		"device": TargetDevice,
		"dev":    TargetDevice,
		"d":      TargetDevice,
		"origin": TargetOrigin,
		"o":      TargetOrigin,
		"space":  TargetSpace,
		"s":      TargetSpace,
		"role":   TargetRole,
		"r":      TargetRole,
	}

	spaceNames = map[string]mnd.ReferenceSpaceType{}
)

func init() {
	for _, s := range mnd.ReferenceSpaceTypes {
		spaceNames[s.String()] = s
	}
	// Spellings used by the OpenXR reference space enum.
	spaceNames["local_floor"] = mnd.ReferenceSpaceLocalFloor
	spaceNames["localfloor"] = mnd.ReferenceSpaceLocalFloor
}

// ResolveKindName resolves a target kind name or alias (case-insensitive).
func ResolveKindName(name string) (TargetKind, bool) {
	k, ok := kindNames[strings.ToLower(name)]
	return k, ok
}

// ResolveSpaceName resolves a reference space name (case-insensitive).
func ResolveSpaceName(name string) (mnd.ReferenceSpaceType, bool) {
	s, ok := spaceNames[strings.ToLower(name)]
	return s, ok
}

// ResolveRoleName resolves a device role name (case-insensitive).
func ResolveRoleName(name string) (monado.DeviceRole, bool) {
	r, err := monado.ParseDeviceRole(strings.ToLower(name))
	return r, err == nil
}

// SpaceNames returns the canonical reference space names in wire order.
func SpaceNames() []string {
	names := make([]string, 0, len(mnd.ReferenceSpaceTypes))
	for _, s := range mnd.ReferenceSpaceTypes {
		names = append(names, s.String())
	}
	return names
}

// RoleNames returns the device role names.
func RoleNames() []string {
	names := make([]string, 0, len(monado.DeviceRoles))
	for _, r := range monado.DeviceRoles {
		names = append(names, r.String())
	}
	return names
}
